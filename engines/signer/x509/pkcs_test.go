package x509

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	std_x509 "crypto/x509"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEd25519PublicKey(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	der, err := std_x509.MarshalPKIXPublicKey(pub)
	require.NoError(t, err)

	parsed, err := ParseEd25519PublicKey(der)
	require.NoError(t, err)
	assert.Equal(t, pub, parsed)
}

func TestParseRejectsOtherAlgorithms(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der, err := std_x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	_, err = ParseEd25519PublicKey(der)
	assert.Error(t, err)

	_, err = ParseEd25519PublicKey([]byte{0x01, 0x02})
	assert.Error(t, err)
}
