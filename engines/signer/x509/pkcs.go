package x509

import (
	"crypto/ed25519"
	encoding_asn1 "encoding/asn1"
	"errors"
	"fmt"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

var oidPublicKeyEd25519 = encoding_asn1.ObjectIdentifier{1, 3, 101, 112}

// ParseEd25519PublicKey reads a DER encoded PKIX public key. Stellar accounts
// are ed25519 only, every other algorithm is rejected.
func ParseEd25519PublicKey(der []byte) (ed25519.PublicKey, error) {
	src := cryptobyte.String(der)
	var (
		obj, algo cryptobyte.String
		algoOid   encoding_asn1.ObjectIdentifier
		keyData   encoding_asn1.BitString
	)

	if !src.ReadASN1(&obj, asn1.SEQUENCE) ||
		!obj.ReadASN1(&algo, asn1.SEQUENCE) ||
		!algo.ReadASN1ObjectIdentifier(&algoOid) ||
		!obj.ReadASN1BitString(&keyData) {
		return nil, errors.New("x509: failed to parse PKIX public key")
	}

	if !algoOid.Equal(oidPublicKeyEd25519) {
		return nil, fmt.Errorf("x509: unsupported algorithm: %v", algoOid)
	}
	keyBytes := keyData.RightAlign()
	if len(keyBytes) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("x509: invalid Ed25519 public key length: %d", len(keyBytes))
	}
	return ed25519.PublicKey(keyBytes), nil
}
