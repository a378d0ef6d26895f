package signer_engines

import (
	"context"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"

	kms "cloud.google.com/go/kms/apiv1"
	"cloud.google.com/go/kms/apiv1/kmspb"
	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
	"github.com/lumepay/lumepay/engines/signer/x509"
	"github.com/stellar/go/strkey"
	"google.golang.org/api/option"
)

// GCSigner signs with an EC_SIGN_ED25519 key held in Google Cloud KMS
type GCSigner struct {
	source  string
	address string
	options []option.ClientOption
}

func googleClientOptions(credentialsFile string) []option.ClientOption {
	if credentialsFile == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(credentialsFile)}
}

func InitGCSigner(ctx context.Context, kmsKeySource string, credentialsFile string) (*GCSigner, error) {
	options := googleClientOptions(credentialsFile)
	client, err := kms.NewKeyManagementClient(ctx, options...)
	if err != nil {
		return nil, errors.Join(constants.ErrSignerLoadFailed, err)
	}
	defer client.Close()

	pk, err := client.GetPublicKey(ctx, &kmspb.GetPublicKeyRequest{Name: kmsKeySource})
	if err != nil {
		return nil, errors.Join(constants.ErrSignerLoadFailed, err)
	}

	block, _ := pem.Decode([]byte(pk.Pem))
	if block == nil {
		return nil, errors.Join(constants.ErrSignerLoadFailed, errors.New("invalid public key pem"))
	}
	pub, err := x509.ParseEd25519PublicKey(block.Bytes)
	if err != nil {
		return nil, errors.Join(constants.ErrSignerLoadFailed, err)
	}
	address, err := strkey.Encode(strkey.VersionByteAccountID, pub)
	if err != nil {
		return nil, errors.Join(constants.ErrSignerLoadFailed, err)
	}

	return &GCSigner{
		source:  kmsKeySource,
		address: address,
		options: options,
	}, nil
}

func (s *GCSigner) GetId() string {
	return "GCSigner"
}

func (s *GCSigner) GetAddress() string {
	return s.address
}

func (s *GCSigner) Sign(ctx context.Context, unsignedXdr string, networkPassphrase string) common.SignResult {
	tx, err := parseTransaction(unsignedXdr)
	if err != nil {
		return common.NewAgentErrorResult(err.Error())
	}
	hash, err := tx.Hash(networkPassphrase)
	if err != nil {
		return common.NewAgentErrorResult(err.Error())
	}

	client, err := kms.NewKeyManagementClient(ctx, s.options...)
	if err != nil {
		return common.NewAgentErrorResult(err.Error())
	}
	defer client.Close()

	resp, err := client.AsymmetricSign(ctx, &kmspb.AsymmetricSignRequest{
		Name: s.source,
		Data: hash[:],
	})
	if err != nil {
		return common.NewAgentErrorResult(fmt.Sprintf("AsymmetricSign: %s", err.Error()))
	}

	tx, err = tx.AddSignatureBase64(networkPassphrase, s.address, base64.StdEncoding.EncodeToString(resp.Signature))
	if err != nil {
		return common.NewAgentErrorResult(fmt.Sprintf("invalid kms signature: %s", err.Error()))
	}
	signed, err := tx.Base64()
	if err != nil {
		return common.NewAgentErrorResult(err.Error())
	}
	return common.NewSignedResult(signed)
}
