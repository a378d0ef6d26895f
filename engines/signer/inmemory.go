package signer_engines

import (
	"context"
	"errors"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
	"github.com/stellar/go/keypair"
)

type InMemorySigner struct {
	Key *keypair.Full
}

func InitInMemorySigner(seed string) (*InMemorySigner, error) {
	key, err := keypair.ParseFull(seed)
	if err != nil {
		return nil, errors.Join(constants.ErrSignerLoadFailed, errors.New("invalid secret seed"))
	}
	return &InMemorySigner{
		Key: key,
	}, nil
}

func (inMemSigner *InMemorySigner) GetId() string {
	return "InMemorySigner"
}

func (inMemSigner *InMemorySigner) GetAddress() string {
	return inMemSigner.Key.Address()
}

func (inMemSigner *InMemorySigner) Sign(ctx context.Context, unsignedXdr string, networkPassphrase string) common.SignResult {
	if err := ctx.Err(); err != nil {
		return common.NewAgentErrorResult(err.Error())
	}
	signed, err := signWithKeys(unsignedXdr, networkPassphrase, inMemSigner.Key)
	if err != nil {
		return common.NewAgentErrorResult(err.Error())
	}
	return common.NewSignedResult(signed)
}
