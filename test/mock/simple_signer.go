package mock

import (
	"context"
	"sync"

	"github.com/lumepay/lumepay/common"
	signer_engines "github.com/lumepay/lumepay/engines/signer"
	"github.com/stellar/go/keypair"
)

func InitSimpleSigner() *signer_engines.InMemorySigner {
	result, _ := signer_engines.InitInMemorySigner(keypair.MustRandom().Seed())
	return result
}

// ScriptedSigner signs with a real key unless the call (0 based) is scripted
// to reject, fail or panic.
type ScriptedSigner struct {
	Key *signer_engines.InMemorySigner

	Rejects  map[int]bool
	Failures map[int]bool
	Panics   map[int]bool
	// Tamper makes the signer return a different transaction than requested
	Tamper map[int]bool

	mtx   sync.Mutex
	calls int
}

func NewScriptedSigner(key *signer_engines.InMemorySigner) *ScriptedSigner {
	return &ScriptedSigner{
		Key:      key,
		Rejects:  map[int]bool{},
		Failures: map[int]bool{},
		Panics:   map[int]bool{},
		Tamper:   map[int]bool{},
	}
}

func (s *ScriptedSigner) GetId() string {
	return "ScriptedSigner"
}

func (s *ScriptedSigner) Calls() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.calls
}

func (s *ScriptedSigner) Sign(ctx context.Context, unsignedXdr string, networkPassphrase string) common.SignResult {
	s.mtx.Lock()
	call := s.calls
	s.calls++
	s.mtx.Unlock()

	switch {
	case s.Panics[call]:
		panic("signer exploded")
	case s.Rejects[call]:
		return common.NewRejectedResult("")
	case s.Failures[call]:
		return common.NewAgentErrorResult("wallet not available")
	case s.Tamper[call]:
		return s.Key.Sign(ctx, unsignedXdr, "Some Other Network")
	}
	return s.Key.Sign(ctx, unsignedXdr, networkPassphrase)
}
