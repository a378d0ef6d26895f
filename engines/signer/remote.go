package signer_engines

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
)

type RemoteSignerSpecs struct {
	Url   string `json:"url"`
	Token string `json:"token,omitempty"`
}

type remoteSignRequest struct {
	Xdr               string `json:"xdr"`
	NetworkPassphrase string `json:"network_passphrase"`
}

type remoteSignResponse struct {
	SignedXdr string `json:"signed_xdr"`
	Rejected  bool   `json:"rejected"`
	Reason    string `json:"reason"`
}

// RemoteSigner forwards transactions to a wallet agent over http. The agent
// may wait for its user as long as it needs, only the caller's context bounds it.
type RemoteSigner struct {
	url    string
	token  string
	client *http.Client
}

func InitRemoteSignerFromSpecs(specs RemoteSignerSpecs) (*RemoteSigner, error) {
	return InitRemoteSigner(specs.Url, specs.Token)
}

func InitRemoteSigner(remoteUrl string, token string) (*RemoteSigner, error) {
	if _, err := url.ParseRequestURI(remoteUrl); err != nil {
		return nil, errors.Join(constants.ErrSignerLoadFailed, err)
	}
	return &RemoteSigner{
		url:    remoteUrl,
		token:  token,
		client: &http.Client{},
	}, nil
}

func (remoteSigner *RemoteSigner) GetId() string {
	return "RemoteSigner"
}

func (remoteSigner *RemoteSigner) Sign(ctx context.Context, unsignedXdr string, networkPassphrase string) common.SignResult {
	payload, err := json.Marshal(remoteSignRequest{Xdr: unsignedXdr, NetworkPassphrase: networkPassphrase})
	if err != nil {
		return common.NewAgentErrorResult(err.Error())
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, remoteSigner.url, bytes.NewBuffer(payload))
	if err != nil {
		return common.NewAgentErrorResult(err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	if remoteSigner.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", remoteSigner.token))
	}

	resp, err := remoteSigner.client.Do(req)
	if err != nil {
		return common.NewAgentErrorResult(fmt.Sprintf("remote signer unavailable: %s", err.Error()))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return common.NewAgentErrorResult(err.Error())
	}
	if resp.StatusCode != http.StatusOK {
		slog.Debug("remote signer failed", "status", resp.StatusCode, "body", string(body))
		return common.NewAgentErrorResult(fmt.Sprintf("remote signer responded with status %d", resp.StatusCode))
	}

	var response remoteSignResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return common.NewAgentErrorResult("malformed response from remote signer")
	}
	switch {
	case response.Rejected:
		return common.NewRejectedResult(response.Reason)
	case response.SignedXdr == "":
		return common.NewAgentErrorResult("remote signer returned no signed transaction")
	default:
		return common.NewSignedResult(response.SignedXdr)
	}
}
