package signer_engines

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lumepay/lumepay/common"
	"github.com/lumepay/lumepay/constants"
)

type pendingSignRequest struct {
	Id                string `json:"id"`
	Xdr               string `json:"xdr"`
	NetworkPassphrase string `json:"network_passphrase"`

	result chan common.SignResult
}

type bridgeSubmission struct {
	SignedXdr string `json:"signed_xdr"`
	Rejected  bool   `json:"rejected"`
	Reason    string `json:"reason"`
}

// WalletBridgeSigner serves pending transactions to a browser page where the
// operator signs them with their wallet. One transaction is pending at a time.
type WalletBridgeSigner struct {
	app    *fiber.App
	listen string
	logger *slog.Logger

	mtx     sync.Mutex
	pending *pendingSignRequest
}

func bridgeErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}
		logger.Debug("request error", "method", c.Method(), "path", c.Path(), "status", code, "error", err.Error())
		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}

func NewWalletBridgeSigner(listen string) *WalletBridgeSigner {
	signer := &WalletBridgeSigner{
		listen: listen,
		logger: slog.Default().With("component", "wallet_bridge"),
	}
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          bridgeErrorHandler(signer.logger),
	})
	app.Get("/", signer.index)
	api := app.Group("/api")
	api.Get("/pending", signer.getPending)
	api.Post("/pending/:id", signer.resolvePending)
	signer.app = app
	return signer
}

// InitWalletBridgeSigner starts listening right away so the page can be
// opened before the first transaction is ready.
func InitWalletBridgeSigner(listen string) (*WalletBridgeSigner, error) {
	signer := NewWalletBridgeSigner(listen)
	ln, err := net.Listen("tcp", listen)
	if err != nil {
		return nil, errors.Join(constants.ErrSignerLoadFailed, err)
	}
	go func() {
		if err := signer.app.Listener(ln); err != nil {
			signer.logger.Warn("wallet bridge stopped", "error", err.Error())
		}
	}()
	signer.logger.Info("wallet bridge listening, open it in the browser with your wallet", "url", signer.GetUrl())
	return signer, nil
}

func (s *WalletBridgeSigner) GetId() string {
	return "WalletBridgeSigner"
}

func (s *WalletBridgeSigner) GetUrl() string {
	return fmt.Sprintf("http://%s/", s.listen)
}

func (s *WalletBridgeSigner) Close() error {
	return s.app.Shutdown()
}

func (s *WalletBridgeSigner) Sign(ctx context.Context, unsignedXdr string, networkPassphrase string) common.SignResult {
	request := &pendingSignRequest{
		Id:                uuid.NewString(),
		Xdr:               unsignedXdr,
		NetworkPassphrase: networkPassphrase,
		result:            make(chan common.SignResult, 1),
	}

	s.mtx.Lock()
	if s.pending != nil {
		s.mtx.Unlock()
		return common.NewAgentErrorResult("another transaction is already waiting for signature")
	}
	s.pending = request
	s.mtx.Unlock()

	defer func() {
		s.mtx.Lock()
		if s.pending == request {
			s.pending = nil
		}
		s.mtx.Unlock()
	}()

	s.logger.Info("waiting for wallet signature", "url", s.GetUrl(), "request_id", request.Id)
	select {
	case result := <-request.result:
		return result
	case <-ctx.Done():
		return common.NewAgentErrorResult(fmt.Sprintf("signing canceled: %s", ctx.Err().Error()))
	}
}

func (s *WalletBridgeSigner) getPending(c *fiber.Ctx) error {
	s.mtx.Lock()
	request := s.pending
	s.mtx.Unlock()
	if request == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(request)
}

func (s *WalletBridgeSigner) resolvePending(c *fiber.Ctx) error {
	var submission bridgeSubmission
	if err := c.BodyParser(&submission); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	s.mtx.Lock()
	request := s.pending
	if request == nil || request.Id != c.Params("id") {
		s.mtx.Unlock()
		return fiber.NewError(fiber.StatusNotFound, "no such pending transaction")
	}
	s.pending = nil
	s.mtx.Unlock()

	switch {
	case submission.Rejected:
		request.result <- common.NewRejectedResult(submission.Reason)
	case submission.SignedXdr == "":
		request.result <- common.NewAgentErrorResult("wallet returned no signed transaction")
	default:
		request.result <- common.NewSignedResult(submission.SignedXdr)
	}
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

func (s *WalletBridgeSigner) index(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(bridgePage)
}

const bridgePage = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>lumepay signer</title></head>
<body>
<h3>lumepay - pending transaction</h3>
<pre id="tx">waiting...</pre>
<button id="freighter">Sign with Freighter</button>
<textarea id="signed" rows="6" cols="80" placeholder="or paste the signed XDR"></textarea>
<button id="submit">Submit signed XDR</button>
<button id="reject">Reject</button>
<script>
let pending = null;
async function poll() {
	const res = await fetch("/api/pending");
	pending = res.status === 200 ? await res.json() : null;
	document.getElementById("tx").textContent = pending ? pending.xdr : "waiting...";
}
async function resolve(body) {
	if (!pending) return;
	await fetch("/api/pending/" + pending.id, {method: "POST", headers: {"Content-Type": "application/json"}, body: JSON.stringify(body)});
	pending = null;
	document.getElementById("signed").value = "";
}
document.getElementById("freighter").onclick = async () => {
	if (!pending || !window.freighterApi) return;
	try {
		const r = await window.freighterApi.signTransaction(pending.xdr, {networkPassphrase: pending.network_passphrase});
		await resolve({signed_xdr: typeof r === "string" ? r : r.signedTxXdr});
	} catch (e) {
		await resolve({rejected: true, reason: String(e && e.message || e)});
	}
};
document.getElementById("submit").onclick = () => resolve({signed_xdr: document.getElementById("signed").value.trim()});
document.getElementById("reject").onclick = () => resolve({rejected: true, reason: "User declined access"});
setInterval(poll, 1500);
poll();
</script>
</body>
</html>
`
