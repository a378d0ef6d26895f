package utils

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

func CallbackOnInterrupt(ctx context.Context, cb func()) {
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-c:
			cb()
		case <-ctx.Done():
		}
		signal.Stop(c)
	}()
}

type ProtectedSection struct {
	info     string
	ch       chan os.Signal
	signaled atomic.Bool
}

// Creates a new ProtectedSection
// Protected section captures SIGINT and SIGTERM signals if active
func NewProtectedSection(info string) *ProtectedSection {
	result := &ProtectedSection{
		ch:   make(chan os.Signal, 1),
		info: info,
	}
	go func() {
		for sig := range result.ch {
			result.signaled.Store(true)
			slog.Warn("received signal, finishing current batch before stopping", "signal", sig, "info", info)
		}
	}()

	return result
}

// Creates a new ProtectedSection and starts it
func StartNewProtectedSection(info string) *ProtectedSection {
	result := NewProtectedSection(info)
	result.Start()
	return result
}

func (p *ProtectedSection) Start() {
	signal.Notify(p.ch, syscall.SIGINT, syscall.SIGTERM)
}

func (p *ProtectedSection) Stop() {
	signal.Stop(p.ch)
}

func (p *ProtectedSection) Close() {
	p.Stop()
	close(p.ch)
}

// Signal marks the section as interrupted without an os signal
func (p *ProtectedSection) Signal() {
	p.signaled.Store(true)
}

func (p *ProtectedSection) Signaled() bool {
	return p.signaled.Load()
}
