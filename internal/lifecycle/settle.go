package lifecycle

import (
	"context"
	"time"

	"pdfquery/internal/session"
)

const DefaultSettleDelay = 2 * time.Second

// Settler blocks until the backend is ready to answer questions about a
// freshly uploaded batch.
type Settler interface {
	Settle(ctx context.Context, token session.Token) error
}

// DelaySettler waits a fixed delay. The backend exposes no indexing-complete
// signal, so this is an approximation and not a readiness guarantee.
type DelaySettler struct {
	Delay time.Duration
}

func (d DelaySettler) Settle(ctx context.Context, _ session.Token) error {
	if d.Delay <= 0 {
		return nil
	}
	t := time.NewTimer(d.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type SettlerFunc func(ctx context.Context, token session.Token) error

func (f SettlerFunc) Settle(ctx context.Context, token session.Token) error {
	return f(ctx, token)
}
