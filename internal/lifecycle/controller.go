package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"pdfquery/internal/session"
	"pdfquery/internal/staging"
	"pdfquery/internal/transport"

	"go.uber.org/zap"
)

var (
	// ErrBusy means the action is disabled because one of its kind is in flight.
	ErrBusy      = errors.New("operation already in progress")
	ErrNotActive = errors.New("no active session")
	// ErrStale is returned when a completion arrives for a transcript that has
	// since been cleared or replaced; its result was dropped.
	ErrStale = errors.New("response discarded: session changed while request was in flight")
)

type TokenStore interface {
	Read(ctx context.Context) (session.Token, error)
	Write(ctx context.Context, token session.Token) error
	Clear(ctx context.Context) error
	Exists(ctx context.Context) bool
}

type Remote interface {
	Upload(ctx context.Context, files []session.StagedFile) (session.Token, error)
	Ask(ctx context.Context, question string) (session.QAPair, error)
	ListHistory(ctx context.Context) ([]session.QAPair, error)
	ClearHistory(ctx context.Context) error
	ExportReference(token session.Token) string
}

// Controller is the only writer of session phase, token and transcript. All
// other packages observe it through Snapshot or Subscribe.
type Controller struct {
	store   TokenStore
	remote  Remote
	settler Settler
	log     *zap.Logger

	mu          sync.Mutex
	phase       session.Phase
	token       session.Token
	history     session.History
	staged      *staging.Area
	asking      bool
	clearing    bool
	resetting   bool
	rehydrating bool
	warning     string
	lastErr     error

	// generation is bumped whenever the transcript is invalidated. Requests
	// capture it when issued and their completions are dropped on mismatch.
	generation uint64

	subs    map[int]chan State
	nextSub int
}

type Option func(*Controller)

func WithSettler(s Settler) Option {
	return func(c *Controller) {
		if s != nil {
			c.settler = s
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

func WithStaging(a *staging.Area) Option {
	return func(c *Controller) {
		if a != nil {
			c.staged = a
		}
	}
}

func New(store TokenStore, remote Remote, opts ...Option) *Controller {
	c := &Controller{
		store:   store,
		remote:  remote,
		settler: DelaySettler{Delay: DefaultSettleDelay},
		log:     zap.NewNop(),
		staged:  staging.New(),
		phase:   session.NoSession,
		subs:    make(map[int]chan State),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start decides the initial phase from the persisted token and rehydrates the
// transcript. A listing failure leaves the session active with a warning.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	startGen := c.generation
	c.mu.Unlock()

	tok, err := c.store.Read(ctx)
	if err != nil {
		c.log.Warn("session store unreadable, starting without session", zap.Error(err))
	}

	c.mu.Lock()
	if c.superseded(startGen) {
		c.log.Info("user action preceded startup, keeping current session")
		c.publishLocked()
		c.mu.Unlock()
		return nil
	}
	if err != nil || !tok.Present() {
		c.phase = session.NoSession
		c.token = ""
		if err != nil {
			c.warning = "Saved session could not be read: " + err.Error()
		}
		c.publishLocked()
		c.mu.Unlock()
		return nil
	}
	c.phase = session.Active
	c.token = tok
	c.rehydrating = true
	gen := c.generation
	c.publishLocked()
	c.mu.Unlock()

	pairs, err := c.remote.ListHistory(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.rehydrating = false
	switch {
	case gen != c.generation:
		c.log.Info("dropping rehydrated history for superseded session", zap.String("token", string(tok)))
	case err != nil:
		c.warning = "Could not load previous conversation: " + err.Error()
		c.log.Warn("rehydrate history failed", zap.String("token", string(tok)), zap.Error(err))
	default:
		c.history.Replace(pairs)
		c.log.Info("rehydrated history", zap.String("token", string(tok)), zap.Int("pairs", len(pairs)))
	}
	c.publishLocked()
	return nil
}

// superseded reports whether a transition started or a reset completed since
// gen was captured. The store read in Start is then out of date.
func (c *Controller) superseded(gen uint64) bool {
	return gen != c.generation || c.phase != session.NoSession || c.token != "" || c.resetting
}

func (c *Controller) Stage(f session.StagedFile) error {
	return c.mutateStaging(func(a *staging.Area) error { return a.Add(f) })
}

// StagePath reads path without holding the controller lock and stages it.
func (c *Controller) StagePath(path string) error {
	f, err := c.staged.Load(path)
	if err != nil {
		return err
	}
	return c.Stage(f)
}

func (c *Controller) Unstage(i int) error {
	return c.mutateStaging(func(a *staging.Area) error { return a.Remove(i) })
}

func (c *Controller) mutateStaging(fn func(*staging.Area) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase.Transient() {
		return ErrBusy
	}
	if err := fn(c.staged); err != nil {
		return err
	}
	c.publishLocked()
	return nil
}

// Submit uploads the staged batch. Staging survives any failure untouched; on
// success the new token is persisted before staging is dropped.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.phase.Transient() || c.resetting {
		c.mu.Unlock()
		return ErrBusy
	}
	if c.staged.Len() == 0 {
		c.mu.Unlock()
		return transport.Validation("upload", "no files staged")
	}
	prev := c.phase
	files := c.staged.Files()
	c.phase = session.Uploading
	c.lastErr = nil
	c.warning = ""
	c.publishLocked()
	c.mu.Unlock()

	c.log.Info("uploading batch", zap.Int("files", len(files)))
	tok, err := c.remote.Upload(ctx, files)
	if err == nil {
		if werr := c.store.Write(ctx, tok); werr != nil {
			err = fmt.Errorf("persist session token: %w", werr)
		}
	}
	if err != nil {
		c.mu.Lock()
		c.phase = prev
		c.lastErr = err
		c.publishLocked()
		c.mu.Unlock()
		c.log.Warn("upload failed", zap.Int("files", len(files)), zap.Error(err))
		return err
	}

	c.mu.Lock()
	if tok != c.token {
		c.history.Reset()
		c.generation++
	}
	c.token = tok
	c.staged.Clear()
	c.phase = session.Processing
	c.publishLocked()
	c.mu.Unlock()

	settleErr := c.settler.Settle(ctx, tok)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = session.Active
	if settleErr != nil {
		c.warning = "Documents may still be indexing: " + settleErr.Error()
		c.log.Warn("settle interrupted", zap.String("token", string(tok)), zap.Error(settleErr))
	}
	c.log.Info("session active", zap.String("token", string(tok)))
	c.publishLocked()
	return nil
}

// Ask sends one question. Only one ask may be outstanding; a second call is
// refused rather than queued.
func (c *Controller) Ask(ctx context.Context, question string) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return transport.Validation("ask", "question is empty")
	}

	c.mu.Lock()
	if c.phase != session.Active {
		c.mu.Unlock()
		return ErrNotActive
	}
	if c.asking || c.rehydrating {
		c.mu.Unlock()
		return ErrBusy
	}
	c.asking = true
	c.lastErr = nil
	gen := c.generation
	c.publishLocked()
	c.mu.Unlock()

	pair, err := c.remote.Ask(ctx, question)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.asking = false
	if gen != c.generation {
		c.log.Info("discarding stale answer", zap.String("question", question), zap.NamedError("request_error", err))
		c.publishLocked()
		return ErrStale
	}
	if err != nil {
		c.lastErr = err
		c.publishLocked()
		return err
	}
	c.history.Append(pair)
	c.publishLocked()
	return nil
}

// Clear empties the transcript only after the server confirms. The session
// token is kept.
func (c *Controller) Clear(ctx context.Context) error {
	c.mu.Lock()
	if c.phase != session.Active {
		c.mu.Unlock()
		return ErrNotActive
	}
	if c.clearing {
		c.mu.Unlock()
		return ErrBusy
	}
	c.clearing = true
	c.lastErr = nil
	gen := c.generation
	c.publishLocked()
	c.mu.Unlock()

	err := c.remote.ClearHistory(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearing = false
	if err != nil {
		c.lastErr = err
		c.log.Warn("clear history failed", zap.Error(err))
		c.publishLocked()
		return err
	}
	if gen == c.generation {
		c.history.Reset()
		c.generation++
	}
	c.publishLocked()
	return nil
}

// ExportReference returns the locator of the server-rendered transcript for
// the current session. Opening it is up to the caller.
func (c *Controller) ExportReference() string {
	c.mu.Lock()
	tok := c.token
	c.mu.Unlock()
	return c.remote.ExportReference(tok)
}

// NewSession forgets the current session locally. Server-side state is left
// alone. Submit is refused until the store has been cleared.
func (c *Controller) NewSession(ctx context.Context) error {
	c.mu.Lock()
	if c.phase.Transient() || c.resetting {
		c.mu.Unlock()
		return ErrBusy
	}
	c.resetting = true
	c.publishLocked()
	c.mu.Unlock()

	err := c.store.Clear(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetting = false
	if err != nil {
		c.lastErr = fmt.Errorf("forget session: %w", err)
		c.publishLocked()
		return c.lastErr
	}
	c.phase = session.NoSession
	c.token = ""
	c.history.Reset()
	c.generation++
	c.warning = ""
	c.lastErr = nil
	c.publishLocked()
	return nil
}

// Acknowledge drops the surfaced warning and error.
func (c *Controller) Acknowledge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.warning == "" && c.lastErr == nil {
		return
	}
	c.warning = ""
	c.lastErr = nil
	c.publishLocked()
}
