package lifecycle

import "pdfquery/internal/session"

// State is an immutable snapshot of everything the presentation layer may
// render.
type State struct {
	Phase       session.Phase
	Token       session.Token
	History     []session.QAPair
	Staged      []session.StagedFile
	Asking      bool
	Clearing    bool
	Resetting   bool
	Rehydrating bool
	Warning     string
	Err         error
}

func (s State) CanStage() bool {
	return !s.Phase.Transient()
}

func (s State) CanSubmit() bool {
	return !s.Phase.Transient() && !s.Resetting && len(s.Staged) > 0
}

func (s State) CanAsk() bool {
	return s.Phase == session.Active && !s.Asking && !s.Rehydrating
}

func (s State) CanClear() bool {
	return s.Phase == session.Active && !s.Clearing && len(s.History) > 0
}

func (s State) CanExport() bool {
	return s.Phase == session.Active && len(s.History) > 0
}

func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() State {
	return State{
		Phase:       c.phase,
		Token:       c.token,
		History:     c.history.Pairs(),
		Staged:      c.staged.Files(),
		Asking:      c.asking,
		Clearing:    c.clearing,
		Resetting:   c.resetting,
		Rehydrating: c.rehydrating,
		Warning:     c.warning,
		Err:         c.lastErr,
	}
}

// Subscribe returns a channel that always holds the most recent state.
// Intermediate states may be skipped by slow readers. The current state is
// delivered immediately.
func (c *Controller) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	ch <- c.snapshotLocked()
	c.mu.Unlock()

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(ch)
		}
	}
}

func (c *Controller) publishLocked() {
	if len(c.subs) == 0 {
		return
	}
	st := c.snapshotLocked()
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- st:
		default:
		}
	}
}
