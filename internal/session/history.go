package session

// History is the ordered transcript of the active session. It only grows
// until Reset or Replace.
type History struct {
	pairs []QAPair
}

func (h *History) Append(p QAPair) {
	h.pairs = append(h.pairs, p)
}

func (h *History) Replace(pairs []QAPair) {
	h.pairs = append([]QAPair(nil), pairs...)
}

func (h *History) Reset() {
	h.pairs = nil
}

func (h *History) Len() int {
	return len(h.pairs)
}

// Pairs returns a copy safe to hand to renderers.
func (h *History) Pairs() []QAPair {
	if len(h.pairs) == 0 {
		return nil
	}
	out := make([]QAPair, len(h.pairs))
	copy(out, h.pairs)
	return out
}
