package session

import "strings"

// Token identifies a processed-document context on the server. The zero
// value means no session.
type Token string

func (t Token) Present() bool {
	return strings.TrimSpace(string(t)) != ""
}

type StagedFile struct {
	Name    string
	Size    int64
	Content []byte
}

type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Phase int

const (
	NoSession Phase = iota
	Uploading
	Processing
	Active
)

func (p Phase) String() string {
	switch p {
	case NoSession:
		return "no-session"
	case Uploading:
		return "uploading"
	case Processing:
		return "processing"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// Transient reports whether the phase always resolves to another one.
func (p Phase) Transient() bool {
	return p == Uploading || p == Processing
}
