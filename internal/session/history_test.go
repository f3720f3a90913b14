package session

import (
	"reflect"
	"testing"
)

func TestHistoryPreservesAppendOrder(t *testing.T) {
	var h History
	want := []QAPair{
		{Question: "one", Answer: "1"},
		{Question: "two", Answer: "2"},
		{Question: "three", Answer: "3"},
	}
	for _, p := range want {
		h.Append(p)
	}
	if got := h.Pairs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected order: got=%v want=%v", got, want)
	}
}

func TestHistoryPairsIsACopy(t *testing.T) {
	var h History
	h.Append(QAPair{Question: "q", Answer: "a"})
	out := h.Pairs()
	out[0].Answer = "mutated"
	if h.Pairs()[0].Answer != "a" {
		t.Fatalf("expected history to be unaffected by caller mutation")
	}
}

func TestHistoryReplaceAndReset(t *testing.T) {
	var h History
	h.Append(QAPair{Question: "old", Answer: "x"})
	src := []QAPair{{Question: "q1", Answer: "a1"}, {Question: "q2", Answer: "a2"}}
	h.Replace(src)
	src[0].Question = "changed"
	if h.Len() != 2 || h.Pairs()[0].Question != "q1" {
		t.Fatalf("replace should copy input, got %v", h.Pairs())
	}
	h.Reset()
	if h.Len() != 0 || h.Pairs() != nil {
		t.Fatalf("expected empty history after reset, got %v", h.Pairs())
	}
	h.Reset()
	if h.Len() != 0 {
		t.Fatalf("reset should be idempotent")
	}
}

func TestTokenPresent(t *testing.T) {
	cases := []struct {
		tok  Token
		want bool
	}{
		{"", false},
		{"   ", false},
		{"s1", true},
	}
	for _, tc := range cases {
		if got := tc.tok.Present(); got != tc.want {
			t.Fatalf("token=%q got=%v want=%v", tc.tok, got, tc.want)
		}
	}
}

func TestPhaseString(t *testing.T) {
	if Active.String() != "active" || NoSession.String() != "no-session" {
		t.Fatalf("unexpected phase names: %s %s", Active, NoSession)
	}
	if !Uploading.Transient() || !Processing.Transient() || Active.Transient() {
		t.Fatalf("unexpected transient classification")
	}
}
