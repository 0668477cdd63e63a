// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aurexus/aurexus-tui/internal/api"
	"github.com/aurexus/aurexus-tui/internal/model"
)

// fakeChat is a scriptable ChatAPI. Each call pops the next scripted
// outcome; when block is set, the call parks until the context dies.
type fakeChat struct {
	mu      sync.Mutex
	answers []*api.ChatResponse
	errs    []error
	block   chan struct{}
	calls   int
	lastReq api.ChatRequest
}

func (f *fakeChat) SendChat(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error) {
	f.mu.Lock()
	f.calls++
	f.lastReq = req
	var resp *api.ChatResponse
	var err error
	if len(f.answers) > 0 {
		resp, f.answers = f.answers[0], f.answers[1:]
	}
	if len(f.errs) > 0 {
		err, f.errs = f.errs[0], f.errs[1:]
	}
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func answer(text, topic string, allowed bool) *api.ChatResponse {
	return &api.ChatResponse{Answer: text, Topic: topic, Allowed: allowed}
}

func newTestSession(f *fakeChat) *Session {
	return NewSession(f, Consent{DataUsage: true, Contact: false}, func() string { return "mock" })
}

func TestNewSessionOpensWithWelcome(t *testing.T) {
	s := newTestSession(&fakeChat{})
	defer s.Close()

	msgs := s.Messages()
	if len(msgs) != 1 {
		t.Fatalf("new session has %d messages, want 1", len(msgs))
	}
	if msgs[0].Role != model.RoleAssistant || msgs[0].Content != WelcomeText {
		t.Errorf("welcome message = %+v", msgs[0])
	}
	if s.ID() == "" {
		t.Error("session ID empty")
	}
	if got := s.State(); got != StateIdle {
		t.Errorf("initial state = %v, want idle", got)
	}
}

func TestSessionIDImmutableAcrossSends(t *testing.T) {
	f := &fakeChat{answers: []*api.ChatResponse{answer("a", "t", true), answer("b", "t", true)}}
	s := newTestSession(f)
	defer s.Close()

	id := s.ID()
	for i := 0; i < 2; i++ {
		if err := s.SendMessage(context.Background(), "hi"); err != nil {
			t.Fatal(err)
		}
	}
	if s.ID() != id {
		t.Error("session ID changed across sends")
	}
	if f.lastReq.SessionID != id {
		t.Errorf("request session_id = %q, want %q", f.lastReq.SessionID, id)
	}
}

func TestSendMessageSuccess(t *testing.T) {
	f := &fakeChat{answers: []*api.ChatResponse{answer("Brisbane median is rising.", "market", true)}}
	s := newTestSession(f)
	defer s.Close()

	if err := s.SendMessage(context.Background(), "Tell me about Brisbane"); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}

	msgs := s.Messages()
	if len(msgs) != 3 {
		t.Fatalf("transcript length = %d, want 3 (welcome, user, assistant)", len(msgs))
	}
	if msgs[1].Role != model.RoleUser || msgs[1].Content != "Tell me about Brisbane" {
		t.Errorf("user turn = %+v", msgs[1])
	}
	if msgs[2].Role != model.RoleAssistant || msgs[2].Topic != "market" || msgs[2].Provider != "mock" {
		t.Errorf("assistant turn = %+v", msgs[2])
	}
	if got := s.State(); got != StateIdle {
		t.Errorf("state = %v, want idle", got)
	}
	if s.LastError() != nil {
		t.Errorf("lastError = %v", s.LastError())
	}
	if f.lastReq.Source != api.SourceTerminal || !f.lastReq.ConsentDataUsage {
		t.Errorf("request = %+v", f.lastReq)
	}
}

func TestSendMessageFailureAppendsApology(t *testing.T) {
	f := &fakeChat{errs: []error{api.ErrNetwork}}
	s := newTestSession(f)
	defer s.Close()

	err := s.SendMessage(context.Background(), "x")
	if !errors.Is(err, api.ErrNetwork) {
		t.Fatalf("SendMessage() error = %v", err)
	}

	msgs := s.Messages()
	if len(msgs) != 3 {
		t.Fatalf("transcript length = %d, want 3", len(msgs))
	}
	if msgs[1].Content != "x" {
		t.Errorf("optimistic user turn missing: %+v", msgs[1])
	}
	if msgs[2].Content != ApologyText {
		t.Errorf("apology turn = %q", msgs[2].Content)
	}
	if got := s.State(); got != StateErrored {
		t.Errorf("state = %v, want errored", got)
	}
	if s.LastError() == nil {
		t.Error("lastError not recorded")
	}
}

func TestErroredDoesNotBlockNextSend(t *testing.T) {
	f := &fakeChat{
		errs:    []error{api.ErrNetwork, nil},
		answers: []*api.ChatResponse{nil, answer("recovered", "general", true)},
	}
	s := newTestSession(f)
	defer s.Close()

	_ = s.SendMessage(context.Background(), "x")
	if got := s.State(); got != StateErrored {
		t.Fatalf("state after failure = %v", got)
	}

	if err := s.SendMessage(context.Background(), "y"); err != nil {
		t.Fatalf("send from errored state rejected: %v", err)
	}
	if got := s.State(); got != StateIdle {
		t.Errorf("state = %v, want idle", got)
	}
	if s.LastError() != nil {
		t.Error("successful send did not clear lastError")
	}
	// welcome + (user,apology) + (user,assistant)
	if got := s.Len(); got != 5 {
		t.Errorf("transcript length = %d, want 5", got)
	}
}

func TestSendWhilePendingRejected(t *testing.T) {
	f := &fakeChat{block: make(chan struct{}), answers: []*api.ChatResponse{answer("late", "t", true)}}
	s := newTestSession(f)
	defer s.Close()

	done := make(chan error, 1)
	go func() { done <- s.SendMessage(context.Background(), "slow one") }()

	// Wait for the first send to enter pending.
	deadline := time.After(2 * time.Second)
	for s.State() != StatePending {
		select {
		case <-deadline:
			t.Fatal("first send never reached pending")
		case <-time.After(5 * time.Millisecond):
		}
	}

	before := s.Len()
	if err := s.SendMessage(context.Background(), "second"); !errors.Is(err, ErrBusy) {
		t.Fatalf("concurrent send error = %v, want ErrBusy", err)
	}
	if got := s.Len(); got != before {
		t.Errorf("rejected send mutated transcript: %d -> %d", before, got)
	}

	close(f.block)
	if err := <-done; err != nil {
		t.Fatalf("first send failed: %v", err)
	}
	if f.calls != 1 {
		t.Errorf("backend called %d times, want 1", f.calls)
	}
}

func TestEmptyMessageRejected(t *testing.T) {
	f := &fakeChat{}
	s := newTestSession(f)
	defer s.Close()

	for _, text := range []string{"", "  ", "\t\n"} {
		if err := s.SendMessage(context.Background(), text); !errors.Is(err, api.ErrEmptyMessage) {
			t.Errorf("SendMessage(%q) error = %v, want ErrEmptyMessage", text, err)
		}
	}
	if f.calls != 0 {
		t.Errorf("backend called %d times for empty input", f.calls)
	}
	if got := s.Len(); got != 1 {
		t.Errorf("empty sends mutated transcript: %d messages", got)
	}
}

func TestAcknowledgeError(t *testing.T) {
	f := &fakeChat{errs: []error{api.ErrNetwork}}
	s := newTestSession(f)
	defer s.Close()

	_ = s.SendMessage(context.Background(), "x")
	before := s.Len()

	s.AcknowledgeError()

	if got := s.State(); got != StateIdle {
		t.Errorf("state = %v, want idle", got)
	}
	if s.LastError() != nil {
		t.Error("lastError not cleared")
	}
	if got := s.Len(); got != before {
		t.Error("acknowledge changed the transcript")
	}
	if f.calls != 1 {
		t.Error("acknowledge fired a request")
	}
}

func TestAcknowledgeIsNoOpWhenIdle(t *testing.T) {
	s := newTestSession(&fakeChat{})
	defer s.Close()

	s.AcknowledgeError()
	if got := s.State(); got != StateIdle {
		t.Errorf("state = %v", got)
	}
}

func TestCloseAbortsInFlightWithoutApology(t *testing.T) {
	f := &fakeChat{block: make(chan struct{})}
	s := newTestSession(f)

	done := make(chan error, 1)
	go func() { done <- s.SendMessage(context.Background(), "doomed") }()

	deadline := time.After(2 * time.Second)
	for s.State() != StatePending {
		select {
		case <-deadline:
			t.Fatal("send never reached pending")
		case <-time.After(5 * time.Millisecond):
		}
	}

	s.Close()

	err := <-done
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("aborted send error = %v, want context.Canceled", err)
	}

	msgs := s.Messages()
	for _, m := range msgs {
		if m.Content == ApologyText {
			t.Error("disposal appended an apology turn")
		}
	}
	// welcome + optimistic user turn only.
	if len(msgs) != 2 {
		t.Errorf("transcript length = %d, want 2", len(msgs))
	}

	if err := s.SendMessage(context.Background(), "after close"); !errors.Is(err, ErrClosed) {
		t.Errorf("send after Close error = %v, want ErrClosed", err)
	}
}

func TestTimeoutFollowsErroredPath(t *testing.T) {
	f := &fakeChat{errs: []error{context.DeadlineExceeded}}
	s := newTestSession(f)
	defer s.Close()

	err := s.SendMessage(context.Background(), "slow")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("error = %v", err)
	}
	if got := s.State(); got != StateErrored {
		t.Errorf("state = %v, want errored", got)
	}
	if got := s.Len(); got != 3 {
		t.Errorf("transcript length = %d, want 3 (timeout surfaces as apology)", got)
	}
}

func TestTranscriptGrowsByTwoPerSend(t *testing.T) {
	f := &fakeChat{
		answers: []*api.ChatResponse{answer("ok", "t", true), nil, answer("ok", "t", false)},
		errs:    []error{nil, api.ErrNetwork, nil},
	}
	s := newTestSession(f)
	defer s.Close()

	for i, text := range []string{"one", "two", "three"} {
		before := s.Len()
		_ = s.SendMessage(context.Background(), text)
		if got := s.Len(); got != before+2 {
			t.Errorf("send %d grew transcript by %d, want 2", i, got-before)
		}
	}
}

func TestBlockedAnswerKeptInTranscript(t *testing.T) {
	f := &fakeChat{answers: []*api.ChatResponse{answer("Cannot discuss that.", "offtopic", false)}}
	s := newTestSession(f)
	defer s.Close()

	if err := s.SendMessage(context.Background(), "something off topic"); err != nil {
		t.Fatal(err)
	}
	msgs := s.Messages()
	last := msgs[len(msgs)-1]
	if !last.IsBlocked() {
		t.Error("disallowed answer not marked blocked")
	}
	if got := s.State(); got != StateIdle {
		t.Errorf("state = %v, want idle (blocked is not an error)", got)
	}
}
