// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aurexus/aurexus-tui/internal/api"
	"github.com/aurexus/aurexus-tui/internal/logging"
	"github.com/aurexus/aurexus-tui/internal/model"
)

// =============================================================================
// STATES AND TRANSITIONS
// =============================================================================

// State is the conversation state.
type State int

const (
	// StateIdle means no request is outstanding.
	StateIdle State = iota

	// StatePending means exactly one request is in flight.
	StatePending

	// StateErrored means the last send failed. The error banner is
	// showing, but new sends are still accepted.
	StateErrored
)

// String returns the state name for logging and status display.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// event is an input to the transition table.
type event int

const (
	eventSend event = iota
	eventResolve
	eventFail
	eventAcknowledge
)

// transitions is the guarded transition table. A missing entry means
// the event is rejected in that state with no side effects; that is
// the whole admission-control mechanism, so the single in-flight rule
// lives here and nowhere else.
var transitions = map[State]map[event]State{
	StateIdle: {
		eventSend: StatePending,
	},
	StatePending: {
		eventResolve: StateIdle,
		eventFail:    StateErrored,
	},
	StateErrored: {
		eventSend:        StatePending,
		eventAcknowledge: StateIdle,
	},
}

// step fires an event against the table. Callers hold s.mu.
func (s *Session) step(ev event) bool {
	next, ok := transitions[s.state][ev]
	if !ok {
		return false
	}
	s.state = next
	return true
}

// =============================================================================
// SESSION
// =============================================================================

// WelcomeText is the synthetic assistant message every session opens with.
const WelcomeText = "Welcome to Aurexus Public AI! I can help you with:\n\n" +
	"• Macro trends in real estate\n" +
	"• Suburb analytics and market data\n" +
	"• Housing market insights\n" +
	"• Real estate investment strategies\n" +
	"• GTM strategies for real estate\n" +
	"• Cap raise basics\n\n" +
	"What would you like to know?"

// ApologyText is the fixed assistant turn appended when a send fails.
const ApologyText = "I'm sorry, I'm having trouble connecting right now. Please try again later."

// Sentinel errors for send preconditions.
var (
	ErrBusy   = errors.New("a message is already in flight")
	ErrClosed = errors.New("conversation closed")
)

// ChatAPI is the backend surface the session needs. Tests fake it.
type ChatAPI interface {
	SendChat(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error)
}

// Consent carries the data-usage flags stamped on every chat request.
type Consent struct {
	DataUsage bool
	Contact   bool
}

// Session is one conversation: an immutable session ID, an append-only
// transcript, and the state machine guarding sends.
//
// Sends issued from the UI run on command goroutines, so the session
// serializes all access with a mutex rather than assuming a
// single-threaded caller.
type Session struct {
	mu sync.Mutex

	id       string
	client   ChatAPI
	consent  Consent
	provider func() string

	state     State
	messages  []model.Message
	lastError error

	baseCtx context.Context
	cancel  context.CancelFunc
	inCall  context.CancelFunc
}

// NewSession creates a session with a fresh UUID and the welcome
// message already in the transcript. The provider func supplies the
// currently selected provider ID at send time; pass nil to omit
// provider metadata.
func NewSession(client ChatAPI, consent Consent, provider func() string) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:       uuid.NewString(),
		client:   client,
		consent:  consent,
		provider: provider,
		state:    StateIdle,
		baseCtx:  ctx,
		cancel:   cancel,
	}
	s.messages = append(s.messages, *model.NewAssistantMessage(WelcomeText, "", "", true, 0))
	return s
}

// ID returns the immutable session identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns the current conversation state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastError returns the error from the most recent failed send, or nil.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// Messages returns a snapshot of the transcript.
func (s *Session) Messages() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the transcript length, welcome message included.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// =============================================================================
// OPERATIONS
// =============================================================================

// SendMessage runs one full send: optimistic user append, the network
// round trip, and the resulting assistant turn. It blocks until the
// request resolves, so the UI invokes it from a command goroutine.
//
// A send while another is pending returns ErrBusy with no side
// effects. A send in the errored state is accepted and clears the
// error on success. Cancellation through Close leaves the transcript
// exactly as the optimistic append left it: a disposed session must
// not grow an apology turn after the fact.
func (s *Session) SendMessage(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return api.ErrEmptyMessage
	}

	s.mu.Lock()
	if s.baseCtx.Err() != nil {
		s.mu.Unlock()
		return ErrClosed
	}
	if !s.step(eventSend) {
		s.mu.Unlock()
		return ErrBusy
	}
	s.messages = append(s.messages, *model.NewUserMessage(text))

	// The call context chains off the session context so Close aborts
	// the in-flight request.
	callCtx, cancel := context.WithCancel(s.baseCtx)
	if ctx != nil {
		callCtx = withParent(callCtx, ctx)
	}
	s.inCall = cancel
	prov := ""
	if s.provider != nil {
		prov = s.provider()
	}
	req := api.ChatRequest{
		SessionID:        s.id,
		Message:          text,
		Source:           api.SourceTerminal,
		ConsentDataUsage: s.consent.DataUsage,
		ConsentContact:   s.consent.Contact,
	}
	s.mu.Unlock()

	start := time.Now()
	resp, err := s.client.SendChat(callCtx, req)
	latency := time.Since(start)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inCall = nil

	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Disposal, not failure. Leave the transcript alone
			// apart from unwinding pending.
			s.step(eventResolve)
			return err
		}
		s.step(eventFail)
		s.lastError = err
		s.messages = append(s.messages, *model.NewAssistantMessage(ApologyText, "", prov, true, latency))
		logging.App().Warn("send failed",
			zap.String("session", s.id),
			zap.Error(err))
		return err
	}

	s.step(eventResolve)
	s.lastError = nil
	s.messages = append(s.messages, *model.NewAssistantMessage(resp.Answer, resp.Topic, prov, resp.Allowed, latency))
	logging.App().Debug("send resolved",
		zap.String("session", s.id),
		zap.String("topic", resp.Topic),
		zap.Bool("allowed", resp.Allowed),
		zap.Duration("latency", latency))
	return nil
}

// AcknowledgeError clears the error banner. It changes no messages and
// fires no request; the user resends on their own.
func (s *Session) AcknowledgeError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step(eventAcknowledge) {
		s.lastError = nil
	}
}

// Close aborts any in-flight request and marks the session disposed.
// Further sends return ErrClosed.
func (s *Session) Close() {
	s.mu.Lock()
	inCall := s.inCall
	s.mu.Unlock()
	if inCall != nil {
		inCall()
	}
	s.cancel()
}

// withParent ties a child context's cancellation to an additional
// parent, so a send honors both the session lifetime and the caller's
// context.
func withParent(child, parent context.Context) context.Context {
	ctx, cancel := context.WithCancel(child)
	go func() {
		select {
		case <-parent.Done():
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx
}
