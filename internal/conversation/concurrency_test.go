// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file contains tests for concurrent session access:
// - Single in-flight admission under contention
// - Transcript consistency under parallel sends
package conversation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aurexus/aurexus-tui/internal/api"
)

const (
	waitTimeout  = 2 * time.Second
	pollInterval = 5 * time.Millisecond
)

func (f *fakeChat) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// TestSession_ConcurrentSendsWhilePending tests that every send issued
// while another is in flight is refused without touching the transcript.
func TestSession_ConcurrentSendsWhilePending(t *testing.T) {
	f := &fakeChat{
		answers: []*api.ChatResponse{answer("done", "general", true)},
		block:   make(chan struct{}),
	}
	s := newTestSession(f)
	defer s.Close()

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- s.SendMessage(context.Background(), "first")
	}()

	// Wait for the first send to reach the backend.
	require.Eventually(t, func() bool {
		return s.State() == StatePending
	}, waitTimeout, pollInterval)

	var wg sync.WaitGroup
	busy := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			busy <- s.SendMessage(context.Background(), "pile-on")
		}()
	}
	wg.Wait()
	close(busy)

	for err := range busy {
		require.ErrorIs(t, err, ErrBusy)
	}

	close(f.block)
	require.NoError(t, <-firstDone)

	require.Equal(t, StateIdle, s.State())
	require.Equal(t, 3, s.Len(), "refused sends must not touch the transcript")
	require.Equal(t, 1, f.callCount(), "refused sends must not reach the backend")
}

// TestSession_ParallelSendStress tests transcript consistency when many
// goroutines race for the session at once.
func TestSession_ParallelSendStress(t *testing.T) {
	const n = 50

	f := &fakeChat{}
	for i := 0; i < n; i++ {
		f.answers = append(f.answers, answer("ok", "general", true))
	}
	s := newTestSession(f)
	defer s.Close()

	results := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- s.SendMessage(context.Background(), "hello")
		}()
	}
	wg.Wait()
	close(results)

	var ok, refused int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrBusy):
			refused++
		default:
			t.Fatalf("unexpected send error: %v", err)
		}
	}

	require.Equal(t, n, ok+refused)
	require.GreaterOrEqual(t, ok, 1, "at least one send must win admission")
	require.Equal(t, ok, f.callCount(), "one backend call per admitted send")
	require.Equal(t, 1+2*ok, s.Len(), "each admitted send adds exactly two messages")
	require.Equal(t, StateIdle, s.State())
}
