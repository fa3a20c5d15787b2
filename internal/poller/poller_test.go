package poller

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tannerdj/wokelens/internal/domain"
)

type scriptedSource struct {
	mu       sync.Mutex
	statuses []domain.PhotoStatus
	calls    int
}

func (s *scriptedSource) GetScoped(ctx context.Context, id string, scope domain.Scope) (*domain.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := s.statuses[len(s.statuses)-1]
	if s.calls < len(s.statuses) {
		status = s.statuses[s.calls]
	}
	s.calls++
	photo := &domain.Photo{ID: id, Status: status}
	if status == domain.PhotoStatusDone {
		photo.Description = "done description"
	}
	if status == domain.PhotoStatusError {
		photo.Error = "Failed to download image"
	}
	return photo, nil
}

func collectTransitions() (func(Transition), func() []Transition) {
	var mu sync.Mutex
	var seen []Transition
	record := func(tr Transition) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, tr)
	}
	snapshot := func() []Transition {
		mu.Lock()
		defer mu.Unlock()
		return append([]Transition(nil), seen...)
	}
	return record, snapshot
}

func waitForState(t *testing.T, p *Poller, want State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if p.State() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("poller never reached state %q, stuck at %q", want, p.State())
}

func TestPoller_PendingToDone(t *testing.T) {
	source := &scriptedSource{statuses: []domain.PhotoStatus{
		domain.PhotoStatusPending,
		domain.PhotoStatusPending,
		domain.PhotoStatusDone,
	}}
	record, snapshot := collectTransitions()
	p := New(source, 5*time.Millisecond, record)

	assert.Equal(t, StateIdle, p.State())

	p.Watch(context.Background(), "photo-1", domain.Scope{})
	waitForState(t, p, StateDone)

	transitions := snapshot()
	require.Len(t, transitions, 2)
	assert.Equal(t, Transition{From: StateIdle, To: StatePending}, Transition{From: transitions[0].From, To: transitions[0].To})
	assert.Equal(t, StatePending, transitions[1].From)
	assert.Equal(t, StateDone, transitions[1].To)
	require.NotNil(t, transitions[1].Photo)
	assert.Equal(t, "done description", transitions[1].Photo.Description)
}

func TestPoller_PendingToError(t *testing.T) {
	source := &scriptedSource{statuses: []domain.PhotoStatus{
		domain.PhotoStatusPending,
		domain.PhotoStatusError,
	}}
	record, snapshot := collectTransitions()
	p := New(source, 5*time.Millisecond, record)

	p.Watch(context.Background(), "photo-1", domain.Scope{})
	waitForState(t, p, StateError)

	transitions := snapshot()
	last := transitions[len(transitions)-1]
	assert.Equal(t, StateError, last.To)
	require.NotNil(t, last.Photo)
	assert.Equal(t, "Failed to download image", last.Photo.Error)
}

func TestPoller_Reset(t *testing.T) {
	source := &scriptedSource{statuses: []domain.PhotoStatus{domain.PhotoStatusPending}}
	record, snapshot := collectTransitions()
	p := New(source, 5*time.Millisecond, record)

	p.Watch(context.Background(), "photo-1", domain.Scope{})
	assert.Equal(t, StatePending, p.State())

	p.Reset()
	assert.Equal(t, StateIdle, p.State())

	transitions := snapshot()
	last := transitions[len(transitions)-1]
	assert.Equal(t, StateIdle, last.To)
	assert.Nil(t, last.Photo)
}

func TestPoller_WatchAgainAfterTerminal(t *testing.T) {
	source := &scriptedSource{statuses: []domain.PhotoStatus{domain.PhotoStatusDone}}
	p := New(source, 5*time.Millisecond, nil)

	p.Watch(context.Background(), "photo-1", domain.Scope{})
	waitForState(t, p, StateDone)

	// A fresh watch starts the projection over.
	source2 := &scriptedSource{statuses: []domain.PhotoStatus{domain.PhotoStatusPending}}
	p2 := New(source2, 5*time.Millisecond, nil)
	p2.Watch(context.Background(), "photo-2", domain.Scope{})
	assert.Equal(t, StatePending, p2.State())
	p2.Reset()
}
