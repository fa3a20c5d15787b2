// Package poller projects a photo record's stored status onto a local state
// machine. It is the server-side equivalent of the browser's live
// subscription: poll the record, surface transitions, never write back.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/tannerdj/wokelens/internal/domain"
	"github.com/tannerdj/wokelens/internal/logger"
)

// State is the projected local state of one watched photo.
type State string

const (
	StateIdle    State = "idle"
	StatePending State = "pending"
	StateDone    State = "done"
	StateError   State = "error"
)

// Transition is one observed state change, carrying the record snapshot that
// caused it. Photo is nil only for the reset transition back to idle.
type Transition struct {
	From  State
	To    State
	Photo *domain.Photo
}

// Source reads a photo record under a caller scope.
type Source interface {
	GetScoped(ctx context.Context, id string, scope domain.Scope) (*domain.Photo, error)
}

// Poller watches a single photo record and reports its transitions. A Poller
// can be reused across photos through Reset, but watches one at a time.
type Poller struct {
	source   Source
	interval time.Duration
	onChange func(Transition)

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a poller. onChange is invoked from the polling goroutine for
// every transition, including the terminal one.
func New(source Source, interval time.Duration, onChange func(Transition)) *Poller {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &Poller{
		source:   source,
		interval: interval,
		onChange: onChange,
		state:    StateIdle,
	}
}

// State returns the current projected state.
func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Watch starts following a photo. It transitions idle -> pending immediately
// and then polls until the record reaches done or error, ctx is cancelled, or
// Reset is called. Calling Watch while already watching resets first.
func (p *Poller) Watch(ctx context.Context, photoID string, scope domain.Scope) {
	p.Reset()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	p.mu.Lock()
	p.cancel = cancel
	p.done = done
	p.mu.Unlock()

	p.transition(StatePending, nil)

	go func() {
		defer close(done)
		p.run(ctx, photoID, scope)
	}()
}

// Reset stops any active watch and returns the projection to idle. Local
// state is discarded; the record itself is untouched.
func (p *Poller) Reset() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	p.transition(StateIdle, nil)
}

func (p *Poller) run(ctx context.Context, photoID string, scope domain.Scope) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		photo, err := p.source.GetScoped(ctx, photoID, scope)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.CtxWarn(ctx, "photo poll failed: %v", err)
		} else if photo != nil && photo.Status.IsTerminal() {
			if photo.Status == domain.PhotoStatusDone {
				p.transition(StateDone, photo)
			} else {
				p.transition(StateError, photo)
			}
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (p *Poller) transition(to State, photo *domain.Photo) {
	p.mu.Lock()
	from := p.state
	if from == to {
		p.mu.Unlock()
		return
	}
	p.state = to
	p.mu.Unlock()

	if p.onChange != nil {
		p.onChange(Transition{From: from, To: to, Photo: photo})
	}
}
