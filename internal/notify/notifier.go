// Package notify drives the transient "item added" notification shown after
// a drink is put in the cart.
//
// The notification is a small state machine:
//
//	Idle --Notify--> Showing --fadeAfter--> FadingOut --clearAfter--> Idle
//
// A new Notify from any state restarts the sequence; there is no queue, the
// latest notification replaces the one in flight.
package notify

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultFadeAfter is how long a notification is fully visible
	// (0.5s fade in + 2s shown).
	DefaultFadeAfter = 2500 * time.Millisecond
	// DefaultClearAfter is when the notification disappears, measured from Notify.
	DefaultClearAfter = 3000 * time.Millisecond
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseShowing
	PhaseFadingOut
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseShowing:
		return "showing"
	case PhaseFadingOut:
		return "fading_out"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Notice is the content of a notification.
type Notice struct {
	Message  string
	ItemName string
}

// State is a point-in-time view of the notifier. Notice is nil when Idle.
type State struct {
	Phase  Phase
	Notice *Notice
}

// Timer is a pending scheduled callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type Option func(*Notifier)

func WithScheduler(s Scheduler) Option {
	return func(n *Notifier) { n.sched = s }
}

func WithDelays(fadeAfter, clearAfter time.Duration) Option {
	return func(n *Notifier) {
		n.fadeAfter = fadeAfter
		n.clearAfter = clearAfter
	}
}

type Notifier struct {
	mu         sync.Mutex
	sched      Scheduler
	fadeAfter  time.Duration
	clearAfter time.Duration

	// gen identifies the current sequence; timers from older ones are ignored.
	gen    uint64
	state  State
	timers []Timer
}

func New(opts ...Option) *Notifier {
	n := &Notifier{
		sched:      realScheduler{},
		fadeAfter:  DefaultFadeAfter,
		clearAfter: DefaultClearAfter,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify shows "<itemName> added to cart!" and restarts the fade sequence.
func (n *Notifier) Notify(itemName string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.stopTimersLocked()
	n.gen++
	gen := n.gen

	n.state = State{
		Phase: PhaseShowing,
		Notice: &Notice{
			Message:  fmt.Sprintf("%s added to cart!", itemName),
			ItemName: itemName,
		},
	}

	n.timers = []Timer{
		n.sched.AfterFunc(n.fadeAfter, func() { n.fade(gen) }),
		n.sched.AfterFunc(n.clearAfter, func() { n.clear(gen) }),
	}
}

func (n *Notifier) fade(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if gen != n.gen || n.state.Phase != PhaseShowing {
		return
	}
	n.state.Phase = PhaseFadingOut
}

func (n *Notifier) clear(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if gen != n.gen {
		return
	}
	n.state = State{Phase: PhaseIdle}
	n.timers = nil
}

// State returns the current notification state.
func (n *Notifier) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()

	st := n.state
	if st.Notice != nil {
		notice := *st.Notice
		st.Notice = &notice
	}
	return st
}

// Close cancels pending timers and returns to Idle.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.stopTimersLocked()
	n.gen++
	n.state = State{Phase: PhaseIdle}
}

func (n *Notifier) stopTimersLocked() {
	for _, t := range n.timers {
		t.Stop()
	}
	n.timers = nil
}
