package lifecycle

import (
	"sync"

	"github.com/placeguide/account-core/internal/model"
)

var _ model.Lifecycle = (*Notifier)(nil)

// Notifier is an in-process application state source. Whatever owns the
// process (a signal handler, a dev console) publishes foreground/background
// transitions and subscribers get called in registration-independent order.
type Notifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(model.AppState)
}

func NewNotifier() *Notifier {
	return &Notifier{
		subs: make(map[int]func(model.AppState)),
	}
}

// Subscribe registers fn for future state changes. The returned cancel
// function removes the subscription and is safe to call more than once.
func (n *Notifier) Subscribe(fn func(model.AppState)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.subs[id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// Publish delivers state to every current subscriber synchronously.
func (n *Notifier) Publish(state model.AppState) {
	n.mu.Lock()
	fns := make([]func(model.AppState), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}
