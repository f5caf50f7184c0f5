package model

// AppState is a foreground/background application state.
type AppState string

const (
	StateForeground AppState = "foreground"
	StateBackground AppState = "background"
)

// Lifecycle delivers app-state transitions to subscribers. The returned
// cancel releases the subscription.
type Lifecycle interface {
	Subscribe(fn func(AppState)) (cancel func())
}
