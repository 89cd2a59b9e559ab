// Package browse holds the per-screen state of the cocktail browser.
//
// Every type here is confined to a single goroutine (the Bubble Tea update
// loop or the CLI main goroutine). Fetches are split in three steps: a Begin
// method that mutates state and returns a request, the request's Run method
// that performs the HTTP call without touching browser state, and an Apply
// method that reduces the result back into the browser.
package browse

// FetchStatus is the tag of a FetchState
type FetchStatus int

const (
	StatusIdle FetchStatus = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s FetchStatus) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// FetchState is a tagged variant: Idle | Loading | Ready(Value) | Failed(Err).
// Value holds the last successful result and survives a later failure.
type FetchState[T any] struct {
	Status FetchStatus
	Value  T
	Err    error
}

// FetchEvent is one of FetchStarted, FetchSucceeded or FetchFailed
type FetchEvent[T any] interface {
	reduce(FetchState[T]) FetchState[T]
}

// FetchStarted moves any state to Loading
type FetchStarted[T any] struct{}

// FetchSucceeded moves to Ready with a new value
type FetchSucceeded[T any] struct{ Value T }

// FetchFailed moves to Failed, keeping the last value
type FetchFailed[T any] struct{ Err error }

func (FetchStarted[T]) reduce(s FetchState[T]) FetchState[T] {
	s.Status = StatusLoading
	s.Err = nil
	return s
}

func (e FetchSucceeded[T]) reduce(s FetchState[T]) FetchState[T] {
	return FetchState[T]{Status: StatusReady, Value: e.Value}
}

func (e FetchFailed[T]) reduce(s FetchState[T]) FetchState[T] {
	s.Status = StatusFailed
	s.Err = e.Err
	return s
}

// Reduce applies an event and returns the next state
func (s FetchState[T]) Reduce(ev FetchEvent[T]) FetchState[T] {
	if ev == nil {
		return s
	}
	return ev.reduce(s)
}

// Loading reports whether a fetch is in flight
func (s FetchState[T]) Loading() bool { return s.Status == StatusLoading }

// Ready reports whether Value holds a successful result
func (s FetchState[T]) Ready() bool { return s.Status == StatusReady }

// Failed reports whether the last fetch failed
func (s FetchState[T]) Failed() bool { return s.Status == StatusFailed }

// resultEvent turns a (value, error) pair into the matching terminal event
func resultEvent[T any](v T, err error) FetchEvent[T] {
	if err != nil {
		return FetchFailed[T]{Err: err}
	}
	return FetchSucceeded[T]{Value: v}
}
