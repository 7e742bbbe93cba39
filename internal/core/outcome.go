package core

// OutcomeStatus says whether an optional value was computed upstream.
type OutcomeStatus int

const (
	// NotComputed marks a field the upstream pipeline left empty.
	NotComputed OutcomeStatus = iota
	// Computed marks a present value.
	Computed
	// Failed marks a value whose derivation returned an error.
	Failed
)

func (s OutcomeStatus) String() string {
	switch s {
	case Computed:
		return "computed"
	case Failed:
		return "failed"
	}
	return "not_computed"
}

// Outcome distinguishes "not computed" from "error" so callers choose their
// own fallback text.
type Outcome[T any] struct {
	Value  T
	Status OutcomeStatus
	Err    error
}

// Ok reports whether the value is present.
func (o Outcome[T]) Ok() bool { return o.Status == Computed }

// Or returns the value when present and fallback otherwise.
func (o Outcome[T]) Or(fallback T) T {
	if o.Ok() {
		return o.Value
	}
	return fallback
}

func computed[T any](v T) Outcome[T] { return Outcome[T]{Value: v, Status: Computed} }

func failed[T any](err error) Outcome[T] { return Outcome[T]{Status: Failed, Err: err} }

// stored wraps an optional record field; the zero value means not computed.
func stored[T comparable](v T) Outcome[T] {
	var zero T
	if v == zero {
		return Outcome[T]{}
	}
	return computed(v)
}

// derived wraps a value computed by the engine.
func derived[T any](v T, err error) Outcome[T] {
	if err != nil {
		return failed[T](err)
	}
	return computed(v)
}
