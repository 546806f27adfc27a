package service

// Kind tells a caller which of the three outcomes a Result holds.
type Kind int

const (
	KindValue Kind = iota
	KindAbsent
	KindFailure
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindAbsent:
		return "absent"
	case KindFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Result is the outcome of one dashboard operation. Exactly one of the
// following holds: Kind == KindValue and Value is set, Kind == KindAbsent,
// or Kind == KindFailure and Err is non-nil.
type Result[T any] struct {
	Kind  Kind
	Value T
	Err   error
}

func Value[T any](v T) Result[T] { return Result[T]{Kind: KindValue, Value: v} }

func Absent[T any]() Result[T] { return Result[T]{Kind: KindAbsent} }

func Failure[T any](err error) Result[T] { return Result[T]{Kind: KindFailure, Err: err} }

// Unwrap converts back to the usual Go pair; ok is false for absent and failed results.
func (r Result[T]) Unwrap() (v T, ok bool, err error) {
	return r.Value, r.Kind == KindValue, r.Err
}
