package adapter

// Outcome is the result of one call attempt. It is produced once and never merged.
type Outcome[T any] struct {
	Kind    Kind
	Payload []T
	Err     error
	// KeyMissing is set when the response lacked its top-level collection key
	KeyMissing bool
}

// Collect normalizes a list payload. A nil items pointer means the key was absent from the body.
func Collect[T any](items *[]T, err error) Outcome[T] {
	if err != nil {
		return Fail[T](err)
	}
	if items == nil {
		return Outcome[T]{Kind: KindSuccess, KeyMissing: true}
	}
	return Outcome[T]{Kind: KindSuccess, Payload: *items}
}

// Single normalizes a one-record payload
func Single[T any](item *T, err error) Outcome[T] {
	if err != nil {
		return Fail[T](err)
	}
	if item == nil {
		return Outcome[T]{Kind: KindSuccess, KeyMissing: true}
	}
	return Outcome[T]{Kind: KindSuccess, Payload: []T{*item}}
}

// Fail builds a failure outcome from err
func Fail[T any](err error) Outcome[T] {
	return Outcome[T]{Kind: Classify(err), Err: err}
}

// IsError reports whether the outcome is any kind of failure
func (o Outcome[T]) IsError() bool {
	return o.Kind != KindSuccess
}

// Empty reports a zero-result success
func (o Outcome[T]) Empty() bool {
	return o.Kind == KindSuccess && len(o.Payload) == 0
}
