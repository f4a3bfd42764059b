package try

// something have method `Fatal`.
//
// For example in standard libraries: *testing.T, log.Logger
type Fataler interface {
	Fatal(...any)
}

// Wrapper of a pair of (T, error).
//
// When error is nil, the Either is "ok" and the T value is valid.
// Otherwise the T value must not be used.
type Either[T any] struct {
	value T
	err   error
}

// To wraps a (value, error) pair into Either.
func To[T any](ok T, ng error) Either[T] {
	return Either[T]{value: ok, err: ng}
}

// Get returns the wrapped pair as is.
func (e Either[T]) Get() (T, error) {
	return e.value, e.err
}

// OrFatal returns the value when the Either is "ok".
//
// Otherwise it calls ftl.Fatal(err).
// If ftl has a "Helper()" method (like *testing.T), that is called first.
func (e Either[T]) OrFatal(ftl Fataler) T {
	if e.err == nil {
		return e.value
	}
	if hlp, ok := ftl.(interface{ Helper() }); ok {
		hlp.Helper()
	}
	ftl.Fatal(e.err)
	return *new(T)
}

// OrDefault returns the value when the Either is "ok", and d otherwise.
func (e Either[T]) OrDefault(d T) T {
	if e.err == nil {
		return e.value
	}
	return d
}
