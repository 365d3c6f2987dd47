package interp

// returnSignal is the unwinding value carried by a Return statement. It
// implements error only so it can travel the same return channel as real
// errors through exec/eval; it must never be observed outside the
// function-call boundary in Callable.Call, per spec.md §7.
type returnSignal struct {
	value interface{}
}

func newReturnSignal(value interface{}) *returnSignal {
	return &returnSignal{value: value}
}

func (r *returnSignal) Error() string {
	return "return signal (internal control flow, not a real error)"
}

// asReturn reports whether err is a returnSignal and, if so, its value.
func asReturn(err error) (*returnSignal, bool) {
	r, ok := err.(*returnSignal)
	return r, ok
}
