package interp

import "time"

// clockFn is the built-in `clock` native, returning wall-clock seconds as
// a Number, per spec.md §1 and §4.6.
type clockFn struct{}

func (clockFn) Arity() int { return 0 }

func (clockFn) Call(in *Interpreter, args []interface{}) (interface{}, error) {
	return float64(time.Now().UnixNano()) / float64(time.Second), nil
}

func (clockFn) String() string { return "< native fn >" }
