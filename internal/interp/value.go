package interp

import (
	"fmt"
	"strconv"
)

// equal implements spec.md §3's Value equality: Nil==Nil, same-variant
// value equality, any cross-variant comparison is false, and it never
// errors — including for variants (functions, classes, instances) that
// Go's native == would panic on when the dynamic types differ in
// comparability.
func equal(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case *instance:
		bv, ok := b.(*instance)
		return ok && av == bv
	case *class:
		bv, ok := b.(*class)
		return ok && av == bv
	case *function:
		bv, ok := b.(*function)
		return ok && av == bv
	case Callable:
		bv, ok := b.(Callable)
		return ok && av == bv
	default:
		return false
	}
}

// truthy implements spec.md §3: Nil and Bool(false) are falsy, everything
// else (including Number(0) and "") is truthy.
func truthy(v interface{}) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// stringify formats a Value for `print` and REPL echo, per spec.md §6.
func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return formatNumber(val)
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// formatNumber prints the shortest decimal representation, dropping the
// trailing ".0" for integral values.
func formatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if fl, err := strconv.ParseFloat(s, 64); err == nil && fl == float64(int64(fl)) {
		if _, _, isExp := splitExponent(s); !isExp {
			return strconv.FormatInt(int64(fl), 10)
		}
	}
	return s
}

func splitExponent(s string) (string, string, bool) {
	for i, c := range s {
		if c == 'e' || c == 'E' {
			return s[:i], s[i:], true
		}
	}
	return s, "", false
}
