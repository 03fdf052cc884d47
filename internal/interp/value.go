package interp

import (
	"fmt"
	"strconv"
	"strings"
)

// Callable is anything invokable with `(...)`  : a user function, a
// lambda, a class (constructing an instance), or a native.
type Callable interface {
	Arity() int
	Call(i *Interpreter, args []any) (any, error)
	String() string
}

// isTruthy implements Lox's truthiness: nil and false are falsey,
// everything else — including 0 and "" — is truthy.
func isTruthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// isEqual implements Lox's `==`: nil equals only nil, numbers/strings/bools
// compare by value, everything else (functions, classes, instances)
// compares by identity.
func isEqual(a, b any) bool {
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
	default:
		return a == b
	}
}

// stringify renders a Lox value the way `print` and string concatenation
// do: integral doubles print without a trailing ".0".
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		if val {
			return "true"
		}
		return "false"
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

// Stringify exposes stringify to callers outside the package (the REPL,
// echoing a bare expression's value).
func Stringify(v any) string {
	return stringify(v)
}

func formatNumber(f float64) string {
	text := strconv.FormatFloat(f, 'f', -1, 64)
	return strings.TrimSuffix(text, ".0")
}
