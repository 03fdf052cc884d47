package interp

import "time"

// nativeClock implements Lox's built-in `clock()`: milliseconds since the
// Unix epoch, as a float so it composes with ordinary Lox arithmetic.
type nativeClock struct{}

func (nativeClock) Arity() int { return 0 }

func (nativeClock) Call(i *Interpreter, args []any) (any, error) {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond), nil
}

func (nativeClock) String() string { return "<native fn clock>" }
