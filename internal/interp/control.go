package interp

// returnSignal and breakSignal are not real errors: they implement error so
// that execute/executeBlock's ordinary error-propagation plumbing carries
// them up to the frame that knows how to catch them (Call for return,
// the enclosing loop for break), without a separate control-flow channel.
type returnSignal struct {
	value any
}

func (r *returnSignal) Error() string {
	return "return outside of a function"
}

type breakSignal struct{}

func (b *breakSignal) Error() string {
	return "break outside of a loop"
}
