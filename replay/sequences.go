package replay

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 The Tailor Project Authors

*/

// SequenceFunc adapts an ordinary function to the Sequence interface.
type SequenceFunc func() (interface{}, error)

// Next is part of the Sequence interface.
func (f SequenceFunc) Next() (interface{}, error) {
	return f()
}

// Slice returns a finite sequence over fixed values.
func Slice(values ...interface{}) Sequence {
	i := 0
	return SequenceFunc(func() (interface{}, error) {
		if i >= len(values) {
			return nil, ErrExhausted
		}
		v := values[i]
		i++
		return v, nil
	})
}

// Countdown returns a sequence producing n, n-1, … 1. It is the canonical
// demo factory: deterministic and side-effect-free, hence safe for
// replay-based restoration.
func Countdown(n int64) Sequence {
	return SequenceFunc(func() (interface{}, error) {
		if n <= 0 {
			return nil, ErrExhausted
		}
		v := n
		n--
		return v, nil
	})
}

// Fibonacci returns a sequence producing the first count Fibonacci numbers.
func Fibonacci(count int64) Sequence {
	var a, b int64 = 0, 1
	return SequenceFunc(func() (interface{}, error) {
		if count <= 0 {
			return nil, ErrExhausted
		}
		count--
		v := a
		a, b = b, a+b
		return v, nil
	})
}
