package replay

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 The Tailor Project Authors

*/

import (
	"errors"
	"fmt"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/lists/arraylist"
)

// ErrExhausted signals advancing past the end of a finite sequence. It is a
// normal, expected terminal signal, not a defect.
var ErrExhausted = errors.New("iteration exhausted")

// Sequence is one lazy run of values. Next returns the next element, or
// ErrExhausted once the sequence is finished.
type Sequence interface {
	Next() (interface{}, error)
}

// Factory produces a fresh, restartable sequence for fixed arguments.
//
// For replay-based restoration to be correct, a factory must be
// deterministic and side-effect-free across repeated invocations with
// identical arguments. This is a precondition of the package, not something
// the wrapper verifies.
type Factory func(args []interface{}, kwargs map[string]interface{}) (Sequence, error)

// State is a snapshot of a wrapper: the constructor arguments, the number of
// advancement steps taken, the ordered history of produced values, and the
// exhaustion flag. States are plain data; see Encode/Decode for the portable
// representation.
type State struct {
	Args      []interface{}          `json:"constructorArgs"`
	Kwargs    map[string]interface{} `json:"constructorKwargs"`
	StepCount int                    `json:"stepCount"`
	Yielded   []interface{}          `json:"yieldedHistory"`
	Exhausted bool                   `json:"exhausted"`
}

// Fingerprint returns a stable digest of a state, suitable for comparing
// snapshots.
func (s State) Fingerprint() string {
	return fmt.Sprintf("%x", structhash.Sha1(s, 1))
}

// Wrapper drives a sequence produced by a factory, recording enough state to
// pause, snapshot, transmit and resume the iteration.
type Wrapper struct {
	factory   Factory
	args      []interface{}
	kwargs    map[string]interface{}
	seq       Sequence
	steps     int
	history   *arraylist.List
	exhausted bool
}

// Wrap constructs a wrapper around factory(args, kwargs). The factory is
// invoked once to obtain the initial sequence. Argument values are
// canonicalized (all Go integer kinds become int64, float32 becomes float64)
// so that snapshots round-trip the portable encoding exactly.
func Wrap(factory Factory, args []interface{}, kwargs map[string]interface{}) (*Wrapper, error) {
	if factory == nil {
		return nil, errors.New("nil factory")
	}
	cargs := canonSlice(args)
	ckwargs := canonMap(kwargs)
	seq, err := factory(cargs, ckwargs)
	if err != nil {
		return nil, err
	}
	return &Wrapper{
		factory: factory,
		args:    cargs,
		kwargs:  ckwargs,
		seq:     seq,
		history: arraylist.New(),
	}, nil
}

// String is a debug Stringer for wrappers.
func (w *Wrapper) String() string {
	return fmt.Sprintf("<wrapper steps=%d exhausted=%v>", w.steps, w.exhausted)
}

// Advance produces the next element of the sequence, increments the step
// counter and appends the element to the yielded history. Once the
// underlying sequence is finished, Advance fails with ErrExhausted, now and
// on every subsequent call.
func (w *Wrapper) Advance() (interface{}, error) {
	if w.exhausted {
		return nil, ErrExhausted
	}
	v, err := w.seq.Next()
	if err != nil {
		if errors.Is(err, ErrExhausted) {
			w.exhausted = true
		}
		return nil, err
	}
	v = canon(v)
	w.steps++
	w.history.Add(v)
	tracer().Debugf("step %d produced %v", w.steps, v)
	return v, nil
}

// StepCount returns the number of successful Advance calls.
func (w *Wrapper) StepCount() int {
	return w.steps
}

// Exhausted reports whether the underlying sequence has finished.
func (w *Wrapper) Exhausted() bool {
	return w.exhausted
}

// Snapshot returns a copy of the current state. The wrapper is not mutated;
// the returned state shares no mutable storage with it.
func (w *Wrapper) Snapshot() State {
	yielded := make([]interface{}, w.history.Size())
	for i := 0; i < w.history.Size(); i++ {
		v, _ := w.history.Get(i)
		yielded[i] = v
	}
	return State{
		Args:      copySlice(w.args),
		Kwargs:    copyMap(w.kwargs),
		StepCount: w.steps,
		Yielded:   yielded,
		Exhausted: w.exhausted,
	}
}

// Restore adopts a recorded state by replaying: the factory is re-invoked
// with the state's constructor arguments, the fresh sequence is advanced
// silently up to the recorded step count, then the recorded history and
// exhaustion flag become current.
//
// Restore is O(stepCount). If the fresh sequence finishes early during the
// silent replay, the wrapper is marked exhausted.
func (w *Wrapper) Restore(s State) error {
	if s.StepCount < 0 {
		return fmt.Errorf("negative step count %d", s.StepCount)
	}
	args := canonSlice(s.Args)
	kwargs := canonMap(s.Kwargs)
	exhausted := s.Exhausted
	var seq Sequence
	if !exhausted {
		var err error
		if seq, err = w.factory(args, kwargs); err != nil {
			return err
		}
		tracer().Debugf("replaying %d step(s)", s.StepCount)
		for i := 0; i < s.StepCount; i++ {
			if _, err = seq.Next(); err != nil {
				if !errors.Is(err, ErrExhausted) {
					return err
				}
				exhausted = true
				break
			}
		}
	}
	w.args = args
	w.kwargs = kwargs
	w.seq = seq
	w.steps = s.StepCount
	w.history = arraylist.New()
	for _, v := range s.Yielded {
		w.history.Add(canon(v))
	}
	w.exhausted = exhausted
	return nil
}

// Clone constructs an independent wrapper positioned at the current state.
// Advancing the clone does not affect this wrapper, and vice versa.
func (w *Wrapper) Clone() (*Wrapper, error) {
	clone, err := Wrap(w.factory, w.args, w.kwargs)
	if err != nil {
		return nil, err
	}
	if err = clone.Restore(w.Snapshot()); err != nil {
		return nil, err
	}
	return clone, nil
}

// --- Helpers -----------------------------------------------------------------

func copySlice(vs []interface{}) []interface{} {
	if vs == nil {
		return nil
	}
	out := make([]interface{}, len(vs))
	copy(out, vs)
	return out
}

func copyMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
