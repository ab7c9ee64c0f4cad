/*
Package replay implements resumable, serializable wrappers around
value-producing iteration routines.

A wrapper is constructed from a factory: a routine that, given fixed
arguments, produces a fresh, restartable lazy sequence of values (finite or
infinite). The wrapper advances the sequence step by step, capturing every
produced value and a step counter. Its state can be snapshotted, encoded
into a portable record, decoded, and restored.

Restoration is replay-based: the factory is re-invoked with the recorded
constructor arguments and the fresh sequence is advanced silently up to the
recorded step count. There is no true coroutine resumption; restore is an
O(stepCount) operation. This requires the factory to be deterministic and
side-effect-free across repeated invocations with identical arguments. The
precondition is stated, not verified: an impure factory produces silently
incorrect restore results.

Wrapper state is never accessed concurrently by the package itself. A caller
exposing one wrapper across goroutines must serialize all calls to Advance,
Snapshot and Restore on that wrapper.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 The Tailor Project Authors

*/
package replay

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tailor.replay'.
func tracer() tracing.Trace {
	return tracing.Select("tailor.replay")
}
