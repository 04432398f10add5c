package vgfx

// Result is the status code every public vgfx operation returns (§6.3).
// The API surface never panics or returns a Go error across the
// paint-tree mutator boundary; it reports success or failure kind here
// instead.
type Result uint8

const (
	// ResultSuccess indicates the operation completed normally.
	ResultSuccess Result = iota
	// ResultInvalidArgument covers null inputs, out-of-range enum
	// values, malformed geometry (NaN coordinates), and zero-sized
	// targets.
	ResultInvalidArgument
	// ResultInsufficientCondition covers calls made in a state where
	// prerequisites are unmet, e.g. draw before update, sync with no
	// draw in flight, or term before init.
	ResultInsufficientCondition
	// ResultFailedAllocation means an allocator returned failure; the
	// caller-visible state is left unmodified.
	ResultFailedAllocation
	// ResultMemoryCorruption means an internal invariant broke (e.g. a
	// reference count underflow). Library-fatal.
	ResultMemoryCorruption
	// ResultNotSupported means the requested format or backend isn't
	// compiled in.
	ResultNotSupported
	// ResultUnknown is reserved for defensive paths.
	ResultUnknown
)

// String returns the canonical (C++-spelled, per spec §9 Open
// Questions) name of the result code.
func (r Result) String() string {
	switch r {
	case ResultSuccess:
		return "Success"
	case ResultInvalidArgument:
		return "InvalidArgument"
	case ResultInsufficientCondition:
		return "InsufficientCondition"
	case ResultFailedAllocation:
		return "FailedAllocation"
	case ResultMemoryCorruption:
		return "MemoryCorruption"
	case ResultNotSupported:
		return "NotSupported"
	default:
		return "Unknown"
	}
}

// OK reports whether r is ResultSuccess.
func (r Result) OK() bool {
	return r == ResultSuccess
}
