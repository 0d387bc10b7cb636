package arena

import "fmt"

// Sentinel errors (capacity, bounds, UTF-8, format and index conversion):
// reported as values, never panicked.
var (
	ErrBufferFull        = fmt.Errorf("arena: buffer full")
	ErrCapacityExceeded  = fmt.Errorf("arena: capacity exceeded")
	ErrInvalidBounds     = fmt.Errorf("arena: invalid bounds")
	ErrInvalidUTF8       = fmt.Errorf("arena: invalid utf8")
	ErrFormatError       = fmt.Errorf("arena: format error")
	ErrIndexConversion   = fmt.Errorf("arena: index does not fit in index type")
)

// OutOfSpaceError reports a failed allocation due to insufficient
// remaining headroom between head and tail.
type OutOfSpaceError struct {
	Requested uint32
	Available uint32
}

func (e *OutOfSpaceError) Error() string {
	return fmt.Sprintf("arena: out of space: requested %d, available %d", e.Requested, e.Available)
}

func (e *OutOfSpaceError) Is(target error) bool {
	_, ok := target.(*OutOfSpaceError)
	return ok
}

// CrossArenaError reports a handle used against an arena that did not
// produce it.
type CrossArenaError struct {
	Expected uint32
	Found    uint32
}

func (e *CrossArenaError) Error() string {
	return fmt.Sprintf("arena: cross-arena access: expected id %d, found %d", e.Expected, e.Found)
}

func (e *CrossArenaError) Is(target error) bool {
	_, ok := target.(*CrossArenaError)
	return ok
}

// InvalidGenerationError reports a handle that outlived a Clear/RestoreTo.
type InvalidGenerationError struct {
	Expected uint32
	Found    uint32
}

func (e *InvalidGenerationError) Error() string {
	return fmt.Sprintf("arena: invalid generation: expected %d, found %d", e.Expected, e.Found)
}

func (e *InvalidGenerationError) Is(target error) bool {
	_, ok := target.(*InvalidGenerationError)
	return ok
}
