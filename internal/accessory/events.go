package accessory

import (
	"context"
	"sync"
)

// Completion is the framework-supplied callback that delivers the outcome of
// one accessory event. Exactly one of value or err is meaningful.
type Completion func(value any, err error)

// Operation is one accessory event answered by a device round trip.
type Operation func(ctx context.Context) (any, error)

// Binder adapts operations returning (value, error) to the accessory
// framework's completion convention.
//
// Each dispatched operation resolves its completion exactly once: never both
// success and failure, and never zero times once the operation returns.
// There is no cancellation; an issued device call runs to completion or to
// its bound timeout.
type Binder struct{}

// NewBinder creates an event binder.
func NewBinder() *Binder {
	return &Binder{}
}

// Dispatch runs op and delivers its result to complete.
//
// The completion is guarded: even if a completion implementation is invoked
// again through some other path, only the first invocation lands.
//
// Parameters:
//   - ctx: Context bounding the operation
//   - op: The device operation to run
//   - complete: Framework completion, invoked exactly once
func (b *Binder) Dispatch(ctx context.Context, op Operation, complete Completion) {
	guarded := guardCompletion(complete)

	value, err := op(ctx)
	if err != nil {
		guarded(nil, err)
		return
	}
	guarded(value, nil)
}

// guardCompletion wraps a completion so repeated invocations collapse to one.
func guardCompletion(complete Completion) Completion {
	var once sync.Once
	return func(value any, err error) {
		once.Do(func() {
			complete(value, err)
		})
	}
}
