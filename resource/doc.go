// Package resource provides a memory budget that containers charge their
// arena capacity against.
//
// A single Controller may be shared by many containers living on different
// goroutines; the containers themselves are single-owner, the budget is not.
// Acquisition never blocks: a request that would exceed the limit fails with
// ErrMemoryLimitExceeded and the caller decides whether to shrink, retry with
// a smaller request or give up.
//
//	budget := resource.NewController(resource.Config{MemoryLimitBytes: 64 << 20})
//	v := polyvec.New[fmt.Stringer](polyvec.WithMemoryController(budget))
//	if err := v.TryReserve(1 << 30); err != nil {
//	    // errors.Is(err, resource.ErrMemoryLimitExceeded)
//	}
package resource
