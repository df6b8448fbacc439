// internal/engine/batch/gate.go
package batch

import "context"

// Gate is a counting semaphore that bounds how many goroutines run a stage at once
type Gate struct {
	sem chan struct{}
}

// NewGate creates a gate admitting n holders; n <= 0 uses DefaultConcurrency
func NewGate(n int) *Gate {
	if n <= 0 {
		n = DefaultConcurrency
	}
	return &Gate{sem: make(chan struct{}, n)}
}

// Acquire blocks until a slot is free or ctx is done
func (g *Gate) Acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case g.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a slot taken by Acquire
func (g *Gate) Release() {
	<-g.sem
}

// Cap returns the number of holders the gate admits
func (g *Gate) Cap() int {
	return cap(g.sem)
}

// InUse returns the number of slots currently held
func (g *Gate) InUse() int {
	return len(g.sem)
}
