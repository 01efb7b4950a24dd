// Package sim provides the simulation context threaded through every
// generation and resolution call. All randomness and id allocation flows
// through a Context so that identical seeds reproduce identical pipelines
// and outcomes; no engine code reads process-wide random state.
package sim

import "math/rand"

// Context carries the seeded random source and the id allocator for one
// simulation run. It is not safe for concurrent use; exactly one logical
// round is processed at a time.
type Context struct {
	rng    *rand.Rand
	nextID int64
}

// NewContext creates a simulation context seeded deterministically.
func NewContext(seed int64) *Context {
	return &Context{
		//nolint:gosec // G404: game simulation does not require crypto-grade randomness
		rng:    rand.New(rand.NewSource(seed)),
		nextID: 1,
	}
}

// Float64 returns the next roll in [0.0, 1.0).
func (c *Context) Float64() float64 {
	return c.rng.Float64()
}

// IntN returns a uniform integer in [0, n).
func (c *Context) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return c.rng.Intn(n)
}

// Range returns a uniform draw in [min, max).
func (c *Context) Range(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + c.rng.Float64()*(max-min)
}

// RangeInt64 returns a uniform integer draw in [min, max].
func (c *Context) RangeInt64(min, max int64) int64 {
	if max <= min {
		return min
	}
	return min + c.rng.Int63n(max-min+1)
}

// NextID allocates the next sequential entity id for this run.
func (c *Context) NextID() int64 {
	id := c.nextID
	c.nextID++
	return id
}
