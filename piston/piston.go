// Package piston puts worker results back into submission order.
package piston

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"github.com/austo/barmedian/worker"
)

var (
	// ErrGap is returned by Flush when results are held behind a missing ID.
	ErrGap = errors.New("results out of sequence")

	ErrDuplicate = errors.New("duplicate result")
)

// Crank buffers results that arrive early and releases them strictly by ID,
// starting from 1. The zero value is ready to use.
type Crank struct {
	done    int
	pending map[int]worker.Result
}

// Push hands a result to the crank.
func (c *Crank) Push(r worker.Result) error {
	if c.pending == nil {
		c.pending = make(map[int]worker.Result)
	}
	if _, ok := c.pending[r.ID]; ok || r.ID <= c.done {
		return fmt.Errorf("id %d: %w", r.ID, ErrDuplicate)
	}
	c.pending[r.ID] = r
	return nil
}

// Pull returns the next result in sequence, if it has arrived.
func (c *Crank) Pull() (worker.Result, bool) {
	r, ok := c.pending[c.done+1]
	if !ok {
		return worker.Result{}, false
	}
	delete(c.pending, r.ID)
	c.done = r.ID
	return r, true
}

// Released is the number of results handed out by Pull so far.
func (c *Crank) Released() int {
	return c.done
}

// Flush reports the IDs still buffered, which can only be released once the
// missing results before them arrive.
func (c *Crank) Flush() error {
	if len(c.pending) == 0 {
		return nil
	}
	ids := lo.Keys(c.pending)
	slices.Sort(ids)
	return fmt.Errorf("%w: waiting for %d, holding %v", ErrGap, c.done+1, ids)
}
