// Package vm provides the per-run execution context.
package vm

import (
	"fmt"

	"github.com/josephg/hyperlines/pkg/ast"
)

// work is one deferred block invocation: run block with its arguments
// evaluated in scope.
type work struct {
	scope *Scope[any]
	block *ast.Block
}

// Context is the mutable state of a single run: the ordered output log
// and the FIFO work queue. Block behaviors receive it to emit segments
// and to schedule further blocks.
type Context struct {
	lines     []ast.Segment
	queue     []work
	head      int
	maxFanout int
}

func newContext() *Context {
	return &Context{
		lines:     make([]ast.Segment, 0, 64),
		queue:     make([]work, 0, 64),
		maxFanout: DefaultMaxFanout,
	}
}

// checkFanout rejects n points or child invocations from one block when
// n exceeds the fanout limit.
func (c *Context) checkFanout(owner string, index int, n int) error {
	if n > c.maxFanout {
		return NewInvalidArgumentError(owner, index, fmt.Sprintf("at most %d", c.maxFanout), n)
	}
	return nil
}

// Emit appends a segment to the log.
func (c *Context) Emit(from, to ast.Point) {
	c.lines = append(c.lines, ast.Segment{From: from, To: to})
}

// Enqueue schedules b to run in scope after everything already queued.
func (c *Context) Enqueue(scope *Scope[any], b *ast.Block) {
	c.queue = append(c.queue, work{scope: scope, block: b})
}

// EnqueueAll schedules blocks in order, all sharing scope.
func (c *Context) EnqueueAll(scope *Scope[any], blocks []*ast.Block) {
	for _, b := range blocks {
		c.Enqueue(scope, b)
	}
}

// Pending returns the number of queued invocations.
func (c *Context) Pending() int {
	return len(c.queue) - c.head
}

// Lines returns the segments emitted so far.
func (c *Context) Lines() []ast.Segment {
	return c.lines
}

func (c *Context) dequeue() (work, bool) {
	if c.head >= len(c.queue) {
		return work{}, false
	}
	w := c.queue[c.head]
	c.queue[c.head] = work{}
	c.head++
	// Reclaim the consumed prefix once it dominates the backing array.
	if c.head > 1024 && c.head*2 > len(c.queue) {
		n := copy(c.queue, c.queue[c.head:])
		clear(c.queue[n:])
		c.queue = c.queue[:n]
		c.head = 0
	}
	return w, true
}
