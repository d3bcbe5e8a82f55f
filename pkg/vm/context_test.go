package vm

import (
	"testing"

	"github.com/josephg/hyperlines/pkg/ast"
)

func TestContext_FIFO(t *testing.T) {
	ctx := newContext()
	a := ast.NewBlock("a", nil, nil)
	b := ast.NewBlock("b", nil, nil)
	ctx.EnqueueAll(nil, []*ast.Block{a, b})

	for _, want := range []*ast.Block{a, b} {
		w, ok := ctx.dequeue()
		if !ok || w.block != want {
			t.Fatalf("dequeue() = %v, want %s", w.block, want.Name)
		}
	}
	if _, ok := ctx.dequeue(); ok {
		t.Error("empty queue should report false")
	}
}

func TestContext_CompactionReleasesConsumedWork(t *testing.T) {
	ctx := newContext()
	scope := NewScope[any](nil, nil)
	blocks := make([]*ast.Block, 3000)
	for i := range blocks {
		blocks[i] = ast.NewBlock("line", nil, nil)
		ctx.Enqueue(scope, blocks[i])
	}

	for i := 0; i < 2000; i++ {
		w, ok := ctx.dequeue()
		if !ok || w.block != blocks[i] {
			t.Fatalf("dequeue %d returned the wrong block", i)
		}
	}
	if ctx.Pending() != 1000 {
		t.Fatalf("expected 1000 pending, got %d", ctx.Pending())
	}

	// consumed slots and the spare capacity past the live queue hold nothing
	for i, w := range ctx.queue[:ctx.head] {
		if w != (work{}) {
			t.Fatalf("consumed slot %d still references work", i)
		}
	}
	for i, w := range ctx.queue[len(ctx.queue):cap(ctx.queue)] {
		if w != (work{}) {
			t.Fatalf("spare slot %d still references work", len(ctx.queue)+i)
		}
	}

	for i := 2000; i < 3000; i++ {
		w, ok := ctx.dequeue()
		if !ok || w.block != blocks[i] {
			t.Fatalf("dequeue %d returned the wrong block", i)
		}
	}
}
