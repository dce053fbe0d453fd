package tickz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolAllocRelease(t *testing.T) {
	p := newPool(4)
	require.Equal(t, 4, p.capacity())

	var allocated []*node
	for i := 0; i < 4; i++ {
		n := p.alloc()
		require.NotNil(t, n)
		allocated = append(allocated, n)
	}
	assert.Equal(t, 4, p.inUse)

	assert.Nil(t, p.alloc(), "pool should report exhaustion on the 5th alloc")

	ok := p.release(allocated[0])
	require.True(t, ok)
	assert.Equal(t, 3, p.inUse)

	n := p.alloc()
	require.NotNil(t, n)
	assert.Equal(t, 4, p.inUse)
}

func TestPoolReleaseResetsNode(t *testing.T) {
	p := newPool(1)
	n := p.alloc()
	n.kind = nodeKindTask
	n.fn = func(_ context.Context, _ any) {}
	n.arg = "payload"
	n.delayed = true
	n.expiration = 99

	p.release(n)

	assert.Equal(t, nodeKindTask, n.kind) // zero value of nodeKind
	assert.Nil(t, n.fn)
	assert.Nil(t, n.arg)
	assert.False(t, n.delayed)
	assert.Equal(t, Tick(0), n.expiration)
}

func TestPoolOwnsRejectsForeignNode(t *testing.T) {
	p1 := newPool(2)
	p2 := newPool(2)

	foreign := p2.alloc()
	assert.False(t, p1.owns(foreign))
	assert.False(t, p1.release(foreign))
}

func TestPoolOwnsRejectsNil(t *testing.T) {
	p := newPool(2)
	assert.False(t, p.owns(nil))
}
