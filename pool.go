package tickz

// pool is a fixed-capacity, slice-backed free-list allocator for nodes.
// It never grows after construction: once every slot is checked out,
// alloc reports exhaustion rather than allocating a fresh node, matching
// the embedded target's static s_mem[POOL_SIZE] array. Unlike that
// array, capacity is a constructor parameter rather than a compile-time
// constant, since a hosted Go target has no reason to fix it at build
// time.
type pool struct {
	slots []node
	free  *node
	inUse int
}

// newPool allocates capacity nodes up front and chains them onto the
// free list.
func newPool(capacity int) *pool {
	p := &pool{slots: make([]node, capacity)}
	for i := range p.slots {
		p.slots[i].next = p.free
		p.free = &p.slots[i]
	}
	return p
}

// capacity returns the total number of slots, in use or free.
func (p *pool) capacity() int { return len(p.slots) }

// alloc removes a node from the free list, or returns nil if the pool is
// exhausted.
func (p *pool) alloc() *node {
	if p.free == nil {
		return nil
	}
	n := p.free
	p.free = n.next
	n.next = nil
	p.inUse++
	return n
}

// release resets n and returns it to the free list. It is a programmer
// error to release a node that isn't a member of this pool or that is
// already free; release reports that case by returning false instead of
// corrupting the list.
func (p *pool) release(n *node) bool {
	if !p.owns(n) {
		return false
	}
	for f := p.free; f != nil; f = f.next {
		if f == n {
			return false
		}
	}
	n.reset()
	n.next = p.free
	p.free = n
	p.inUse--
	return true
}

// owns reports whether n lives inside this pool's backing slice. It uses
// a linear scan over at most capacity() nodes rather than pointer
// arithmetic, since Go gives no safe way to compare a *node against a
// slice's address range; pools are sized for embedded-scale workloads
// (tens to low hundreds of nodes) so the scan is cheap.
func (p *pool) owns(n *node) bool {
	if n == nil {
		return false
	}
	for i := range p.slots {
		if &p.slots[i] == n {
			return true
		}
	}
	return false
}
