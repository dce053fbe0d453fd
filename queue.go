package tickz

// tickBefore reports whether a is before b on the wrapping tick
// timeline, using a signed difference so a single overflow of the
// uint32 counter never misorders two expirations that are actually
// close together.
func tickBefore(a, b Tick) bool {
	return int32(a-b) < 0
}

// readyQueue is a singly-linked FIFO of nodes awaiting immediate
// execution, mirroring uloop's s_ready_head/s_ready_tail pair.
type readyQueue struct {
	head, tail *node
	count      int
}

func (q *readyQueue) empty() bool { return q.head == nil }

func (q *readyQueue) len() int { return q.count }

// pushBack enqueues n at the tail, preserving submission order.
func (q *readyQueue) pushBack(n *node) {
	n.next = nil
	if q.tail == nil {
		q.head, q.tail = n, n
	} else {
		q.tail.next = n
		q.tail = n
	}
	q.count++
}

// popFront dequeues and returns the head node, or nil if empty.
func (q *readyQueue) popFront() *node {
	n := q.head
	if n == nil {
		return nil
	}
	q.head = n.next
	if q.head == nil {
		q.tail = nil
	}
	n.next = nil
	q.count--
	return n
}

// detach removes the entire chain from the queue in one step and
// returns its head, leaving the queue empty. This is what Run uses to
// take ownership of a private list to execute: work Post-ed by a
// handler while that private list is running lands on the (now empty)
// live queue instead of being observed by this same walk, mirroring
// uloop.c's `task_to_run = ready_head; ready_head = NULL; ready_tail =
// NULL;`.
func (q *readyQueue) detach() *node {
	head := q.head
	q.head, q.tail = nil, nil
	q.count = 0
	return head
}

// remove unlinks n from the queue if present, reporting whether it was
// found. It walks the full list rather than assuming a back-pointer,
// matching the original scheduler's singly-linked removal.
func (q *readyQueue) remove(n *node) bool {
	if q.head == n {
		q.head = n.next
		if q.head == nil {
			q.tail = nil
		}
		n.next = nil
		q.count--
		return true
	}
	for prev := q.head; prev != nil; prev = prev.next {
		if prev.next == n {
			prev.next = n.next
			if q.tail == n {
				q.tail = prev
			}
			n.next = nil
			q.count--
			return true
		}
	}
	return false
}

// timerQueue is a singly-linked list of delayed nodes kept sorted by
// ascending expiration (wraparound-safe), mirroring uloop's
// s_timer_head insertion-sort list.
type timerQueue struct {
	head  *node
	count int
}

func (q *timerQueue) empty() bool { return q.head == nil }

func (q *timerQueue) len() int { return q.count }

// insert places n in expiration order. Ties keep the earlier-inserted
// node first (a stable insert: n is placed after any existing node with
// an equal expiration), matching the original's forward insertion scan.
func (q *timerQueue) insert(n *node) {
	if q.head == nil || tickBefore(n.expiration, q.head.expiration) {
		n.next = q.head
		q.head = n
	} else {
		prev := q.head
		for prev.next != nil && !tickBefore(n.expiration, prev.next.expiration) {
			prev = prev.next
		}
		n.next = prev.next
		prev.next = n
	}
	q.count++
}

// remove unlinks n from the timer queue if present.
func (q *timerQueue) remove(n *node) bool {
	if q.head == n {
		q.head = n.next
		n.next = nil
		q.count--
		return true
	}
	for prev := q.head; prev != nil; prev = prev.next {
		if prev.next == n {
			prev.next = n.next
			n.next = nil
			q.count--
			return true
		}
	}
	return false
}

// nextExpiration returns the head node's expiration and true, or
// (0, false) if the timer queue is empty.
func (q *timerQueue) nextExpiration() (Tick, bool) {
	if q.head == nil {
		return 0, false
	}
	return q.head.expiration, true
}

// popExpired removes and returns every node whose expiration is no
// later than now, in expiration order, as a slice ready to be drained
// into the ready queue.
func (q *timerQueue) popExpired(now Tick) []*node {
	var expired []*node
	for q.head != nil && !tickBefore(now, q.head.expiration) {
		n := q.head
		q.head = n.next
		n.next = nil
		q.count--
		expired = append(expired, n)
	}
	return expired
}
