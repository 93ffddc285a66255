package parking

// waitingQueue holds vehicles that arrived while the lot was full, in
// arrival order. It is unbounded.
type waitingQueue struct {
	items   []Vehicle
	head    int
	members map[string]struct{}
}

func newWaitingQueue() *waitingQueue {
	return &waitingQueue{members: make(map[string]struct{})}
}

func (q *waitingQueue) enqueue(v Vehicle) {
	q.items = append(q.items, v)
	q.members[v.RegistrationNumber] = struct{}{}
}

func (q *waitingQueue) dequeue() (Vehicle, bool) {
	if q.isEmpty() {
		return Vehicle{}, false
	}

	v := q.items[q.head]
	q.items[q.head] = Vehicle{}
	q.head++
	delete(q.members, v.RegistrationNumber)

	// reclaim the consumed prefix once it dominates the backing array
	if q.head > 32 && q.head*2 > len(q.items) {
		q.items = append([]Vehicle(nil), q.items[q.head:]...)
		q.head = 0
	}
	return v, true
}

func (q *waitingQueue) contains(reg string) bool {
	_, ok := q.members[reg]
	return ok
}

// registrations lists waiting registration numbers front to back.
func (q *waitingQueue) registrations() []string {
	out := make([]string, 0, q.len())
	for _, v := range q.items[q.head:] {
		out = append(out, v.RegistrationNumber)
	}
	return out
}

func (q *waitingQueue) isEmpty() bool {
	return q.len() == 0
}

func (q *waitingQueue) len() int {
	return len(q.items) - q.head
}
