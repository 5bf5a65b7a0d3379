package selection

import (
	"container/heap"

	"github.com/jonathan/craft-cover/internal/types"
)

// entry is one candidate in the priority queue. Lower score pops first,
// index breaks ties so equal scores pop in insertion order.
type entry struct {
	score int
	index int
	set   types.ItemSet
}

// less orders entries lexicographically by (score, index).
func (e entry) less(other entry) bool {
	if e.score != other.score {
		return e.score < other.score
	}
	return e.index < other.index
}

// entryQueue implements heap.Interface over entries.
type entryQueue []entry

func (q entryQueue) Len() int           { return len(q) }
func (q entryQueue) Less(i, j int) bool { return q[i].less(q[j]) }
func (q entryQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *entryQueue) Push(x any) {
	*q = append(*q, x.(entry))
}

func (q *entryQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	*q = old[:n-1]
	return e
}

func (q *entryQueue) push(e entry) {
	heap.Push(q, e)
}

func (q *entryQueue) pop() entry {
	return heap.Pop(q).(entry)
}
