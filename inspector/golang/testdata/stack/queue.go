package stack

import "fmt"

type Queue struct {
	items []string
}

func (q *Queue) Push(items ...string) {
	q.items = append(q.items, items...)
}

func (q *Queue) String() string {
	return fmt.Sprintf("Queue with %d items", len(q.items))
}
