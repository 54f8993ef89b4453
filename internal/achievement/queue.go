package achievement

import "github.com/limbo/drip/pkg/entity"

// Queue buffers unlocked achievements for presentation, oldest first. It
// has a single consumer and is not safe for concurrent use.
type Queue struct {
	items []entity.Achievement
}

func (q *Queue) Push(items ...entity.Achievement) {
	q.items = append(q.items, items...)
}

func (q *Queue) Pop() (entity.Achievement, bool) {
	if len(q.items) == 0 {
		return entity.Achievement{}, false
	}
	head := q.items[0]
	q.items[0] = entity.Achievement{}
	q.items = q.items[1:]
	return head, true
}

func (q *Queue) Len() int {
	return len(q.items)
}
