package memqueue

import (
	"context"
	"sync"

	"pet-adoption-hub/internal/ports/mailq"
)

// Queue acumula jobs en memoria. Para dev sin Redis y para tests
// (permite asertar el fan-out de emails de una transición).
type Queue struct {
	mu   sync.Mutex
	jobs []mailq.Job
}

func New() *Queue {
	return &Queue{}
}

func (q *Queue) Enqueue(ctx context.Context, job mailq.Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
	return nil
}

// Jobs devuelve una copia de lo encolado hasta ahora.
func (q *Queue) Jobs() []mailq.Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]mailq.Job, len(q.jobs))
	copy(out, q.jobs)
	return out
}
