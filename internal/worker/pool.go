package worker

import (
	"context"
	"sync"
	"time"
)

type Task[T any] func(ctx context.Context) (T, error)

type Result[T any] struct {
	Value T
	Err   error
}

// Pool runs submitted tasks on a fixed number of goroutines, optionally
// spacing task starts with a shared rate ticker.
type Pool[T any] struct {
	workers int
	tasks   chan Task[T]
	wg      sync.WaitGroup
	mu      sync.RWMutex
	rate    <-chan time.Time
	ticker  *time.Ticker
	closed  sync.Once
}

func NewPool[T any](workers, buffer int) *Pool[T] {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &Pool[T]{
		workers: workers,
		tasks:   make(chan Task[T], buffer),
	}
}

// SetRateLimit caps task starts across all workers. rps <= 0 removes the cap.
func (p *Pool[T]) SetRateLimit(rps int) {
	p.stopTicker()
	if rps <= 0 {
		return
	}
	t := time.NewTicker(time.Second / time.Duration(rps))
	p.mu.Lock()
	p.ticker = t
	p.rate = t.C
	p.mu.Unlock()
}

func (p *Pool[T]) stopTicker() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
		p.rate = nil
	}
}

// Submit blocks while the buffer is full. It must not be called after Close.
func (p *Pool[T]) Submit(t Task[T]) {
	if t == nil {
		return
	}
	p.tasks <- t
}

func (p *Pool[T]) Close() {
	p.closed.Do(func() {
		close(p.tasks)
	})
}

// Run starts the workers. The returned channel is closed once every worker
// has exited, either because Close was called and the queue drained or
// because ctx was cancelled.
func (p *Pool[T]) Run(ctx context.Context) <-chan Result[T] {
	out := make(chan Result[T], p.workers)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					p.mu.RLock()
					rate := p.rate
					p.mu.RUnlock()
					if rate != nil {
						select {
						case <-ctx.Done():
							return
						case <-rate:
						}
					}
					v, err := t(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result[T]{Value: v, Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		p.stopTicker()
		close(out)
	}()

	return out
}

// RunAll submits tasks, waits for them and returns results in completion
// order.
func RunAll[T any](ctx context.Context, workers, rps int, tasks []Task[T]) []Result[T] {
	p := NewPool[T](workers, len(tasks))
	p.SetRateLimit(rps)
	results := p.Run(ctx)
	for _, t := range tasks {
		p.Submit(t)
	}
	p.Close()

	out := make([]Result[T], 0, len(tasks))
	for r := range results {
		out = append(out, r)
	}
	return out
}
