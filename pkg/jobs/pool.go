package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task is one unit of work in a batch.
type Task struct {
	ID  string
	Run func(context.Context) error
}

// Result reports how a task finished. Err is nil on success.
type Result struct {
	ID       string
	Err      error
	Duration time.Duration
}

// PoolConfig configures worker pool behaviour.
type PoolConfig struct {
	Workers int
	Logger  *zap.Logger
}

// Pool runs batches of tasks on a bounded number of goroutines. Failed tasks
// are reported, never retried.
type Pool struct {
	name    string
	workers int
	logger  *zap.Logger
}

// NewPool builds a pool. Workers defaults to 1.
func NewPool(name string, cfg PoolConfig) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Pool{name: name, workers: cfg.Workers, logger: cfg.Logger}
}

// Run executes every task and returns their results in task order. Tasks not
// yet started when ctx is cancelled finish with ctx.Err().
func (p *Pool) Run(ctx context.Context, tasks []Task) []Result {
	results := make([]Result, len(tasks))
	if len(tasks) == 0 {
		return results
	}

	workers := p.workers
	if workers > len(tasks) {
		workers = len(tasks)
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = p.run(ctx, tasks[i])
			}
		}()
	}

	for i := range tasks {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	p.logger.Debug("batch finished",
		zap.String("pool", p.name),
		zap.Int("tasks", len(tasks)),
		zap.Int("failed", failed),
	)
	return results
}

func (p *Pool) run(ctx context.Context, task Task) Result {
	if err := ctx.Err(); err != nil {
		return Result{ID: task.ID, Err: err}
	}
	start := time.Now()
	err := task.Run(ctx)
	return Result{ID: task.ID, Err: err, Duration: time.Since(start)}
}
