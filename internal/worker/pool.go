package worker

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task is one blocking conversion unit of work. Implementations should
// check ctx between pages so timeouts and client disconnects take effect.
type Task func(ctx context.Context) ([]byte, error)

type result struct {
	data []byte
	err  error
}

type job struct {
	ctx        context.Context
	task       Task
	resultChan chan result
}

// Pool runs tasks on a fixed number of workers. Each task executes under a
// context derived from the submitter's request context plus the configured
// timeout.
type Pool struct {
	jobs    chan job
	workers int
	timeout time.Duration
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	log     *zap.Logger
}

func NewPool(workers int, timeout time.Duration, log *zap.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		jobs:    make(chan job, workers*2),
		workers: workers,
		timeout: timeout,
		log:     log,
	}
}

func (p *Pool) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func(workerID int) {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j := <-p.jobs:
					p.run(workerID, j)
				}
			}
		}(i)
	}

	p.log.Info("Worker pool started", zap.Int("workers", p.workers))
}

func (p *Pool) run(workerID int, j job) {
	// Submitter may have given up while the job sat in the queue.
	if err := j.ctx.Err(); err != nil {
		j.resultChan <- result{err: err}
		return
	}

	start := time.Now()
	data, err := p.execute(j)
	if err != nil {
		p.log.Error("Conversion task failed",
			zap.Int("worker", workerID),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
	} else {
		p.log.Info("Conversion task finished",
			zap.Int("worker", workerID),
			zap.Duration("duration", time.Since(start)),
			zap.Int("output_size", len(data)))
	}

	j.resultChan <- result{data: data, err: err}
}

// execute runs the task, converting a panic inside a conversion library
// into an ordinary error. Decoders are known to panic on crafted input,
// and a panic on a pool goroutine would otherwise kill the whole process.
func (p *Pool) execute(j job) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("Conversion task panicked",
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
			data = nil
			err = fmt.Errorf("conversion panicked: %v", r)
		}
	}()

	return j.task(j.ctx)
}

// Submit queues the task and blocks until it finishes, the timeout fires,
// or ctx is cancelled (e.g. the client disconnected).
func (p *Pool) Submit(ctx context.Context, t Task) ([]byte, error) {
	taskCtx := ctx
	var cancel context.CancelFunc
	if p.timeout > 0 {
		taskCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	j := job{
		ctx:  taskCtx,
		task: t,
		// Buffered so a worker never blocks on a submitter that gave up.
		resultChan: make(chan result, 1),
	}

	select {
	case p.jobs <- j:
	case <-taskCtx.Done():
		return nil, taskCtx.Err()
	}

	select {
	case res := <-j.resultChan:
		return res.data, res.err
	case <-taskCtx.Done():
		return nil, taskCtx.Err()
	}
}

// Stop signals workers to exit and waits for in-flight tasks to finish.
func (p *Pool) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	p.log.Info("Worker pool stopped")
}
