package sapling

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
)

/*
queue is a queue where jobs, like the
processing of a cross-validation fold,
are sent to be run by a fixed number of
workers.
*/
type queue struct {
	workers    chan *worker
	tasks      chan *task
	ctx        context.Context
	cancelFunc context.CancelFunc
	results    chan error
	wg         *sync.WaitGroup
	result     chan error
}

/*
worker holds the data for a goroutine
that takes tasks from a queue to
run them
*/
type worker struct {
	*queue
	id    string
	tasks chan *task
}

/*
task represents a job enqueued on a
queue to be processed by a worker.
It holds the function to run and an
error channel on which to send the
result of the operation.
*/
type task struct {
	name   string
	run    func(context.Context) error
	result chan error
}

/*
DefaultMaxConcurrency defines the maximum number
of jobs that will be run simultaneously by a
queue when no positive number of workers is given.
*/
const DefaultMaxConcurrency = 10

func newQueue(ctx context.Context, workers int) *queue {
	if workers < 1 {
		workers = DefaultMaxConcurrency
	}
	wc := make(chan *worker)
	tasks := make(chan *task)
	ctx, cancelFunc := context.WithCancel(ctx)
	results := make(chan error)
	wg := &sync.WaitGroup{}
	result := make(chan error, 1)
	q := &queue{wc, tasks, ctx, cancelFunc, results, wg, result}
	go q.run()
	go q.processTaskResults()
	for i := 0; i < workers; i++ {
		newWorker(fmt.Sprintf("worker%d", i), q)
	}
	return q
}

func (q *queue) stop() {
	q.cancelFunc()
}

func (q *queue) add(name string, run func(context.Context) error) {
	tvalue := &task{name, run, q.results}
	q.wg.Add(1)
	go func(t *task) {
		select {
		case <-q.ctx.Done():
			q.wg.Done()
		case q.tasks <- t:
		}
	}(tvalue)
}

/*
waitForAll blocks until every task added to the queue is done or
discarded, stops the queue and returns the error of the first task
that failed, if any. A failing task cancels the context of the
remaining ones.
*/
func (q *queue) waitForAll() error {
	q.wg.Wait()
	q.stop()
	return <-q.result
}

func (q *queue) run() {
	var finished bool
	for !finished {
		select {
		case <-q.ctx.Done():
			finished = true
		case w := <-q.workers:
			select {
			case t := <-q.tasks:
				go q.assignTask(t, w)
			case <-q.ctx.Done():
				finished = true
			}
		}
	}
}

func (q *queue) assignTask(t *task, w *worker) {
	select {
	case w.tasks <- t:
	case <-q.ctx.Done():
		q.wg.Done()
	}
}

func newWorker(id string, q *queue) *worker {
	w := &worker{q, id, make(chan *task)}
	go w.run()
	return w
}

func (w *worker) run() {
	var finished bool
	select {
	case w.queue.workers <- w:
	case <-w.queue.ctx.Done():
		finished = true
	}
	for !finished {
		select {
		case t := <-w.tasks:
			w.process(t)
		case <-w.queue.ctx.Done():
			finished = true
		}
		if finished {
			break
		}
		select {
		case w.queue.workers <- w:
		case <-w.queue.ctx.Done():
			finished = true
		}
	}
}

func (w *worker) process(t *task) {
	defer w.queue.wg.Done()
	err := safeRun(w.queue.ctx, t)
	if err != nil {
		select {
		case <-w.queue.ctx.Done():
		case t.result <- err:
		}
	}
}

func safeRun(ctx context.Context, t *task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s panicked: %v\n%s", t.name, r, debug.Stack())
		}
	}()
	err = t.run(ctx)
	if err != nil {
		err = fmt.Errorf("%s: %w", t.name, err)
	}
	return err
}

func (q *queue) processTaskResults() {
	var finished bool
	for !finished {
		select {
		case err := <-q.results:
			if err != nil {
				q.stop()
				q.result <- err
				finished = true
			}
		case <-q.ctx.Done():
			finished = true
		}
	}
	close(q.result)
}
