package worker

import (
	"errors"
	"sync"
	"sync/atomic"
)

// Drained is returned by Recv once every worker has exited and all
// results have been handed out.
var Drained = errors.New("Drained")

var (
	errRunning = errors.New("Pool: already running")
	errClosed  = errors.New("Sub: Pool closed")
	errKilled  = errors.New("Sub: Pool has been killed")
)

type Job interface {
	Process() (interface{}, error)
}

type task struct {
	id  int
	job Job
}

// Result carries the outcome of one Job. ID is the 1-based submission order.
type Result struct {
	ID int
	V  interface{}
	E  error
}

type Pool struct {
	running atomic.Bool
	W       int
	lastID  atomic.Int64
	in      chan task
	out     chan Result
	done    chan struct{}
	drained chan struct{}
	kill    sync.Once
}

const defaultGoRoutines = 20

func (p *Pool) Open() error {
	if !p.running.CompareAndSwap(false, true) {
		return errRunning
	}

	in, out := make(chan task), make(chan Result)
	done, drained := make(chan struct{}), make(chan struct{})
	p.in, p.out, p.done, p.drained = in, out, done, drained
	p.lastID.Store(0)
	p.kill = sync.Once{}

	if p.W < 1 {
		p.W = defaultGoRoutines
	}

	var wg sync.WaitGroup
	wg.Add(p.W)
	for w := 0; w < p.W; w++ {
		go func() {
			defer wg.Done()
			digest(done, in, out)
		}()
	}

	// channels of this round only; the Pool may be reopened before it exits
	go func() {
		wg.Wait()
		close(out)
		close(drained)
	}()

	return nil
}

// Close should be called by the submitting goroutine once no more jobs will
// be submitted. Workers finish the jobs already queued; the caller keeps
// calling Recv until Drained. Further calls to Sub fail until the Pool is
// opened again.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.in)
}

// Kill stops the Pool without waiting for queued jobs. Results not yet
// received are dropped. Kill blocks until every worker has exited.
func (p *Pool) Kill() {
	if p.done == nil {
		return
	}
	p.running.Store(false)
	p.kill.Do(func() { close(p.done) })
	<-p.drained
}

// Sub submits j and returns its ID. It blocks until a worker accepts it.
func (p *Pool) Sub(j Job) (int, error) {
	if !p.running.Load() {
		return 0, errClosed
	}
	id := int(p.lastID.Add(1))
	select {
	case <-p.done:
		return 0, errKilled
	case p.in <- task{id, j}:
		return id, nil
	}
}

// Recv returns the next finished Result in completion order.
func (p *Pool) Recv() (Result, error) {
	r, ok := <-p.out
	if !ok {
		return Result{}, Drained
	}
	return r, nil
}

func digest(done <-chan struct{}, in <-chan task, out chan<- Result) {
	for {
		select {
		case <-done:
			return
		case t, ok := <-in:
			if !ok {
				return
			}
			v, err := t.job.Process()
			select {
			case out <- Result{t.id, v, err}:
			case <-done:
				return
			}
		}
	}
}
