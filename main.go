package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/austo/barmedian/input"
	"github.com/austo/barmedian/model"
	"github.com/austo/barmedian/piston"
	"github.com/austo/barmedian/worker"
)

func main() {
	log.Println("Starting main routine...")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT)

	if err := run(os.Stdin, os.Stdout, 0, interrupt); err != nil {
		log.Fatal(err)
	}
}

// run answers every complete test case read from in, one line each in input
// order. Truncated input ends the run early without an error.
func run(in io.Reader, out io.Writer, workers int, interrupt <-chan os.Signal) error {
	r := input.NewReader(in)
	t, err := r.Count()
	if err != nil {
		if errors.Is(err, input.ErrTruncated) {
			log.Printf("No test cases: %v", err)
			return nil
		}
		return err
	}

	pool := worker.Pool{W: workers}
	if err := pool.Open(); err != nil {
		return err
	}

	killed := make(chan struct{})
	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case s := <-interrupt:
			log.Printf("Received %v signal. Killing pool...", s)
			close(killed)
			pool.Kill()
		case <-finished:
		}
	}()

	fed := make(chan error, 1)
	go func() {
		defer pool.Close()
		fed <- feed(r, t, &pool)
	}()

	w := bufio.NewWriter(out)
	var crank piston.Crank
	failed, err := emit(&pool, w, &crank)
	if err != nil {
		return err
	}

	select {
	case <-killed:
		log.Printf("Interrupted after %d of %d cases", crank.Released(), t)
		return w.Flush()
	default:
	}

	if failed == nil {
		if err := <-fed; err != nil {
			return err
		}
		if err := crank.Flush(); err != nil {
			return err
		}
	}
	return w.Flush()
}

type source interface {
	Recv() (worker.Result, error)
	Kill()
}

// emit writes results from src in ID order until src is drained. The first
// failed case is returned as failed; nothing after it is written and src is
// killed. Any other error also kills src.
func emit(src source, w io.Writer, crank *piston.Crank) (failed, err error) {
	for {
		res, err := src.Recv()
		if err != nil {
			return failed, nil
		}
		if failed != nil {
			continue
		}
		if err := crank.Push(res); err != nil {
			src.Kill()
			return nil, err
		}
		for next, ok := crank.Pull(); ok; next, ok = crank.Pull() {
			if next.E != nil {
				failed = fmt.Errorf("case %d: %w", next.ID, next.E)
				log.Printf("Stopping: %v", failed)
				src.Kill()
				break
			}
			if _, err := fmt.Fprintln(w, next.V); err != nil {
				src.Kill()
				return nil, err
			}
		}
	}
}

// feed submits up to t cases to the pool in input order.
func feed(r *input.Reader, t int, pool *worker.Pool) error {
	for i := 1; i <= t; i++ {
		b, err := r.Next()
		if errors.Is(err, input.ErrTruncated) || errors.Is(err, model.ErrInvalid) {
			log.Printf("Input ends inside case %d of %d: %v", i, t, err)
			return nil
		} else if err != nil {
			return fmt.Errorf("case %d: %w", i, err)
		}
		if _, err := pool.Sub(b); err != nil {
			// killed
			return nil
		}
	}
	return nil
}
