// Package input tokenises the test-case stream read from stdin.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/austo/barmedian/model"
)

// ErrTruncated means the stream ended, or held a non-integer token, before
// a complete value was read.
var ErrTruncated = errors.New("input truncated")

// maxPrealloc caps the capacity reserved from an unverified bar count.
const maxPrealloc = 1 << 16

type Reader struct {
	s     *bufio.Scanner
	token int
}

func NewReader(r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	s.Split(bufio.ScanWords)
	return &Reader{s: s}
}

// Count reads the leading number of test cases.
func (r *Reader) Count() (int, error) {
	t, err := r.readInt()
	if err != nil {
		return 0, fmt.Errorf("test count: %w", err)
	}
	return int(t), nil
}

// Next reads one "n k a_1 .. a_n" test case. A case is returned only when
// every one of its tokens was read.
func (r *Reader) Next() (model.Bar, error) {
	n, err := r.readInt()
	if err != nil {
		return model.Bar{}, fmt.Errorf("bar count: %w", err)
	}
	k, err := r.readInt()
	if err != nil {
		return model.Bar{}, fmt.Errorf("removable count: %w", err)
	}
	if n < 0 {
		return model.Bar{}, fmt.Errorf("bar count %d: %w", n, model.ErrInvalid)
	}

	b := model.Bar{N: int(n), K: k, A: make([]int64, 0, min(n, maxPrealloc))}
	for i := int64(0); i < n; i++ {
		v, err := r.readInt()
		if err != nil {
			return model.Bar{}, fmt.Errorf("position %d of %d: %w", i+1, n, err)
		}
		b.A = append(b.A, v)
	}
	return b, nil
}

func (r *Reader) readInt() (int64, error) {
	if !r.s.Scan() {
		if err := r.s.Err(); errors.Is(err, bufio.ErrTooLong) {
			return 0, fmt.Errorf("token %d: %w (%v)", r.token+1, ErrTruncated, err)
		} else if err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("token %d: %w", r.token+1, ErrTruncated)
	}
	r.token++
	v, err := strconv.ParseInt(r.s.Text(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("token %d: %w (%v)", r.token, ErrTruncated, err)
	}
	return v, nil
}
