package input_test

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/austo/barmedian/input"
	"github.com/austo/barmedian/model"
)

func TestReader(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		r := input.NewReader(strings.NewReader("2\n4 0\n1 2 3 4\n5 2\n7 6\n6 7 1\n"))
		n, err := r.Count()
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		b, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, model.Bar{N: 4, K: 0, A: []int64{1, 2, 3, 4}}, b)

		b, err = r.Next()
		require.NoError(t, err)
		assert.Equal(t, model.Bar{N: 5, K: 2, A: []int64{7, 6, 6, 7, 1}}, b)

		_, err = r.Next()
		assert.ErrorIs(t, err, input.ErrTruncated)
	})

	t.Run("ErrEmpty", func(t *testing.T) {
		_, err := input.NewReader(strings.NewReader("  \n")).Count()
		assert.ErrorIs(t, err, input.ErrTruncated)
	})

	t.Run("ErrNotANumber", func(t *testing.T) {
		_, err := input.NewReader(strings.NewReader("x")).Count()
		assert.ErrorIs(t, err, input.ErrTruncated)
	})

	t.Run("ErrPartialCase", func(t *testing.T) {
		r := input.NewReader(strings.NewReader("1\n3 1\n6 7"))
		_, err := r.Count()
		require.NoError(t, err)
		b, err := r.Next()
		assert.ErrorIs(t, err, input.ErrTruncated)
		assert.Equal(t, `position 3 of 3: token 6: input truncated`, err.Error())
		assert.Zero(t, b)
	})

	t.Run("ErrNegativeCount", func(t *testing.T) {
		r := input.NewReader(strings.NewReader("-1 0"))
		_, err := r.Next()
		assert.ErrorIs(t, err, model.ErrInvalid)
	})

	t.Run("ErrTokenTooLong", func(t *testing.T) {
		r := input.NewReader(strings.NewReader("1\n1 0\n" + strings.Repeat("7", 2<<20)))
		_, err := r.Count()
		require.NoError(t, err)
		_, err = r.Next()
		assert.ErrorIs(t, err, input.ErrTruncated)
	})

	t.Run("ErrRead", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := input.NewReader(iotest.ErrReader(boom)).Count()
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, input.ErrTruncated)
	})
}
