package workerpool_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threeparty/shuffledp/pkg/workerpool"
)

func TestRunExecutesAll(t *testing.T) {
	var count int64
	err := workerpool.Run(context.Background(), 100, 8, func(_ context.Context, i int) error {
		atomic.AddInt64(&count, 1)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), count)
}

func TestRunPropagatesError(t *testing.T) {
	sentinel := errors.New("boom")
	err := workerpool.Run(context.Background(), 10, 4, func(_ context.Context, i int) error {
		if i == 5 {
			return sentinel
		}
		return nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
}

func TestRunEmpty(t *testing.T) {
	err := workerpool.Run(context.Background(), 0, 4, func(_ context.Context, i int) error {
		t.Fatal("should not be called")
		return nil
	})
	require.NoError(t, err)
}
