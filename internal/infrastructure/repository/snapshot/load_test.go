package snapshot

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// limitedPool runs the first accept tasks on goroutines and rejects the rest.
type limitedPool struct {
	accept int
	seen   int
}

func (p *limitedPool) Submit(task func()) error {
	if p.seen >= p.accept {
		return errors.New("pool overloaded")
	}
	p.seen++
	go task()
	return nil
}

func TestRunOnPool_WaitsForSubmittedTasksOnSubmitFailure(t *testing.T) {
	t.Parallel()

	var finished atomic.Int32
	slow := func() error {
		time.Sleep(20 * time.Millisecond)
		finished.Add(1)
		return nil
	}

	err := runOnPool(&limitedPool{accept: 2}, []func() error{slow, slow, slow})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pool overloaded")
	assert.Equal(t, int32(2), finished.Load(), "submitted tasks must finish before returning")
}

func TestRunOnPool_JoinsTaskErrors(t *testing.T) {
	t.Parallel()

	errA := errors.New("load a")
	errB := errors.New("load b")
	err := runOnPool(&limitedPool{accept: 3}, []func() error{
		func() error { return errA },
		func() error { return nil },
		func() error { return errB },
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)

	require.NoError(t, runOnPool(&limitedPool{accept: 1}, []func() error{func() error { return nil }}))
}
