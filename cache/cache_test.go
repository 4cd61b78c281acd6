package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetProducesOnce(t *testing.T) {
	c := New()
	var calls int32
	k := Key{Resource: "joint-key", Format: "json"}
	c.Register(k, func() (any, error) {
		atomic.AddInt32(&calls, 1)
		return "value", nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.Get(k)
			require.NoError(t, err)
			require.Equal(t, "value", v)
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), calls)
}

func TestMissingProducerFails(t *testing.T) {
	c := New()
	_, err := c.Get(Key{Resource: "nope", Format: "json"})
	require.Error(t, err)
}

func TestProducerErrorWraps(t *testing.T) {
	c := New()
	k := Key{Resource: "bad", Format: "json"}
	sentinel := errors.New("boom")
	c.Register(k, func() (any, error) { return nil, sentinel })

	_, err := c.Get(k)
	require.Error(t, err)
	require.ErrorIs(t, err, sentinel)
}

func TestRecursionDetected(t *testing.T) {
	c := New()
	k := Key{Resource: "cyclic", Format: "json"}
	c.Register(k, func() (any, error) {
		return c.Get(k)
	})

	_, err := c.Get(k)
	require.Error(t, err)
}

func TestInvalidateForcesReproduction(t *testing.T) {
	c := New()
	var calls int32
	k := Key{Resource: "x", Format: "json"}
	c.Register(k, func() (any, error) {
		atomic.AddInt32(&calls, 1)
		return calls, nil
	})

	_, err := c.Get(k)
	require.NoError(t, err)
	require.True(t, c.Has(k))

	c.Invalidate(k)
	require.False(t, c.Has(k))

	_, err = c.Get(k)
	require.NoError(t, err)
	require.Equal(t, int32(2), calls)
}
