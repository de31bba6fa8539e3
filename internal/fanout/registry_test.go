package fanout

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yhekr/abexp/types"
)

func TestRegistry_NotifyOrder(t *testing.T) {
	r := New[string]()
	r.Add("first")
	r.Add("second")
	r.Add("third")

	var seen []string
	failed := r.Notify(func(s string) error {
		seen = append(seen, s)
		return nil
	}, nil)

	require.Zero(t, failed)
	require.Equal(t, []string{"first", "second", "third"}, seen)
	require.Equal(t, 3, r.Len())
}

func TestRegistry_FailureIsolation(t *testing.T) {
	r := New[int]()
	for i := range 4 {
		r.Add(i)
	}

	var (
		called   []int
		failures []error
		indexes  []int
	)
	failed := r.Notify(func(i int) error {
		called = append(called, i)
		switch i {
		case 1:
			return errors.New("listener error")
		case 2:
			panic("listener panic")
		}

		return nil
	}, func(idx int, err error) {
		indexes = append(indexes, idx)
		failures = append(failures, err)
	})

	require.Equal(t, 2, failed)
	require.Equal(t, []int{0, 1, 2, 3}, called)
	require.Equal(t, []int{1, 2}, indexes)
	require.EqualError(t, failures[0], "listener error")
	require.ErrorIs(t, failures[1], types.ErrListenerPanic)
	require.Contains(t, failures[1].Error(), "listener panic")
}

func TestRegistry_Unregister(t *testing.T) {
	r := New[string]()
	r.Add("a")
	removeB := r.Add("b")
	r.Add("c")

	removeB()
	removeB()

	var seen []string
	r.Notify(func(s string) error {
		seen = append(seen, s)
		return nil
	}, nil)

	require.Equal(t, []string{"a", "c"}, seen)
	require.Equal(t, 2, r.Len())
}

func TestRegistry_AddDuringNotify(t *testing.T) {
	r := New[string]()
	r.Add("a")

	calls := 0
	r.Notify(func(string) error {
		calls++
		r.Add("late")
		return nil
	}, nil)

	require.Equal(t, 1, calls, "snapshot must not include listeners added during notification")
	require.Equal(t, 2, r.Len())
}

func TestRegistry_ConcurrentAdd(t *testing.T) {
	r := New[int]()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			remove := r.Add(i)
			if i%2 == 0 {
				remove()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 25, r.Len())
}

func TestCall_RecoversPanic(t *testing.T) {
	err := Call(func(int) error { panic(errors.New("boom")) }, 1)

	require.ErrorIs(t, err, types.ErrListenerPanic)
	require.Contains(t, err.Error(), "boom")
}
