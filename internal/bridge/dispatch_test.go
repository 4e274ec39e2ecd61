package bridge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoopRunsTasksInOrder(t *testing.T) {
	loop := runLoop(t)
	got := make(chan int, 3)
	for i := range 3 {
		loop.Dispatch(func() { got <- i })
	}
	for want := range 3 {
		select {
		case v := <-got:
			require.Equal(t, want, v)
		case <-time.After(time.Second):
			t.Fatal("task not run")
		}
	}
}

func TestLoopNestedDispatchDoesNotBlock(t *testing.T) {
	loop := runLoop(t)
	done := make(chan struct{})
	loop.Dispatch(func() {
		loop.Dispatch(func() { close(done) })
	})
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("nested task not run")
	}
}

func TestLoopDropsTasksAfterStop(t *testing.T) {
	loop := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, loop.Run(ctx), context.Canceled)

	ran := false
	loop.Dispatch(func() { ran = true })
	require.False(t, ran)
}
