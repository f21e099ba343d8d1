package debounce

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTrigger_OnlyLastRuns(t *testing.T) {
	d := New(30 * time.Millisecond)

	var last atomic.Int32
	var calls atomic.Int32
	for i := int32(1); i <= 5; i++ {
		v := i
		d.Trigger(func() {
			calls.Add(1)
			last.Store(v)
		})
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	if calls.Load() != 1 || last.Load() != 5 {
		t.Errorf("calls=%d last=%d", calls.Load(), last.Load())
	}
}

func TestCancel(t *testing.T) {
	d := New(20 * time.Millisecond)
	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Cancel()

	time.Sleep(60 * time.Millisecond)
	if calls.Load() != 0 {
		t.Errorf("cancelled call ran")
	}
}

func TestZeroDelay_Synchronous(t *testing.T) {
	d := New(0)
	ran := false
	d.Trigger(func() { ran = true })
	if !ran {
		t.Error("expected synchronous run")
	}
}
