package launch

import (
	"testing"
	"time"
)

func TestInstanceCountTracksSpawnAndExit(t *testing.T) {
	before := InstanceCount()
	instanceCount.Add(1)
	if InstanceCount() != before+1 {
		t.Fatalf("expected count to increment, got %d", InstanceCount())
	}
	instanceCount.Add(-1)
	if InstanceCount() != before {
		t.Fatalf("expected count to return to baseline, got %d", InstanceCount())
	}
}

func TestAwaitShutdownReturnsOnceCounterReachesZero(t *testing.T) {
	instanceCount.Add(1)
	done := make(chan struct{})
	go func() {
		AwaitShutdown()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("AwaitShutdown returned before the instance count reached zero")
	case <-time.After(100 * time.Millisecond):
	}

	instanceCount.Add(-1)
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("AwaitShutdown did not return after the instance count reached zero")
	}
}
