package launch

import (
	"sync/atomic"
	"time"
)

// instanceCount is GAME_INSTANCE_COUNT: the number of game processes this
// process has spawned and not yet observed exit, maintained with
// sequentially consistent atomic operations (Go's atomic package default).
var instanceCount atomic.Int64

// InstanceCount reports the current live game process count.
func InstanceCount() int64 {
	return instanceCount.Load()
}

// shutdownPollInterval is how often AwaitShutdown rechecks the counter.
const shutdownPollInterval = 1 * time.Second

// AwaitShutdown blocks until every game process this launcher spawned has
// exited, polling once a second. A caller tearing down the launcher calls
// this before quitting so it never orphans a running game's log streamers
// or leaves GAME_INSTANCE_COUNT bookkeeping mid-flight.
func AwaitShutdown() {
	for instanceCount.Load() > 0 {
		time.Sleep(shutdownPollInterval)
	}
}
