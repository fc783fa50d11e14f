// File: executor/run.go
// License: Apache-2.0
//
// The two run entry points share one dispatch path (inner.dispatch); they
// differ only in who blocks on the port. Generic top-level functions stand
// in for generic methods, which the language does not have.

package executor

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/vsrinivas/fuchsia-sub094/api"
	"github.com/vsrinivas/fuchsia-sub094/internal/atomicfuture"
	"github.com/vsrinivas/fuchsia-sub094/port"
)

// RunSinglethreaded drives main on the calling goroutine until it resolves,
// servicing spawned futures and registered receivers in between. Strictly
// cooperative: this mode may host futures and receivers that are not safe
// for concurrent use. The port wait is the only suspension point; a main
// future that never resolves blocks forever. A non-timeout port failure is
// fatal to the loop and returned.
func RunSinglethreaded[T any](e *Executor, main api.ResultFuture[T]) (T, error) {
	var out T
	af := atomicfuture.New(&resultAdapter[T]{future: main, out: &out})
	if af.TryPoll(e.inner, sentinelKey) == atomicfuture.Done {
		return out, nil
	}
	for {
		pkt, err := e.inner.port.Wait(port.InfiniteTimeout)
		if err != nil {
			return out, fmt.Errorf("executor: port wait: %w", err)
		}
		if pkt.Key == sentinelKey {
			if af.TryPoll(e.inner, sentinelKey) == atomicfuture.Done {
				return out, nil
			}
			continue
		}
		e.inner.dispatch(pkt)
	}
}

// Run drives main to completion on a pool of numThreads workers, any of
// which may service any ready future or receiver. It returns only after
// main resolves and every worker is joined. A panic on a worker is
// re-raised here once the pool is down. numThreads <= 0 means NumCPU.
func Run[T any](e *Executor, main api.ResultFuture[T], numThreads int) (T, error) {
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}
	in := e.inner
	in.done.Store(false)

	root := &rootCompletion[T]{future: main}
	root.resolved = sync.NewCond(&root.mu)
	in.spawn(root)

	panics := make([]any, numThreads)
	in.numWorkers = numThreads
	in.workerWG.Add(numThreads)
	for i := 0; i < numThreads; i++ {
		go func(slot int) {
			defer in.workerWG.Done()
			defer func() {
				if r := recover(); r != nil {
					panics[slot] = r
				}
			}()
			in.workerLoop()
		}(i)
	}

	root.mu.Lock()
	for !root.done {
		root.resolved.Wait()
	}
	result := root.value
	root.mu.Unlock()

	// Shutdown fan-out: exactly one sentinel per worker, because one queued
	// packet releases exactly one port wait. Fewer packets leaks a blocked
	// worker.
	in.done.Store(true)
	in.wakeWorkers()
	in.workerWG.Wait()
	in.numWorkers = 0

	for _, p := range panics {
		if p != nil {
			panic(p)
		}
	}
	return result, nil
}

// resultAdapter erases a ResultFuture's type, writing the value through on
// completion. Used by the single-threaded loop, where the caller's stack
// outlives the poll.
type resultAdapter[T any] struct {
	future api.ResultFuture[T]
	out    *T
}

func (a *resultAdapter[T]) Poll(cx *api.Context) api.Poll {
	v, p := a.future.Poll(cx)
	if p == api.PollReady {
		*a.out = v
	}
	return p
}

// rootCompletion spawns like any other future but parks its result under a
// mutex and signals the condition variable Run blocks on.
type rootCompletion[T any] struct {
	future api.ResultFuture[T]

	mu       sync.Mutex
	resolved *sync.Cond
	done     bool
	value    T
}

func (r *rootCompletion[T]) Poll(cx *api.Context) api.Poll {
	v, p := r.future.Poll(cx)
	if p != api.PollReady {
		return p
	}
	r.mu.Lock()
	r.value = v
	r.done = true
	r.mu.Unlock()
	r.resolved.Broadcast()
	return api.PollReady
}
