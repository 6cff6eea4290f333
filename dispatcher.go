package ecs

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/TheBitDrifter/bark"
)

type dispatcherStatus int32

const (
	statusRunning dispatcherStatus = iota
	statusParked
	statusShutdown
)

// Dispatcher owns a pool of worker goroutines that repeatedly pop an
// Executor, run it against the world's registries, and push it back.
// Structural edits to the world happen only while every worker is
// parked, via World(); Shutdown() tears the pool down and hands the
// world back to the caller.
type Dispatcher struct {
	status  atomic.Int32
	parked  atomic.Int32
	threads int
	sleep   time.Duration
	queue   *workQueue
	world   *cell[*World]
	condMu  sync.Mutex
	cond    *sync.Cond
	wg      sync.WaitGroup
}

// DispatcherBuilder configures a Dispatcher before Build, using the same
// WithX(...)-chaining, Build(world)-terminating shape as a typical
// worker-pool scheduler builder.
type DispatcherBuilder struct {
	threads  int
	sleep    time.Duration
	queueCap int
	systems  []Executor
}

// NewDispatcherBuilder returns a builder defaulting to one worker per
// logical core, the per-iteration sleep set by Config.SetDefaultSleep
// (none unless set), and a 64-slot ring buffer.
func NewDispatcherBuilder() *DispatcherBuilder {
	return &DispatcherBuilder{threads: runtime.NumCPU(), queueCap: 64, sleep: Config.defaultSleep}
}

// WithThreads sets the worker pool size.
func (b *DispatcherBuilder) WithThreads(n int) *DispatcherBuilder {
	if n > 0 {
		b.threads = n
	}
	return b
}

// WithSleep sets the per-iteration sleep inserted between pop and
// execute, used to rate-limit system invocations.
func (b *DispatcherBuilder) WithSleep(d time.Duration) *DispatcherBuilder {
	b.sleep = d
	return b
}

// WithQueueCapacity sets the ring buffer's capacity (the single-slot
// cache is always present in addition to this).
func (b *DispatcherBuilder) WithQueueCapacity(n int) *DispatcherBuilder {
	if n > 0 {
		b.queueCap = n
	}
	return b
}

// WithSystem pre-registers ex so Build starts with it already queued.
func (b *DispatcherBuilder) WithSystem(ex Executor) *DispatcherBuilder {
	b.systems = append(b.systems, ex)
	return b
}

// Build constructs a Dispatcher over w and pushes every system
// registered via WithSystem. Workers are not spawned until Dispatch.
func (b *DispatcherBuilder) Build(w *World) *Dispatcher {
	d := &Dispatcher{
		threads: b.threads,
		sleep:   b.sleep,
		queue:   newWorkQueue(b.queueCap),
		world:   newCell[*World](w),
	}
	d.cond = sync.NewCond(&d.condMu)
	for _, ex := range b.systems {
		d.queue.push(ex)
	}
	return d
}

// AddExecutor pushes ex onto the work queue, for use both before and
// after Dispatch.
func (d *Dispatcher) AddExecutor(ex Executor) {
	d.queue.push(ex)
}

// Dispatch spawns the worker pool. Each worker pops an executor, runs it,
// and pushes it back, until Shutdown.
func (d *Dispatcher) Dispatch() {
	d.wg.Add(d.threads)
	for i := 0; i < d.threads; i++ {
		go d.workerLoop()
	}
}

func (d *Dispatcher) workerLoop() {
	defer d.wg.Done()
	backoff := time.Microsecond
	for {
		switch dispatcherStatus(d.status.Load()) {
		case statusRunning:
			ex, ok := d.queue.pop()
			if !ok {
				time.Sleep(backoff)
				if backoff < time.Millisecond {
					backoff *= 2
				} else {
					time.Sleep(time.Millisecond)
				}
				continue
			}
			backoff = time.Microsecond
			if d.sleep > 0 {
				time.Sleep(d.sleep)
			}
			d.runOne(ex)
		case statusParked:
			d.parked.Add(1)
			d.condMu.Lock()
			for dispatcherStatus(d.status.Load()) == statusParked {
				d.cond.Wait()
			}
			d.condMu.Unlock()
			d.parked.Add(-1)
		case statusShutdown:
			return
		}
	}
}

// runOne borrows the world, executes ex against its registries, releases
// the borrow, and re-queues ex regardless of outcome: fetch errors are
// transient contention and are discarded here: the dispatcher swallows
// them and retries on the next iteration.
func (d *Dispatcher) runOne(ex Executor) {
	guard, ok := d.world.tryShare()
	if !ok {
		d.queue.push(ex)
		return
	}
	w := *guard.Get()
	func() {
		defer guard.Release()
		defer func() {
			if r := recover(); r != nil {
				err, ok := r.(error)
				if !ok {
					err = fmt.Errorf("%v", r)
				}
				panic(bark.AddTrace(err))
			}
		}()
		if err := ex.Execute(w.resources, w.components); err != nil {
			Config.log(err.Error())
		}
	}()
	d.queue.push(ex)
}

// World parks every worker, then returns a WorldHandle granting the
// caller exclusive access to the world for structural edits (creating
// entities, adding components, registering resources). The caller must
// call the handle's Close to resume the dispatcher.
func (d *Dispatcher) World() *WorldHandle {
	d.status.Store(int32(statusParked))
	backoff := time.Microsecond
	for d.parked.Load() != int32(d.threads) {
		time.Sleep(backoff)
		if backoff < time.Millisecond {
			backoff *= 2
		}
	}
	guard := d.world.exclusive()
	return &WorldHandle{d: d, guard: guard}
}

// WorldHandle grants exclusive world access while the dispatcher's
// workers are parked. Close resumes the dispatcher.
type WorldHandle struct {
	d     *Dispatcher
	guard ExclusiveGuard[*World]
}

// World returns the exclusively-borrowed world.
func (h *WorldHandle) World() *World { return *h.guard.Get() }

// Close releases the exclusive borrow and resumes every parked worker.
func (h *WorldHandle) Close() {
	h.guard.Release()
	h.d.condMu.Lock()
	h.d.status.Store(int32(statusRunning))
	h.d.cond.Broadcast()
	h.d.condMu.Unlock()
}

// Shutdown stops every worker and returns the world, which still
// contains every entity, component, and resource added over the
// dispatcher's lifetime.
func (d *Dispatcher) Shutdown() *World {
	d.condMu.Lock()
	d.status.Store(int32(statusShutdown))
	d.cond.Broadcast()
	d.condMu.Unlock()
	d.wg.Wait()
	guard := d.world.exclusive()
	return *guard.Get()
}
