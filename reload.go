package holofoil

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// ReloadState describes what the Reloader's worker is doing.
type ReloadState int32

const (
	// ReloadIdle means no build is running and no result is waiting.
	ReloadIdle ReloadState = iota
	// ReloadCompiling means a build is in flight.
	ReloadCompiling
	// ReloadReady means a freshly built Pipeline is waiting in the
	// handoff slot for the render thread to adopt via Latest.
	ReloadReady
)

func (s ReloadState) String() string {
	switch s {
	case ReloadIdle:
		return "idle"
	case ReloadCompiling:
		return "compiling"
	case ReloadReady:
		return "ready"
	default:
		return fmt.Sprintf("ReloadState(%d)", int32(s))
	}
}

// SourceFunc loads the current card shader source, typically from the
// file a watcher is observing. It runs on the reload worker goroutine.
type SourceFunc func() (string, error)

// Reloader rebuilds the card Pipeline on a background goroutine when the
// shader source changes, without stalling frame presentation.
//
// A file-watching collaborator calls Request after each (debounced) edit.
// The worker loads the source, validates it, and builds a brand-new
// Pipeline; the result is handed to the render thread through a
// single-slot latest-wins channel. The render thread polls Latest once
// per frame: a non-nil result replaces the active Pipeline, and every
// cached Card must then be re-uploaded, since cards are bound against a
// specific Pipeline's texture layout.
//
// Builds that fail validation or compilation are logged and dropped; the
// previously active Pipeline stays authoritative, so a broken edit never
// blanks the display.
//
// The worker holds the device and queue handles until Close returns.
// Close must complete before the host releases the device.
type Reloader struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat
	back   Layer
	source SourceFunc

	// requests is a depth-1 coalescing signal: a request arriving while
	// a build is in flight queues exactly one follow-up build.
	requests chan struct{}

	// built is the depth-1 latest-wins handoff slot. The worker is the
	// only sender; the render thread is the only receiver.
	built chan *Pipeline

	state atomic.Int32

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewReloader starts the reload worker. The device, queue, format, and
// back layer mirror the arguments of the NewPipeline call that built the
// currently active Pipeline; rebuilt pipelines are interchangeable with
// it apart from the shader source.
func NewReloader(device hal.Device, queue hal.Queue, format gputypes.TextureFormat, back Layer, source SourceFunc) *Reloader {
	r := &Reloader{
		device:   device,
		queue:    queue,
		format:   format,
		back:     back,
		source:   source,
		requests: make(chan struct{}, 1),
		built:    make(chan *Pipeline, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	go r.run()

	return r
}

// Request asks for a rebuild. Non-blocking; requests arriving while a
// build is already pending or in flight coalesce into one.
func (r *Reloader) Request() {
	select {
	case r.requests <- struct{}{}:
	default:
	}
}

// Latest returns the most recently built Pipeline, or nil when nothing
// new has arrived since the last poll. Non-blocking. The caller takes
// ownership: it must Destroy the previously active Pipeline and
// re-upload its cards.
func (r *Reloader) Latest() *Pipeline {
	select {
	case p := <-r.built:
		// Clear only a lingering ready state; when a coalesced follow-up
		// build is already in flight the worker owns the state and keeps
		// reporting compiling.
		r.state.CompareAndSwap(int32(ReloadReady), int32(ReloadIdle))
		return p
	default:
		return nil
	}
}

// State reports the worker's current phase. Informational; the render
// loop should rely on Latest, not on polling State.
func (r *Reloader) State() ReloadState {
	return ReloadState(r.state.Load())
}

// Close shuts the worker down in two phases: first it signals the worker
// to stop and waits for any in-flight build to finish, then it destroys
// any built Pipeline left unadopted in the handoff slot. Only after
// Close returns is it safe to release the device the Reloader was
// created with. Safe to call multiple times.
func (r *Reloader) Close() {
	r.closeOnce.Do(func() {
		close(r.stop)
		<-r.done

		select {
		case p := <-r.built:
			p.Destroy()
		default:
		}
		r.state.Store(int32(ReloadIdle))
	})
}

// run is the worker loop. There is no cancellation of an in-flight
// build; a stop signal takes effect once the current build completes.
func (r *Reloader) run() {
	defer close(r.done)

	for {
		select {
		case <-r.stop:
			return
		case <-r.requests:
		}

		r.state.Store(int32(ReloadCompiling))
		r.build()

		select {
		case <-r.stop:
			return
		default:
		}
	}
}

// build loads, validates, and compiles one Pipeline, then publishes it.
func (r *Reloader) build() {
	source, err := r.source()
	if err != nil {
		Logger().Warn("holofoil: shader reload failed to load source", "err", err)
		r.state.Store(int32(ReloadIdle))
		return
	}

	wgsl := source + "\n" + shaderSuffix(r.format)

	// Validate before touching the device so a syntax error in the
	// edited source never reaches pipeline creation.
	if _, err := naga.Compile(wgsl); err != nil {
		Logger().Warn("holofoil: shader reload rejected", "err", err)
		r.state.Store(int32(ReloadIdle))
		return
	}

	pipeline, err := newPipeline(r.device, r.queue, r.format, r.back, wgsl)
	if err != nil {
		Logger().Warn("holofoil: shader reload build failed", "err", err)
		r.state.Store(int32(ReloadIdle))
		return
	}

	r.publish(pipeline)
	Logger().Debug("holofoil: shader reload built")
}

// publish places the pipeline into the handoff slot, destroying any
// unconsumed predecessor so only the newest build is ever adopted.
func (r *Reloader) publish(pipeline *Pipeline) {
	for {
		select {
		case r.built <- pipeline:
			r.state.Store(int32(ReloadReady))
			return
		default:
		}

		select {
		case stale := <-r.built:
			stale.Destroy()
		default:
		}
	}
}
