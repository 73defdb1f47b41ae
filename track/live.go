package track

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/zsiec/moqt/wire"
)

// Option configures a LiveTrackSource.
type Option func(*LiveTrackSource)

// WithLogger sets the logger a LiveTrackSource uses for dispatch failures.
// The default is slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(s *LiveTrackSource) { s.log = log }
}

type listenerID uint64

// LiveTrackSource wraps an asynchronous source of wire.Object (a channel
// fed by a data-stream reader) and fans it out to any number of
// subscribers. Start is single-flight: a second call while ingest is
// already running is a no-op.
type LiveTrackSource struct {
	log *slog.Logger

	mu              sync.Mutex
	listeners       map[listenerID]*listenerQueue
	doneListeners   map[listenerID]func()
	nextID          listenerID
	largestLocation *wire.Location
	cancel          context.CancelFunc

	ingestActive atomic.Bool
}

// NewLiveTrackSource returns a LiveTrackSource with no content yet; call
// Start to begin ingesting.
func NewLiveTrackSource(opts ...Option) *LiveTrackSource {
	s := &LiveTrackSource{
		log:           slog.Default(),
		listeners:     make(map[listenerID]*listenerQueue),
		doneListeners: make(map[listenerID]func()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins ingesting objects from the given channel on a dedicated
// goroutine. If ingest is already running, Start is a no-op; the caller
// must Stop before starting a new reader. Start returns immediately.
func (s *LiveTrackSource) Start(ctx context.Context, objects <-chan wire.Object) {
	if !s.ingestActive.CompareAndSwap(false, true) {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	go s.ingestLoop(runCtx, objects)
}

// Stop releases the underlying reader. Idempotent; arrivals in flight at
// the time of the call may still be dispatched.
func (s *LiveTrackSource) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (s *LiveTrackSource) ingestLoop(ctx context.Context, objects <-chan wire.Object) {
	defer func() {
		s.ingestActive.Store(false)
		s.dispatchDone()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case obj, ok := <-objects:
			if !ok {
				return
			}
			s.mu.Lock()
			loc := obj.Location
			s.largestLocation = &loc
			s.mu.Unlock()
			s.dispatch(obj)
		}
	}
}

// dispatch hands obj to every current listener's queue. Each listener
// drains its own queue on a dedicated goroutine in FIFO order, so delivery
// to a single listener is a fresh scheduling turn (a panicking or slow
// listener can't corrupt the ingest loop or other listeners) without
// racing two arrivals for the same listener out of order.
func (s *LiveTrackSource) dispatch(obj wire.Object) {
	s.mu.Lock()
	snapshot := make([]*listenerQueue, 0, len(s.listeners))
	for _, q := range s.listeners {
		snapshot = append(snapshot, q)
	}
	s.mu.Unlock()

	for _, q := range snapshot {
		q.push(obj)
	}
}

// listenerQueue serializes delivery to a single listener: pushes append
// under lock and return immediately, while a dedicated goroutine drains
// the queue in order and calls the listener. close lets the goroutine
// drain whatever remains, then exit.
type listenerQueue struct {
	fn  func(wire.Object)
	log *slog.Logger

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []wire.Object
	closed bool
}

func newListenerQueue(fn func(wire.Object), log *slog.Logger) *listenerQueue {
	q := &listenerQueue{fn: fn, log: log}
	q.cond = sync.NewCond(&q.mu)
	go q.run()
	return q
}

func (q *listenerQueue) push(obj wire.Object) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.queue = append(q.queue, obj)
	q.cond.Signal()
	q.mu.Unlock()
}

func (q *listenerQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.cond.Broadcast()
	q.mu.Unlock()
}

func (q *listenerQueue) run() {
	for {
		q.mu.Lock()
		for len(q.queue) == 0 && !q.closed {
			q.cond.Wait()
		}
		if len(q.queue) == 0 && q.closed {
			q.mu.Unlock()
			return
		}
		obj := q.queue[0]
		q.queue = q.queue[1:]
		q.mu.Unlock()

		q.call(obj)
	}
}

func (q *listenerQueue) call(obj wire.Object) {
	defer func() {
		if r := recover(); r != nil {
			q.log.Error("live track listener panicked", "recover", r)
		}
	}()
	q.fn(obj)
}

func (s *LiveTrackSource) dispatchDone() {
	s.mu.Lock()
	snapshot := make([]func(), 0, len(s.doneListeners))
	for _, l := range s.doneListeners {
		snapshot = append(snapshot, l)
	}
	s.mu.Unlock()

	for _, l := range snapshot {
		go s.runDoneListener(l)
	}
}

func (s *LiveTrackSource) runDoneListener(l func()) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("live track done listener panicked", "recover", r)
		}
	}()
	l()
}

// OnNewObject registers l to be called on every arrival after registration,
// in arrival order. The returned function removes l; calling it more than
// once is safe.
func (s *LiveTrackSource) OnNewObject(l func(wire.Object)) func() {
	q := newListenerQueue(l, s.log)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = q
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
		q.close()
	}
}

// OnDone registers l to be called once, after ingest ends. The returned
// function removes l; calling it more than once is safe.
func (s *LiveTrackSource) OnDone(l func()) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.doneListeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.doneListeners, id)
		s.mu.Unlock()
	}
}

// LargestLocation returns the Location of the most recent arrival and true,
// or the zero Location and false if nothing has arrived yet.
func (s *LiveTrackSource) LargestLocation() (wire.Location, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.largestLocation == nil {
		return wire.Location{}, false
	}
	return *s.largestLocation, true
}
