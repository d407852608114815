package media

import (
	"context"
	"sync"
)

// Track is a live media track handed to us by the transport.
type Track interface {
	ID() string
	Kind() string // "audio" | "video"
}

// Sink is a renderable destination for one track. Attach builds the
// renderable handle from the track, Play starts playback (may fail after
// Attach succeeded), Release drops whatever is attached. Implementations
// are provided by the rendering layer.
type Sink interface {
	Attach(t Track) error
	Play(ctx context.Context) error
	Release()
}

// Binder keeps at most one live attachment on its sink. Re-run it whenever
// the (track identity, enabled) pair changes; it unbinds before binding and
// swallows playback failures as non-fatal reports.
type Binder struct {
	sink    Sink
	onError func(err error)

	mu       sync.Mutex
	bound    Track
	enabled  bool
	attached bool
	gen      uint64
	cancel   context.CancelFunc
}

func NewBinder(sink Sink, onError func(error)) *Binder {
	if onError == nil {
		onError = func(error) {}
	}
	return &Binder{sink: sink, onError: onError}
}

// Bind reconciles the sink against the desired (track, enabled) state.
func (b *Binder) Bind(t Track, enabled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached && enabled == b.enabled && sameTrack(b.bound, t) {
		// Nothing changed; keep the live attachment as-is.
		return
	}

	b.releaseLocked()
	b.bound = t
	b.enabled = enabled

	if !enabled || t == nil {
		return
	}
	if err := b.sink.Attach(t); err != nil {
		metricAttachFailures.Inc()
		b.onError(err)
		b.bound = nil
		return
	}
	b.attached = true
	metricAttaches.Inc()

	b.gen++
	gen := b.gen
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	go b.play(ctx, gen)
}

// Unbind releases any live attachment. Safe to call when nothing is bound.
func (b *Binder) Unbind() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.releaseLocked()
	b.bound = nil
	b.enabled = false
}

// Attached reports whether a track is currently attached to the sink.
func (b *Binder) Attached() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attached
}

// play observes the async playback start. A failure tears the binding down
// and is reported; a cancellation (unbind or session teardown mid-flight)
// resolves quietly.
func (b *Binder) play(ctx context.Context, gen uint64) {
	err := b.sink.Play(ctx)
	if err == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.gen || ctx.Err() != nil {
		// The binding was already replaced or released; nothing to report.
		return
	}
	metricPlayFailures.Inc()
	b.onError(err)
	b.releaseLocked()
	b.bound = nil
}

func (b *Binder) releaseLocked() {
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	if b.attached {
		b.sink.Release()
		b.attached = false
		metricReleases.Inc()
	}
}

func sameTrack(a, b Track) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID()
}
