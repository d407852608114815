package media

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeTrack struct {
	id   string
	kind string
}

func (t *fakeTrack) ID() string   { return t.id }
func (t *fakeTrack) Kind() string { return t.kind }

type fakeSink struct {
	mu        sync.Mutex
	attaches  int
	releases  int
	attachErr error
	playErr   error
	blockPlay bool
}

func (s *fakeSink) Attach(Track) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attachErr != nil {
		return s.attachErr
	}
	s.attaches++
	return nil
}

func (s *fakeSink) Play(ctx context.Context) error {
	if s.blockPlay {
		<-ctx.Done()
		return ctx.Err()
	}
	return s.playErr
}

func (s *fakeSink) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releases++
}

func (s *fakeSink) counts() (attaches, releases int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attaches, s.releases
}

func TestBindIdempotent(t *testing.T) {
	sink := &fakeSink{}
	b := NewBinder(sink, nil)
	trk := &fakeTrack{id: "t1", kind: "video"}

	b.Bind(trk, true)
	b.Bind(trk, true)

	attaches, releases := sink.counts()
	require.Equal(t, 1, attaches, "same (track, enabled) must not re-attach")
	require.Equal(t, 0, releases)
	require.True(t, b.Attached())
}

func TestBindReplacesTrack(t *testing.T) {
	sink := &fakeSink{}
	b := NewBinder(sink, nil)

	b.Bind(&fakeTrack{id: "t1", kind: "video"}, true)
	b.Bind(&fakeTrack{id: "t2", kind: "video"}, true)

	attaches, releases := sink.counts()
	require.Equal(t, 2, attaches)
	require.Equal(t, 1, releases, "old track must be released before the new attach")
}

func TestBindDisabledReleases(t *testing.T) {
	sink := &fakeSink{}
	b := NewBinder(sink, nil)
	trk := &fakeTrack{id: "t1", kind: "audio"}

	b.Bind(trk, true)
	b.Bind(trk, false)

	attaches, releases := sink.counts()
	require.Equal(t, 1, attaches)
	require.Equal(t, 1, releases)
	require.False(t, b.Attached())
}

func TestUnbindWithoutBindIsNoop(t *testing.T) {
	sink := &fakeSink{}
	b := NewBinder(sink, nil)

	b.Unbind()

	_, releases := sink.counts()
	require.Equal(t, 0, releases)
}

func TestPlayFailureIsNonFatal(t *testing.T) {
	errs := make(chan error, 1)
	sink := &fakeSink{playErr: errors.New("autoplay blocked")}
	b := NewBinder(sink, func(err error) { errs <- err })

	b.Bind(&fakeTrack{id: "t1", kind: "video"}, true)

	select {
	case err := <-errs:
		require.ErrorContains(t, err, "autoplay blocked")
	case <-time.After(time.Second):
		t.Fatal("playback failure was never reported")
	}
	require.Eventually(t, func() bool { return !b.Attached() }, time.Second, 5*time.Millisecond,
		"binding must be torn down after a playback failure")
	_, releases := sink.counts()
	require.Equal(t, 1, releases)
}

func TestTeardownWhilePlayInFlight(t *testing.T) {
	errs := make(chan error, 1)
	sink := &fakeSink{blockPlay: true}
	b := NewBinder(sink, func(err error) { errs <- err })

	b.Bind(&fakeTrack{id: "t1", kind: "video"}, true)
	b.Unbind()

	select {
	case err := <-errs:
		t.Fatalf("teardown race must resolve quietly, got %v", err)
	case <-time.After(50 * time.Millisecond):
	}
	attaches, releases := sink.counts()
	require.Equal(t, 1, attaches)
	require.Equal(t, 1, releases)
	require.False(t, b.Attached())
}

func TestAttachFailureReported(t *testing.T) {
	var got error
	sink := &fakeSink{attachErr: errors.New("no element")}
	b := NewBinder(sink, func(err error) { got = err })

	b.Bind(&fakeTrack{id: "t1", kind: "video"}, true)

	require.ErrorContains(t, got, "no element")
	require.False(t, b.Attached())
}
