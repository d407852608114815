package signalws

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lingocall/client/internal/media"
)

// wireTrack is the track identity as it travels over the signaling feed.
// The actual media stays inside the browser's transport; the core only
// needs a stable id per track.
type wireTrack struct {
	id   string
	kind string
}

func (t *wireTrack) ID() string   { return t.id }
func (t *wireTrack) Kind() string { return t.kind }

// remoteSink drives one rendering element in the browser. Attach/Release
// become commands on the signaling feed; Play sends a playback command and
// waits for the browser's play_result, so autoplay failures surface through
// the binder's normal non-fatal path.
type remoteSink struct {
	participantID string
	kind          string
	send          sendFunc

	mu     sync.Mutex
	result chan error
}

type sendFunc func(msg Message) error

func (s *remoteSink) Attach(t media.Track) error {
	return s.send(Message{
		Type:          "media_attach",
		TsMs:          time.Now().UnixMilli(),
		ParticipantID: s.participantID,
		Payload:       map[string]any{"kind": s.kind, "track_id": t.ID()},
	})
}

func (s *remoteSink) Play(ctx context.Context) error {
	s.mu.Lock()
	s.result = make(chan error, 1)
	result := s.result
	s.mu.Unlock()

	if err := s.send(Message{
		Type:          "media_play",
		TsMs:          time.Now().UnixMilli(),
		ParticipantID: s.participantID,
		Payload:       map[string]any{"kind": s.kind},
	}); err != nil {
		return err
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *remoteSink) Release() {
	_ = s.send(Message{
		Type:          "media_detach",
		TsMs:          time.Now().UnixMilli(),
		ParticipantID: s.participantID,
		Payload:       map[string]any{"kind": s.kind},
	})
}

// deliverPlayResult resolves an in-flight Play. A result with no waiter is
// dropped; the binding it belonged to is already gone.
func (s *remoteSink) deliverPlayResult(ok bool, errText string) {
	s.mu.Lock()
	result := s.result
	s.result = nil
	s.mu.Unlock()
	if result == nil {
		return
	}
	if ok {
		result <- nil
	} else {
		result <- fmt.Errorf("playback failed: %s", errText)
	}
}

// sinkTable hands out one remoteSink per (participant, kind) and finds them
// again when play results come back.
type sinkTable struct {
	send sendFunc

	mu    sync.Mutex
	sinks map[string]*remoteSink
}

func newSinkTable(send sendFunc) *sinkTable {
	return &sinkTable{send: send, sinks: make(map[string]*remoteSink)}
}

func (p *sinkTable) SinkFor(participantID, kind string) media.Sink {
	return p.sink(participantID, kind)
}

func (p *sinkTable) sink(participantID, kind string) *remoteSink {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := participantID + "/" + kind
	s := p.sinks[key]
	if s == nil {
		s = &remoteSink{participantID: participantID, kind: kind, send: p.send}
		p.sinks[key] = s
	}
	return s
}

// micCommands implements ptt.MicControl by writing transport commands on
// the signaling feed. The browser relays them to the conferencing SDK.
type micCommands struct {
	send sendFunc
}

func (m *micCommands) MuteLocalMic() {
	_ = m.send(Message{Type: "mic_mute", TsMs: time.Now().UnixMilli()})
}

func (m *micCommands) UnmuteLocalMic() {
	_ = m.send(Message{Type: "mic_unmute", TsMs: time.Now().UnixMilli()})
}
