package session

// SpeakingStatus is the authoritative per-participant speaking signal shown
// by the UI and, for translator sessions, published on the floor bus.
type SpeakingStatus string

const (
	Speaking    SpeakingStatus = "speaking"
	NotSpeaking SpeakingStatus = "not_speaking"
)

// CombineSpeaking derives the status from the transport's active-speaker
// flag and local push-to-talk engagement. Derived on every contributing
// change, never cached beyond one recomputation.
func CombineSpeaking(remoteActiveSpeaker, pushToTalkEngaged bool) SpeakingStatus {
	if remoteActiveSpeaker || pushToTalkEngaged {
		return Speaking
	}
	return NotSpeaking
}
