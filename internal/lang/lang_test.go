package lang

import "testing"

func TestDetectEmpty(t *testing.T) {
	code, conf := Detect("   ")
	if code != "" || conf != 0 {
		t.Fatalf("expected empty result for blank text, got %q/%f", code, conf)
	}
}

func TestDetectRussian(t *testing.T) {
	code, _ := Detect("Привет, как твои дела сегодня? Надеюсь, всё хорошо.")
	if code != "rus" {
		t.Fatalf("expected rus, got %q", code)
	}
}

func TestDetectEnglish(t *testing.T) {
	code, _ := Detect("Hello everyone, thank you all for joining the meeting today, let us get started with the agenda.")
	if code != "eng" {
		t.Fatalf("expected eng, got %q", code)
	}
}
