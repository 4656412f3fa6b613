package intelligence

import "testing"

func TestDetectIntent_Availability(t *testing.T) {
	for _, text := range []string{
		"When am I free tomorrow?",
		"Do I have any open slot on Friday?",
		"Check my availability this afternoon",
	} {
		if got := detectIntent(text); got != "availability" {
			t.Fatalf("detectIntent(%q) = %q, want availability", text, got)
		}
	}
}

func TestDetectIntent_Analytics(t *testing.T) {
	for _, text := range []string{
		"How much time did I spend in meetings?",
		"Show me a breakdown of my week",
		"How busy was I this month?",
	} {
		if got := detectIntent(text); got != "analytics" {
			t.Fatalf("detectIntent(%q) = %q, want analytics", text, got)
		}
	}
}

func TestDetectIntent_Recommend(t *testing.T) {
	for _, text := range []string{
		"Suggest ways to get more focus time",
		"Can you optimize my calendar?",
		"Recommend what I should decline",
	} {
		if got := detectIntent(text); got != "recommend" {
			t.Fatalf("detectIntent(%q) = %q, want recommend", text, got)
		}
	}
}

func TestDetectIntent_DefaultsToChat(t *testing.T) {
	if got := detectIntent("Good morning!"); got != "chat" {
		t.Fatalf("detectIntent = %q, want chat", got)
	}
}
