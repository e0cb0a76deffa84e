package extract

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestBuildPromptIncludesSelfEmailHint(t *testing.T) {
	prompt := buildPrompt("some email text", "me@example.com")

	if !strings.Contains(prompt, "me@example.com") {
		t.Fatal("prompt missing the user's own email")
	}
	if !strings.Contains(prompt, "发件箱备份") {
		t.Fatal("prompt missing the outbox exclusion hint")
	}
	if !strings.Contains(prompt, "some email text") {
		t.Fatal("prompt missing the input text")
	}
}

func TestBuildPromptWithoutSelfEmail(t *testing.T) {
	prompt := buildPrompt("hello", "")

	if strings.Contains(prompt, "发件箱备份") {
		t.Fatal("exclusion hint should only appear when a self email is set")
	}
	if !strings.Contains(prompt, "brandName") {
		t.Fatal("prompt missing field instructions")
	}
}

func TestClampInputCountsRunes(t *testing.T) {
	// Multi-byte text: clamping by bytes would cut mid-rune.
	input := strings.Repeat("品", maxInputRunes+100)

	got := clampInput(input)
	if n := utf8.RuneCountInString(got); n != maxInputRunes {
		t.Fatalf("clamped to %d runes, want %d", n, maxInputRunes)
	}
	if !utf8.ValidString(got) {
		t.Fatal("clamped text is not valid UTF-8")
	}

	short := "short text"
	if clampInput(short) != short {
		t.Fatal("short input should pass through unchanged")
	}
}
