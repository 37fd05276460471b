package core

import (
	"errors"
	"testing"
)

func TestValidateRequiresPrompt(t *testing.T) {
	req := &GenerationRequest{}
	if err := req.Validate(); !errors.Is(err, ErrPromptRequired) {
		t.Errorf("Validate() = %v, want ErrPromptRequired", err)
	}

	req.Prompt = "a red circle"
	if err := req.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidateIgnoresBadAspectToken(t *testing.T) {
	req := &GenerationRequest{Prompt: "ok", AspectRatio: "definitely-not-a-ratio"}
	if err := req.Validate(); err != nil {
		t.Errorf("bad aspect token must not fail validation, got %v", err)
	}
}

func TestSamplesClamping(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 1}, {-3, 1}, {1, 1}, {2, 2}, {4, 4}, {5, 4}, {100, 4},
	}
	for _, tt := range tests {
		req := &GenerationRequest{SampleCount: tt.in}
		if got := req.Samples(); got != tt.want {
			t.Errorf("Samples() with SampleCount=%d = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestGeneratedImageIsInline(t *testing.T) {
	if !(GeneratedImage{Data: "AAAA", Format: "png"}).IsInline() {
		t.Error("inline image reported as not inline")
	}
	if (GeneratedImage{URL: "https://example.com/i.png"}).IsInline() {
		t.Error("remote image reported as inline")
	}
}

func TestFailureResultInvariant(t *testing.T) {
	res := FailureResult("gemini", "gemini-2.5-flash-image", "a cat", errors.New("boom"))
	if res.Success {
		t.Error("Success = true, want false")
	}
	if len(res.Images) != 0 {
		t.Errorf("Images = %d entries, want 0", len(res.Images))
	}
	if res.Error != "boom" {
		t.Errorf("Error = %q, want boom", res.Error)
	}
	if res.Provider != "gemini" || res.Prompt != "a cat" {
		t.Errorf("provider/prompt not echoed: %+v", res)
	}
}

func TestFailureResultNilError(t *testing.T) {
	res := FailureResult("openrouter", "", "p", nil)
	if res.Error == "" {
		t.Error("Error must be set even for a nil error")
	}
}
