package core

import (
	"strings"
	"testing"
)

func TestComposePromptAllClauses(t *testing.T) {
	req := &GenerationRequest{
		Prompt:         "X",
		Scenario:       "style-transfer",
		NegativePrompt: "Y",
		SampleCount:    2,
	}

	got := ComposePrompt(req, ResolveAspect("square"))
	want := "Generate 2 variations of: Apply the artistic style from the reference image(s) to: X" +
		" Generate the image to fill the entire square format (1:1 aspect ratio) canvas provided by the blank image." +
		" Avoid: Y."
	if got != want {
		t.Errorf("ComposePrompt =\n%q\nwant\n%q", got, want)
	}
}

func TestComposePromptBareMinimum(t *testing.T) {
	req := &GenerationRequest{Prompt: "a red circle"}
	if got := ComposePrompt(req, nil); got != "a red circle" {
		t.Errorf("ComposePrompt = %q, want %q", got, "a red circle")
	}
}

func TestComposePromptUnknownScenario(t *testing.T) {
	req := &GenerationRequest{Prompt: "a red circle", Scenario: "no-such-tag"}
	if got := ComposePrompt(req, nil); got != "a red circle" {
		t.Errorf("unknown scenario must add no prefix, got %q", got)
	}
}

func TestComposePromptClauseOrdering(t *testing.T) {
	req := &GenerationRequest{
		Prompt:         "base",
		Scenario:       "product-shot",
		NegativePrompt: "blur",
	}
	got := ComposePrompt(req, ResolveAspect("landscape"))

	prefix, _ := ScenarioPrefix("product-shot")
	iPrefix := strings.Index(got, prefix)
	iBase := strings.Index(got, "base")
	iAspect := strings.Index(got, "Generate the image to fill")
	iAvoid := strings.Index(got, "Avoid: blur.")

	if iPrefix != 0 {
		t.Errorf("scenario prefix at %d, want 0", iPrefix)
	}
	if !(iPrefix < iBase && iBase < iAspect && iAspect < iAvoid) {
		t.Errorf("clause order wrong: prefix=%d base=%d aspect=%d avoid=%d", iPrefix, iBase, iAspect, iAvoid)
	}
	if !strings.Contains(got, "landscape format (16:9 aspect ratio)") {
		t.Errorf("aspect clause missing label/ratio: %q", got)
	}
}

func TestComposePromptSampleWrapperOutermost(t *testing.T) {
	req := &GenerationRequest{Prompt: "base", SampleCount: 3}
	got := ComposePrompt(req, nil)
	if !strings.HasPrefix(got, "Generate 3 variations of: ") {
		t.Errorf("sample wrapper not outermost: %q", got)
	}
}

func TestComposePromptSampleCountClamped(t *testing.T) {
	req := &GenerationRequest{Prompt: "base", SampleCount: 99}
	got := ComposePrompt(req, nil)
	if !strings.HasPrefix(got, "Generate 4 variations of: ") {
		t.Errorf("sample count not clamped to %d: %q", MaxSampleCount, got)
	}

	req.SampleCount = 1
	if got := ComposePrompt(req, nil); got != "base" {
		t.Errorf("single sample must not be wrapped: %q", got)
	}
}

func TestScenarioTagsSortedAndComplete(t *testing.T) {
	tags := ScenarioTags()
	if len(tags) == 0 {
		t.Fatal("ScenarioTags returned no tags")
	}
	for i := 1; i < len(tags); i++ {
		if tags[i-1] >= tags[i] {
			t.Errorf("tags not sorted: %q before %q", tags[i-1], tags[i])
		}
	}
	for _, tag := range tags {
		if _, ok := ScenarioPrefix(tag); !ok {
			t.Errorf("ScenarioPrefix(%q) missing", tag)
		}
	}
}
