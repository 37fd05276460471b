package core

import "strings"

// ProviderPreference selects which backend should handle a request.
type ProviderPreference string

const (
	// PreferGemini requests the direct Gemini backend.
	PreferGemini ProviderPreference = "gemini"
	// PreferOpenRouter requests the OpenRouter aggregator backend.
	PreferOpenRouter ProviderPreference = "openrouter"
	// PreferAuto picks the first available backend in priority order.
	PreferAuto ProviderPreference = "auto"
)

// MaxSampleCount is the upper bound on variations per request.
const MaxSampleCount = 4

// GenerationRequest is the normalized argument set for one image generation.
// Prompt is required; everything else is optional. The order of Images is
// significant: reference images are transmitted to the backend in this order,
// and the synthesized canvas image (when an aspect ratio resolves) is always
// appended last.
type GenerationRequest struct {
	Prompt         string             `json:"prompt"`
	Images         []ReferenceImage   `json:"images,omitempty"`
	Provider       ProviderPreference `json:"provider,omitempty"`
	Scenario       string             `json:"scenario,omitempty"`
	AspectRatio    string             `json:"aspect_ratio,omitempty"`
	NegativePrompt string             `json:"negative_prompt,omitempty"`
	SampleCount    int                `json:"sample_count,omitempty"`
	SaveToFile     bool               `json:"save_to_file,omitempty"`
	Filename       string             `json:"filename,omitempty"`
	Verbose        bool               `json:"verbose,omitempty"`
}

// Validate checks the request invariants that must hold before any backend
// call is attempted. An unrecognized aspect-ratio token is not a validation
// error: the resolver treats it as an optional hint and ignores it.
func (r *GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return ErrPromptRequired
	}
	return nil
}

// Samples returns the effective sample count, clamped to [1, MaxSampleCount].
func (r *GenerationRequest) Samples() int {
	if r.SampleCount < 1 {
		return 1
	}
	if r.SampleCount > MaxSampleCount {
		return MaxSampleCount
	}
	return r.SampleCount
}

// GeneratedImage is a single image produced by a backend, either as an inline
// base64 payload with a format tag or as a remote URL. Values are immutable
// after construction.
type GeneratedImage struct {
	Data   string `json:"data,omitempty"`   // base64-encoded image bytes
	Format string `json:"format,omitempty"` // e.g. "png", "jpeg"
	URL    string `json:"url,omitempty"`
}

// IsInline reports whether the image carries inline base64 data.
func (g GeneratedImage) IsInline() bool {
	return g.Data != ""
}

// ImageUsage tracks token consumption reported by a backend.
type ImageUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// GenerationResult is the shared output contract of both backend adapters.
//
// Invariant: when Success is false, Images is empty and Error is set; when
// Success is true, Error is empty. An empty Images slice with Success=true is
// a valid model outcome, not an error.
type GenerationResult struct {
	Success    bool             `json:"success"`
	Provider   string           `json:"provider,omitempty"`
	Model      string           `json:"model,omitempty"`
	Prompt     string           `json:"prompt,omitempty"` // composed prompt as sent
	Images     []GeneratedImage `json:"images,omitempty"`
	Usage      *ImageUsage      `json:"usage,omitempty"`
	Error      string           `json:"error,omitempty"`
	SavedFiles []string         `json:"saved_files,omitempty"`
}

// FailureResult builds the normalized failure shape for an adapter error,
// preserving the result invariant: Success=false, no images, Error set.
func FailureResult(provider, model, prompt string, err error) *GenerationResult {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return &GenerationResult{
		Success:  false,
		Provider: provider,
		Model:    model,
		Prompt:   prompt,
		Error:    msg,
	}
}
