package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/petal-labs/pigment/core"
)

// chatCompletionsPath is the API endpoint for chat completions.
const chatCompletionsPath = "/chat/completions"

// Generate issues a single generation request against the chat completions
// endpoint and returns the normalized result.
func (p *OpenRouter) Generate(ctx context.Context, req *core.GenerationRequest) (*core.GenerationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	aspect := core.ResolveAspect(req.AspectRatio)
	prompt := core.ComposePrompt(req, aspect)

	refs, err := core.ResolveReferenceImages(ctx, p.config.HTTPClient, req.Images)
	if err != nil {
		return nil, newInputError(err)
	}

	var canvas string
	var canvasFallback bool
	if aspect != nil {
		var synthesized bool
		canvas, synthesized = core.CanvasForAspect(aspect)
		canvasFallback = !synthesized
	}

	orReq := buildRequest(p.config.Model, prompt, refs, canvas)

	body, err := json.Marshal(orReq)
	if err != nil {
		return nil, newDecodeError(err)
	}

	start := time.Now()
	if p.config.Telemetry != nil {
		p.config.Telemetry.OnRequestStart(core.RequestStartEvent{
			Provider:        "openrouter",
			Model:           p.config.Model,
			Start:           start,
			ReferenceImages: len(refs),
			Canvas:          canvas != "",
			CanvasFallback:  canvasFallback,
		})
	}

	result, err := p.post(ctx, body, prompt)

	if p.config.Telemetry != nil {
		end := core.RequestEndEvent{
			Provider: "openrouter",
			Model:    p.config.Model,
			Start:    start,
			End:      time.Now(),
			Err:      err,
		}
		if result != nil {
			end.Images = len(result.Images)
			end.Usage = result.Usage
		}
		p.config.Telemetry.OnRequestEnd(end)
	}

	return result, err
}

// post issues the HTTP call and maps the response.
func (p *OpenRouter) post(ctx context.Context, body []byte, prompt string) (*core.GenerationResult, error) {
	url := p.config.BaseURL + chatCompletionsPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, newNetworkError(err)
	}

	for key, values := range p.buildHeaders() {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	resp, err := p.config.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, newNetworkError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetworkError(err)
	}

	requestID := resp.Header.Get("x-request-id")

	if resp.StatusCode >= 400 {
		return nil, normalizeError(resp.StatusCode, respBody, requestID)
	}

	var orResp orResponse
	if err := json.Unmarshal(respBody, &orResp); err != nil {
		return nil, newDecodeError(err)
	}

	return mapResponse(&orResp, p.config.Model, prompt), nil
}
