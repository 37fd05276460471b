package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/petal-labs/pigment/core"
	"github.com/petal-labs/pigment/persist"
	"github.com/petal-labs/pigment/providers"
	"github.com/petal-labs/pigment/tools"
)

// NewToolset builds the tool registry exposed by the server: generate_image,
// list_backends and list_scenarios. Every tool is wrapped in the shared
// middleware chain, so per-call logging and argument validation apply
// uniformly regardless of transport.
func NewToolset(selector *providers.Selector, saver *persist.Saver, logger *zap.Logger) *tools.Registry {
	if logger == nil {
		logger = zap.NewNop()
	}

	chain := []tools.Middleware{
		tools.WithLogging(printfLogger{logger.Sugar()}),
		tools.WithBasicValidation(),
	}

	registry := tools.NewRegistry()
	for _, t := range []tools.Tool{
		&generateImageTool{
			selector: selector,
			saver:    saver,
			logger:   logger,
		},
		&listBackendsTool{selector: selector},
		&listScenariosTool{},
	} {
		registry.MustRegister(tools.ApplyMiddleware(t, chain...))
	}
	return registry
}

// printfLogger adapts a zap logger to the middleware Logger interface.
type printfLogger struct {
	s *zap.SugaredLogger
}

func (l printfLogger) Printf(format string, v ...any) {
	l.s.Infof(format, v...)
}

// resultSummary is the text payload returned alongside image blocks. Inline
// image data is elided; clients get the pixels through image content blocks,
// not through the summary JSON.
type resultSummary struct {
	Success    bool             `json:"success"`
	Provider   string           `json:"provider,omitempty"`
	Model      string           `json:"model,omitempty"`
	Prompt     string           `json:"prompt,omitempty"`
	ImageCount int              `json:"image_count"`
	ImageURLs  []string         `json:"image_urls,omitempty"`
	Usage      *core.ImageUsage `json:"usage,omitempty"`
	Error      string           `json:"error,omitempty"`
	SavedFiles []string         `json:"saved_files,omitempty"`
}

func summarize(result *core.GenerationResult) resultSummary {
	s := resultSummary{
		Success:    result.Success,
		Provider:   result.Provider,
		Model:      result.Model,
		Prompt:     result.Prompt,
		ImageCount: len(result.Images),
		Usage:      result.Usage,
		Error:      result.Error,
		SavedFiles: result.SavedFiles,
	}
	for _, img := range result.Images {
		if img.URL != "" {
			s.ImageURLs = append(s.ImageURLs, img.URL)
		}
	}
	return s
}

// resultContent renders a generation result as protocol content blocks: one
// text summary followed by one image block per inline image.
func resultContent(result *core.GenerationResult) *CallToolResult {
	summary, err := json.Marshal(summarize(result))
	if err != nil {
		summary = []byte(fmt.Sprintf(`{"success":false,"error":%q}`, err.Error()))
	}

	ctr := &CallToolResult{
		Content: []ContentBlock{TextContent(string(summary))},
		IsError: !result.Success,
	}
	for _, img := range result.Images {
		if !img.IsInline() {
			continue
		}
		data, mime := core.SplitDataURI(img.Data)
		if mime == "" {
			mime = mimeFromFormat(img.Format)
		}
		ctr.Content = append(ctr.Content, ImageContent(data, mime))
	}
	return ctr
}

func mimeFromFormat(format string) string {
	switch format {
	case "jpeg", "jpg":
		return "image/jpeg"
	case "webp":
		return "image/webp"
	case "gif":
		return "image/gif"
	default:
		return "image/png"
	}
}

// generateImageTool forwards a generation request to the selected backend and
// optionally persists the images.
type generateImageTool struct {
	selector *providers.Selector
	saver    *persist.Saver
	logger   *zap.Logger
}

func (t *generateImageTool) Name() string { return "generate_image" }

func (t *generateImageTool) Description() string {
	return "Generate images from a text prompt, with optional reference images, " +
		"scenario presets, aspect ratio control and file output. Routes to the " +
		"Gemini API directly or through OpenRouter."
}

func (t *generateImageTool) Schema() tools.ToolSchema {
	return tools.ToolSchema{JSONSchema: json.RawMessage(`{
  "type": "object",
  "properties": {
    "prompt": {
      "type": "string",
      "description": "Text description of the image to generate"
    },
    "images": {
      "type": "array",
      "description": "Reference images: each entry needs one of path, url or data",
      "items": {
        "type": "object",
        "properties": {
          "path": {"type": "string", "description": "Local file path"},
          "url": {"type": "string", "description": "HTTP(S) URL to fetch"},
          "data": {"type": "string", "description": "Base64 payload or data URI"},
          "mime_type": {"type": "string", "description": "Override for the detected MIME type"},
          "description": {"type": "string", "description": "What this reference shows"}
        }
      }
    },
    "provider": {
      "type": "string",
      "enum": ["gemini", "openrouter", "auto"],
      "description": "Backend selection; auto picks the first configured backend"
    },
    "scenario": {
      "type": "string",
      "description": "Named prompt preset, see list_scenarios"
    },
    "aspect_ratio": {
      "type": "string",
      "description": "Named format (square, landscape, portrait, widescreen, ultrawide, panoramic) or W:H ratio"
    },
    "negative_prompt": {
      "type": "string",
      "description": "Things to avoid in the generated image"
    },
    "sample_count": {
      "type": "integer",
      "minimum": 1,
      "maximum": 4,
      "description": "Number of variations to request"
    },
    "save_to_file": {
      "type": "boolean",
      "description": "Write generated images to the output directory"
    },
    "filename": {
      "type": "string",
      "description": "Filename stem for saved images"
    }
  },
  "required": ["prompt"]
}`)}
}

func (t *generateImageTool) Call(ctx context.Context, args json.RawMessage) (any, error) {
	req, err := tools.ParseArgs[core.GenerationRequest](args)
	if err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	backend, err := t.selector.Select(req.Provider)
	if err != nil {
		return resultContent(core.FailureResult("", "", req.Prompt, err)), nil
	}

	result, err := backend.Generate(ctx, req)
	if err != nil {
		return resultContent(core.FailureResult(backend.ID(), "", req.Prompt, err)), nil
	}

	if req.SaveToFile && len(result.Images) > 0 {
		saved, saveErr := t.saver.Save(ctx, result.Images, req.Filename)
		if saveErr != nil {
			t.logger.Warn("saving images failed", zap.Error(saveErr))
		}
		result.SavedFiles = saved
	}

	return resultContent(result), nil
}

// listBackendsTool reports the configured backends and their status.
type listBackendsTool struct {
	selector *providers.Selector
}

func (t *listBackendsTool) Name() string { return "list_backends" }

func (t *listBackendsTool) Description() string {
	return "List the image generation backends, whether each is configured, and the model it uses."
}

func (t *listBackendsTool) Schema() tools.ToolSchema {
	return tools.ToolSchema{JSONSchema: json.RawMessage(`{"type":"object","properties":{}}`)}
}

type backendStatus struct {
	ID        string `json:"id"`
	Available bool   `json:"available"`
	ModelInfo string `json:"model_info"`
}

func (t *listBackendsTool) Call(ctx context.Context, args json.RawMessage) (any, error) {
	all := t.selector.All()
	statuses := make([]backendStatus, 0, len(all))
	for _, p := range all {
		statuses = append(statuses, backendStatus{
			ID:        p.ID(),
			Available: p.Available(),
			ModelInfo: p.ModelInfo(),
		})
	}

	encoded, err := json.Marshal(map[string]any{"backends": statuses})
	if err != nil {
		return nil, err
	}
	return &CallToolResult{Content: []ContentBlock{TextContent(string(encoded))}}, nil
}

// listScenariosTool reports the named prompt presets.
type listScenariosTool struct{}

func (t *listScenariosTool) Name() string { return "list_scenarios" }

func (t *listScenariosTool) Description() string {
	return "List the scenario presets accepted by generate_image and the prompt prefix each applies."
}

func (t *listScenariosTool) Schema() tools.ToolSchema {
	return tools.ToolSchema{JSONSchema: json.RawMessage(`{"type":"object","properties":{}}`)}
}

type scenarioEntry struct {
	Tag    string `json:"tag"`
	Prefix string `json:"prefix"`
}

func (t *listScenariosTool) Call(ctx context.Context, args json.RawMessage) (any, error) {
	tags := core.ScenarioTags()
	entries := make([]scenarioEntry, 0, len(tags))
	for _, tag := range tags {
		prefix, _ := core.ScenarioPrefix(tag)
		entries = append(entries, scenarioEntry{Tag: tag, Prefix: prefix})
	}

	encoded, err := json.Marshal(map[string]any{"scenarios": entries})
	if err != nil {
		return nil, err
	}
	return &CallToolResult{Content: []ContentBlock{TextContent(string(encoded))}}, nil
}
