package gemini

import (
	"github.com/petal-labs/pigment/core"
)

// buildRequest converts the normalized request into the Gemini parts shape.
//
// Part order is the dimension-hint contract: one text part (the composed
// prompt), one inlineData part per resolved reference image in original
// order, and the synthesized canvas strictly last. Gemini infers the output
// canvas size from the last supplied image.
func buildRequest(prompt string, refs []core.ResolvedImage, canvas string) *geminiRequest {
	parts := make([]geminiPart, 0, len(refs)+2)
	parts = append(parts, geminiPart{Text: prompt})

	for _, ref := range refs {
		parts = append(parts, geminiPart{
			InlineData: &geminiInlineData{
				MimeType: ref.MIMEType,
				Data:     ref.Data,
			},
		})
	}

	if canvas != "" {
		parts = append(parts, geminiPart{
			InlineData: &geminiInlineData{
				MimeType: core.CanvasMIMEType,
				Data:     canvas,
			},
		})
	}

	return &geminiRequest{
		Contents: []geminiContent{{Parts: parts}},
		GenerationConfig: &geminiGenConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	}
}

// mapResponse converts a Gemini response to the normalized result.
//
// Every candidate and every part is scanned for inline image data; images
// are collected in encounter order. A response with no images is still a
// success; absence of images is a valid model outcome.
func mapResponse(resp *geminiResponse, model, prompt string) *core.GenerationResult {
	result := &core.GenerationResult{
		Success:  true,
		Provider: "gemini",
		Model:    model,
		Prompt:   prompt,
	}

	for _, candidate := range resp.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData == nil || part.InlineData.Data == "" {
				continue
			}
			result.Images = append(result.Images, core.GeneratedImage{
				Data:   part.InlineData.Data,
				Format: formatFromMIME(part.InlineData.MimeType),
			})
		}
	}

	if resp.UsageMetadata != nil {
		result.Usage = &core.ImageUsage{
			PromptTokens:     resp.UsageMetadata.PromptTokenCount,
			CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      resp.UsageMetadata.TotalTokenCount,
		}
	}

	return result
}

// formatFromMIME maps an image MIME type to a short format tag.
func formatFromMIME(mime string) string {
	switch mime {
	case "image/jpeg":
		return "jpeg"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return "png"
	}
}
