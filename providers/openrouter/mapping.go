package openrouter

import (
	"regexp"
	"strings"

	"github.com/petal-labs/pigment/core"
)

// buildRequest converts the normalized request into the chat message shape.
//
// Block order mirrors the Gemini adapter's parts order: one text block (the
// composed prompt), one image_url block per resolved reference image in
// original order, and the synthesized canvas strictly last. The canvas must
// not be reordered; it is the dimension hint.
func buildRequest(model, prompt string, refs []core.ResolvedImage, canvas string) *orRequest {
	blocks := make([]orContentBlock, 0, len(refs)+2)
	blocks = append(blocks, orContentBlock{Type: "text", Text: prompt})

	for _, ref := range refs {
		blocks = append(blocks, orContentBlock{
			Type:     "image_url",
			ImageURL: &orImageURL{URL: "data:" + ref.MIMEType + ";base64," + ref.Data},
		})
	}

	if canvas != "" {
		blocks = append(blocks, orContentBlock{
			Type:     "image_url",
			ImageURL: &orImageURL{URL: "data:" + core.CanvasMIMEType + ";base64," + canvas},
		})
	}

	return &orRequest{
		Model:      model,
		Messages:   []orMessage{{Role: "user", Content: blocks}},
		Modalities: []string{"image", "text"},
	}
}

// urlPattern matches the first http(s) URL embedded in free text. The first
// match is assumed to be the image, a known weak contract of some routed
// models that only return prose.
var urlPattern = regexp.MustCompile(`https?://[^\s<>"')\]]+`)

// dataURIPattern matches an embedded base64 image data URI.
var dataURIPattern = regexp.MustCompile(`data:image/[a-zA-Z+.-]+;base64,[A-Za-z0-9+/=]+`)

// mapResponse converts a chat completions response to the normalized result.
//
// The first choice's message is read. Images come from the dedicated images
// field when present; otherwise the text content is scanned for an embedded
// data URI, then for a bare http(s) URL. No image anywhere is still a
// success with an empty image list.
func mapResponse(resp *orResponse, model, prompt string) *core.GenerationResult {
	result := &core.GenerationResult{
		Success:  true,
		Provider: "openrouter",
		Model:    model,
		Prompt:   prompt,
	}
	if resp.Model != "" {
		result.Model = resp.Model
	}

	if resp.Usage != nil {
		result.Usage = &core.ImageUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}

	if len(resp.Choices) == 0 {
		return result
	}
	msg := resp.Choices[0].Message

	if len(msg.Images) > 0 {
		for _, img := range msg.Images {
			if gi, ok := imageFromURL(img.ImageURL.URL); ok {
				result.Images = append(result.Images, gi)
			}
		}
		return result
	}

	if uri := dataURIPattern.FindString(msg.Content); uri != "" {
		if gi, ok := imageFromURL(uri); ok {
			result.Images = append(result.Images, gi)
		}
		return result
	}

	if url := urlPattern.FindString(msg.Content); url != "" {
		result.Images = append(result.Images, core.GeneratedImage{URL: url})
	}

	return result
}

// imageFromURL converts an images-field entry (a data URI or a plain URL)
// into a GeneratedImage.
func imageFromURL(url string) (core.GeneratedImage, bool) {
	if url == "" {
		return core.GeneratedImage{}, false
	}

	if strings.HasPrefix(url, "data:") {
		data, mime := core.SplitDataURI(url)
		if data == url {
			// Malformed data URI; drop it.
			return core.GeneratedImage{}, false
		}
		return core.GeneratedImage{
			Data:   data,
			Format: formatFromMIME(mime),
		}, true
	}

	return core.GeneratedImage{URL: url}, true
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
