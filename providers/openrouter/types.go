// Package openrouter provides the OpenRouter aggregator backend adapter.
package openrouter

// orRequest represents a request to the chat completions API.
type orRequest struct {
	Model      string      `json:"model"`
	Messages   []orMessage `json:"messages"`
	Modalities []string    `json:"modalities,omitempty"`
	Stream     bool        `json:"stream"`
}

// orMessage is a chat message whose content is a list of typed blocks.
type orMessage struct {
	Role    string           `json:"role"`
	Content []orContentBlock `json:"content"`
}

// orContentBlock is one content block: text or image_url.
type orContentBlock struct {
	Type     string      `json:"type"`
	Text     string      `json:"text,omitempty"`
	ImageURL *orImageURL `json:"image_url,omitempty"`
}

// orImageURL carries an HTTPS URL or a data URI.
type orImageURL struct {
	URL string `json:"url"`
}

// orResponse represents a chat completions response.
type orResponse struct {
	ID      string     `json:"id"`
	Model   string     `json:"model"`
	Choices []orChoice `json:"choices"`
	Usage   *orUsage   `json:"usage,omitempty"`
}

// orChoice is a single completion choice.
type orChoice struct {
	Index        int           `json:"index"`
	Message      orRespMessage `json:"message"`
	FinishReason string        `json:"finish_reason,omitempty"`
}

// orRespMessage is the assistant message in a response. Generated images
// arrive in the dedicated Images field; some routed models instead embed a
// data URI or plain URL in the text content.
type orRespMessage struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	Images  []orImage `json:"images,omitempty"`
}

// orImage is one generated image entry.
type orImage struct {
	Type     string     `json:"type,omitempty"`
	ImageURL orImageURL `json:"image_url"`
}

// orUsage tracks token usage.
type orUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
