package core

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ReferenceImage is one input image attached to a generation request. It is
// polymorphic over its source: exactly one of Path, URL, or Data should be
// set. When several are set, resolution order is Path, then URL, then Data.
// An entry with no source at all is dropped silently at request-build time.
type ReferenceImage struct {
	Path        string `json:"path,omitempty"`
	URL         string `json:"url,omitempty"`
	Data        string `json:"data,omitempty"` // base64, optionally a data URI
	MIMEType    string `json:"mime_type,omitempty"`
	Description string `json:"description,omitempty"`
}

// HasSource reports whether any source field is set.
func (r ReferenceImage) HasSource() bool {
	return r.Path != "" || r.URL != "" || r.Data != ""
}

// ResolvedImage is a reference image resolved to inline base64 form, ready
// for payload construction.
type ResolvedImage struct {
	Data     string // base64-encoded bytes, no data-URI prefix
	MIMEType string
}

// Resolve evaluates the source union once, returning inline base64 data and
// a MIME type. Entries without a source resolve to (nil, nil). An explicit
// MIMEType on the reference overrides detection.
func (r ReferenceImage) Resolve(ctx context.Context, client *http.Client) (*ResolvedImage, error) {
	switch {
	case r.Path != "":
		raw, err := os.ReadFile(r.Path)
		if err != nil {
			return nil, fmt.Errorf("reference image %s: %w", r.Path, err)
		}
		return &ResolvedImage{
			Data:     base64.StdEncoding.EncodeToString(raw),
			MIMEType: r.mimeOr(DetectImageMIME(r.Path, raw)),
		}, nil

	case r.URL != "":
		if client == nil {
			client = http.DefaultClient
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
		if err != nil {
			return nil, fmt.Errorf("reference image %s: %w", r.URL, err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("reference image %s: %w", r.URL, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("reference image %s: status %d", r.URL, resp.StatusCode)
		}
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("reference image %s: %w", r.URL, err)
		}
		mime := resp.Header.Get("Content-Type")
		if !strings.HasPrefix(mime, "image/") {
			mime = DetectImageMIME(r.URL, raw)
		}
		return &ResolvedImage{
			Data:     base64.StdEncoding.EncodeToString(raw),
			MIMEType: r.mimeOr(mime),
		}, nil

	case r.Data != "":
		data, mime := SplitDataURI(r.Data)
		if mime == "" {
			mime = "image/png"
		}
		if _, err := base64.StdEncoding.DecodeString(data); err != nil {
			return nil, fmt.Errorf("reference image: invalid base64: %w", err)
		}
		return &ResolvedImage{Data: data, MIMEType: r.mimeOr(mime)}, nil
	}

	return nil, nil
}

func (r ReferenceImage) mimeOr(detected string) string {
	if r.MIMEType != "" {
		return r.MIMEType
	}
	return detected
}

// ResolveReferenceImages resolves every sourced entry in order, silently
// dropping entries with no source. A resolution failure (unreadable file,
// fetch error, bad base64) aborts with an error.
func ResolveReferenceImages(ctx context.Context, client *http.Client, images []ReferenceImage) ([]ResolvedImage, error) {
	resolved := make([]ResolvedImage, 0, len(images))
	for _, img := range images {
		if !img.HasSource() {
			continue
		}
		ri, err := img.Resolve(ctx, client)
		if err != nil {
			return nil, err
		}
		if ri != nil {
			resolved = append(resolved, *ri)
		}
	}
	return resolved, nil
}

// SplitDataURI strips a "data:<mime>;base64," prefix, returning the bare
// base64 payload and the declared MIME type (empty when the input is not a
// data URI).
func SplitDataURI(s string) (data, mimeType string) {
	if !strings.HasPrefix(s, "data:") {
		return s, ""
	}
	meta, payload, found := strings.Cut(s[len("data:"):], ",")
	if !found {
		return s, ""
	}
	mimeType = strings.TrimSuffix(meta, ";base64")
	return payload, mimeType
}

// DetectImageMIME detects an image MIME type from a filename extension or,
// failing that, magic bytes. Defaults to image/png.
func DetectImageMIME(filename string, data []byte) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	}

	if len(data) >= 4 {
		if data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47 {
			return "image/png"
		}
		if data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
			return "image/jpeg"
		}
		if data[0] == 'G' && data[1] == 'I' && data[2] == 'F' {
			return "image/gif"
		}
		if len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP" {
			return "image/webp"
		}
	}

	return "image/png"
}
