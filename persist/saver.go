// Package persist writes generated images to local files.
package persist

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/petal-labs/pigment/core"
)

// DefaultDir is the output directory created next to the working directory.
const DefaultDir = "generated_images"

// maxBaseLen caps the sanitized filename stem.
const maxBaseLen = 64

// Saver persists generated images under a single output directory. Image
// failures are logged and skipped; one bad image never aborts the batch.
type Saver struct {
	dir    string
	client *http.Client
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Saver.
type Option func(*Saver)

// WithDir sets the output directory.
func WithDir(dir string) Option {
	return func(s *Saver) {
		s.dir = dir
	}
}

// WithHTTPClient sets the client used to fetch URL-only images.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Saver) {
		s.client = client
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Saver) {
		s.logger = logger
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Saver) {
		s.now = now
	}
}

// NewSaver creates a Saver with the given options.
func NewSaver(opts ...Option) *Saver {
	s := &Saver{
		dir:    DefaultDir,
		client: http.DefaultClient,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save writes each image to a file and returns the paths written, in image
// order. Filenames are <base>_<timestamp>.<ext>, with a 1-based index suffix
// when the batch has more than one image. Images that cannot be decoded or
// fetched are logged and skipped.
func (s *Saver) Save(ctx context.Context, images []core.GeneratedImage, base string) ([]string, error) {
	if len(images) == 0 {
		return nil, nil
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	stem := sanitizeBase(base)
	ts := timestamp(s.now().UTC())

	var saved []string
	for i, img := range images {
		data, ext, err := s.imageBytes(ctx, img)
		if err != nil {
			s.logger.Warn("skipping image",
				zap.Int("index", i),
				zap.Error(err))
			continue
		}

		name := stem + "_" + ts
		if len(images) > 1 {
			name = fmt.Sprintf("%s_%d", name, i+1)
		}
		path := filepath.Join(s.dir, name+"."+ext)

		if err := os.WriteFile(path, data, 0o644); err != nil {
			s.logger.Warn("skipping image",
				zap.Int("index", i),
				zap.String("path", path),
				zap.Error(err))
			continue
		}

		s.logger.Info("saved image",
			zap.String("path", path),
			zap.Int("bytes", len(data)))
		saved = append(saved, path)
	}

	return saved, nil
}

// imageBytes materializes one image as raw bytes plus a file extension.
// Inline data wins over URL. Extension priority: the image's Format tag, then
// the data-URI MIME type, then the fetch Content-Type, then png.
func (s *Saver) imageBytes(ctx context.Context, img core.GeneratedImage) ([]byte, string, error) {
	if img.IsInline() {
		payload, mime := core.SplitDataURI(img.Data)
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", fmt.Errorf("decode base64: %w", err)
		}

		ext := img.Format
		if ext == "" {
			ext = extFromMIME(mime)
		}
		if ext == "" {
			ext = "png"
		}
		return data, ext, nil
	}

	if img.URL == "" {
		return nil, "", fmt.Errorf("image has neither data nor URL")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, img.URL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build fetch request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", img.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch %s: status %d", img.URL, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", img.URL, err)
	}

	ext := img.Format
	if ext == "" {
		ext = extFromMIME(resp.Header.Get("Content-Type"))
	}
	if ext == "" {
		ext = "png"
	}
	return data, ext, nil
}

// sanitizeBase reduces a requested filename to a safe stem: letters, digits,
// underscore and hyphen only, capped at maxBaseLen. Empty input falls back to
// "image".
func sanitizeBase(base string) string {
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
		if b.Len() >= maxBaseLen {
			break
		}
	}
	if b.Len() == 0 {
		return "image"
	}
	return b.String()
}

// timestamp renders a filesystem-safe RFC3339 UTC timestamp.
func timestamp(t time.Time) string {
	s := t.Format(time.RFC3339)
	s = strings.ReplaceAll(s, ":", "-")
	s = strings.ReplaceAll(s, ".", "-")
	return s
}

// extFromMIME maps a MIME type (possibly with parameters) to a file extension.
func extFromMIME(mime string) string {
	mime, _, _ = strings.Cut(mime, ";")
	switch strings.TrimSpace(mime) {
	case "image/png":
		return "png"
	case "image/jpeg", "image/jpg":
		return "jpeg"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return ""
	}
}
