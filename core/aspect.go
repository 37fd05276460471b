package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maxCanvasSide is the pixel size the larger canvas dimension is pinned to.
const maxCanvasSide = 1024

// AspectDescriptor is the canonical form of a resolved aspect-ratio token.
// Width and Height are the target canvas dimensions in pixels; Label is the
// canonical name used in prompt phrasing and Ratio the W:H form.
type AspectDescriptor struct {
	Width  int
	Height int
	Label  string
	Ratio  string
}

// namedAspects maps recognized tokens (lowercase) to fixed descriptors.
// Multiple tokens may share one descriptor ("landscape" and "16:9").
var namedAspects = map[string]AspectDescriptor{
	"square":     {Width: 1024, Height: 1024, Label: "square", Ratio: "1:1"},
	"1:1":        {Width: 1024, Height: 1024, Label: "square", Ratio: "1:1"},
	"landscape":  {Width: 1024, Height: 576, Label: "landscape", Ratio: "16:9"},
	"16:9":       {Width: 1024, Height: 576, Label: "landscape", Ratio: "16:9"},
	"portrait":   {Width: 576, Height: 1024, Label: "portrait", Ratio: "9:16"},
	"9:16":       {Width: 576, Height: 1024, Label: "portrait", Ratio: "9:16"},
	"widescreen": {Width: 1024, Height: 640, Label: "widescreen", Ratio: "16:10"},
	"ultrawide":  {Width: 1024, Height: 439, Label: "ultrawide", Ratio: "21:9"},
	"panoramic":  {Width: 1024, Height: 512, Label: "panoramic", Ratio: "2:1"},
	"4:3":        {Width: 1024, Height: 768, Label: "4:3", Ratio: "4:3"},
	"3:4":        {Width: 768, Height: 1024, Label: "3:4", Ratio: "3:4"},
}

// ResolveAspect maps an aspect-ratio token to a descriptor.
//
// Named tokens are matched case-insensitively against a fixed table. Any
// other token of the form "<integer>:<integer>" with positive values is
// accepted: the larger side is pinned to 1024 and the other derived from the
// ratio, rounded to the nearest integer, preserving orientation. Every other
// token yields nil: no aspect constraint, never an error.
//
// ResolveAspect is pure: the same token always yields the same descriptor.
func ResolveAspect(token string) *AspectDescriptor {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return nil
	}

	if d, ok := namedAspects[token]; ok {
		return &d
	}

	w, h, ok := parseRatio(token)
	if !ok {
		return nil
	}

	d := AspectDescriptor{Ratio: fmt.Sprintf("%d:%d", w, h)}
	switch {
	case w == h:
		d.Width, d.Height = maxCanvasSide, maxCanvasSide
		d.Label = "square"
	case w > h:
		d.Width = maxCanvasSide
		d.Height = scaleSide(h, w)
		d.Label = "landscape"
	default:
		d.Height = maxCanvasSide
		d.Width = scaleSide(w, h)
		d.Label = "portrait"
	}
	return &d
}

// parseRatio parses "<a>:<b>" with positive integer components.
func parseRatio(token string) (int, int, bool) {
	a, b, found := strings.Cut(token, ":")
	if !found {
		return 0, 0, false
	}
	w, err := strconv.Atoi(a)
	if err != nil || w <= 0 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(b)
	if err != nil || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// scaleSide derives the smaller canvas side from the ratio minor/major.
func scaleSide(minor, major int) int {
	return int(math.Round(float64(maxCanvasSide) * float64(minor) / float64(major)))
}
