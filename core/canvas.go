package core

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
)

// CanvasMIMEType is the MIME type of every synthesized canvas image.
const CanvasMIMEType = "image/png"

// Canvas fill shades. The fill is near-white; the one-pixel border is a
// barely distinguishable darker shade so server-side validity checks do not
// reject the image as blank.
var (
	canvasFill   = color.RGBA{R: 0xFA, G: 0xFA, B: 0xFA, A: 0xFF}
	canvasBorder = color.RGBA{R: 0xF0, G: 0xF0, B: 0xF0, A: 0xFF}
)

// SynthesizeCanvas produces a minimal opaque PNG of exactly the descriptor's
// width and height, returned as a base64 string. Neither backend accepts an
// explicit width/height parameter; both infer the output canvas size from the
// last supplied reference image, so this blank canvas acts as the dimension
// hint.
func SynthesizeCanvas(d *AspectDescriptor) (string, error) {
	if d == nil {
		return "", fmt.Errorf("canvas: nil aspect descriptor")
	}
	if d.Width <= 0 || d.Height <= 0 {
		return "", fmt.Errorf("canvas: invalid dimensions %dx%d", d.Width, d.Height)
	}

	img := image.NewRGBA(image.Rect(0, 0, d.Width, d.Height))
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			if x == 0 || y == 0 || x == d.Width-1 || y == d.Height-1 {
				img.SetRGBA(x, y, canvasBorder)
			} else {
				img.SetRGBA(x, y, canvasFill)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("canvas: encode: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// cannedCanvas is a pre-baked fallback canvas for one orientation.
type cannedCanvas struct {
	ratio float64
	data  string
}

// cannedCanvases are synthesized once at init from known-good dimensions and
// used when on-the-fly synthesis fails. Chosen by nearest-ratio match.
var cannedCanvases []cannedCanvas

func init() {
	for _, d := range []AspectDescriptor{
		{Width: 512, Height: 512, Label: "square", Ratio: "1:1"},
		{Width: 512, Height: 288, Label: "landscape", Ratio: "16:9"},
		{Width: 288, Height: 512, Label: "portrait", Ratio: "9:16"},
	} {
		data, err := SynthesizeCanvas(&d)
		if err != nil {
			// Fixed positive dimensions cannot fail to encode.
			panic(err)
		}
		cannedCanvases = append(cannedCanvases, cannedCanvas{
			ratio: float64(d.Width) / float64(d.Height),
			data:  data,
		})
	}
}

// CanvasForAspect returns a base64 canvas for the descriptor. When synthesis
// fails it falls back to the nearest-ratio canned canvas and reports
// synthesized=false so the caller can log the event; the fallback is never
// fatal to the request.
func CanvasForAspect(d *AspectDescriptor) (data string, synthesized bool) {
	if out, err := SynthesizeCanvas(d); err == nil {
		return out, true
	}

	ratio := 1.0
	if d != nil && d.Width > 0 && d.Height > 0 {
		ratio = float64(d.Width) / float64(d.Height)
	}

	best := cannedCanvases[0]
	bestDist := math.Abs(math.Log(ratio) - math.Log(best.ratio))
	for _, c := range cannedCanvases[1:] {
		if dist := math.Abs(math.Log(ratio) - math.Log(c.ratio)); dist < bestDist {
			best, bestDist = c, dist
		}
	}
	return best.data, false
}
