package core

import (
	"fmt"
	"sort"
)

// scenarioPrefixes maps scenario tags to the instructional prefix prepended
// to the base prompt. The table is read-only after init.
var scenarioPrefixes = map[string]string{
	"style-transfer":    "Apply the artistic style from the reference image(s) to: ",
	"photo-restoration": "Restore and enhance this photo, repairing any damage and improving quality: ",
	"background-change": "Keep the main subject of the reference image and change the background to: ",
	"object-removal":    "Recreate the reference image without the following elements: ",
	"character-design":  "Create a consistent character design sheet for: ",
	"product-shot":      "Create a professional studio product photograph of: ",
	"sticker":           "Create a die-cut sticker illustration with a white outline of: ",
	"logo-design":       "Design a clean, flat, vector-style logo for: ",
}

// ScenarioTags returns the recognized scenario tags in sorted order.
func ScenarioTags() []string {
	tags := make([]string, 0, len(scenarioPrefixes))
	for tag := range scenarioPrefixes {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// ScenarioPrefix returns the instructional prefix for a scenario tag.
func ScenarioPrefix(tag string) (string, bool) {
	prefix, ok := scenarioPrefixes[tag]
	return prefix, ok
}

// ComposePrompt builds the final instruction text sent to a backend.
//
// Clauses are concatenated in a fixed order that downstream backends are
// sensitive to:
//
//  1. the scenario prefix (unknown or absent tag: none) followed by the base
//     prompt,
//  2. the canvas-fill clause when an aspect descriptor is present,
//  3. the "Avoid:" clause when a negative prompt is present,
//  4. outermost, the "Generate N variations of:" wrapper when more than one
//     sample is requested.
//
// The ordering is a contract; tests assert exact clause positions.
func ComposePrompt(req *GenerationRequest, aspect *AspectDescriptor) string {
	prompt := req.Prompt
	if prefix, ok := scenarioPrefixes[req.Scenario]; ok {
		prompt = prefix + prompt
	}

	if aspect != nil {
		prompt += fmt.Sprintf(" Generate the image to fill the entire %s format (%s aspect ratio) canvas provided by the blank image.",
			aspect.Label, aspect.Ratio)
	}

	if req.NegativePrompt != "" {
		prompt += " Avoid: " + req.NegativePrompt + "."
	}

	if n := req.Samples(); n > 1 {
		prompt = fmt.Sprintf("Generate %d variations of: %s", n, prompt)
	}

	return prompt
}
