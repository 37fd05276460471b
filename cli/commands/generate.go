package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/petal-labs/pigment/core"
	"github.com/petal-labs/pigment/persist"
)

var (
	genImages   []string
	genScenario string
	genAspect   string
	genNegative string
	genCount    int
	genSave     bool
	genFilename string
)

var generateCmd = &cobra.Command{
	Use:   "generate <prompt>",
	Short: "Generate images from a prompt",
	Long: `Generate images from a text prompt using the selected backend.

Reference images can be local paths, URLs, or data URIs. Saved images
land in the output directory (default generated_images).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringArrayVar(&genImages, "image", nil, "reference image (path, URL or data URI); repeatable")
	generateCmd.Flags().StringVar(&genScenario, "scenario", "", "scenario preset (see pigment scenarios)")
	generateCmd.Flags().StringVar(&genAspect, "aspect-ratio", "", "named format or W:H ratio")
	generateCmd.Flags().StringVar(&genNegative, "negative", "", "things to avoid in the image")
	generateCmd.Flags().IntVar(&genCount, "count", 1, "number of variations (1-4)")
	generateCmd.Flags().BoolVar(&genSave, "save", true, "write generated images to the output directory")
	generateCmd.Flags().StringVar(&genFilename, "filename", "", "filename stem for saved images")
}

// referenceFromArg interprets one --image value: data URIs stay inline, URLs
// are fetched, everything else is a local path.
func referenceFromArg(arg string) core.ReferenceImage {
	switch {
	case strings.HasPrefix(arg, "data:"):
		return core.ReferenceImage{Data: arg}
	case strings.HasPrefix(arg, "http://"), strings.HasPrefix(arg, "https://"):
		return core.ReferenceImage{URL: arg}
	default:
		return core.ReferenceImage{Path: arg}
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	req := &core.GenerationRequest{
		Prompt:         strings.Join(args, " "),
		Provider:       core.ProviderPreference(backend),
		Scenario:       genScenario,
		AspectRatio:    genAspect,
		NegativePrompt: genNegative,
		SampleCount:    genCount,
		SaveToFile:     genSave,
		Filename:       genFilename,
	}
	for _, arg := range genImages {
		req.Images = append(req.Images, referenceFromArg(arg))
	}

	selector := buildSelector(&zapTelemetry{logger: logger})
	provider, err := selector.Select(req.Provider)

	var result *core.GenerationResult
	if err != nil {
		result = core.FailureResult("", "", req.Prompt, err)
	} else {
		result, err = provider.Generate(cmd.Context(), req)
		if err != nil {
			result = core.FailureResult(provider.ID(), "", req.Prompt, err)
		}
	}

	if result.Success && req.SaveToFile && len(result.Images) > 0 {
		saverOpts := []persist.Option{persist.WithLogger(logger)}
		if outputDir != "" {
			saverOpts = append(saverOpts, persist.WithDir(outputDir))
		}
		saved, saveErr := persist.NewSaver(saverOpts...).Save(cmd.Context(), result.Images, req.Filename)
		if saveErr != nil {
			return saveErr
		}
		result.SavedFiles = saved
	}

	return printResult(cmd, result)
}

func printResult(cmd *cobra.Command, result *core.GenerationResult) error {
	if jsonOutput {
		// Strip inline payloads; a terminal is no place for megabytes of base64.
		out := *result
		out.Images = make([]core.GeneratedImage, len(result.Images))
		for i, img := range result.Images {
			out.Images[i] = core.GeneratedImage{Format: img.Format, URL: img.URL}
		}
		encoded, err := json.MarshalIndent(&out, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(encoded))
		if !result.Success {
			return fmt.Errorf("generation failed")
		}
		return nil
	}

	if !result.Success {
		return fmt.Errorf("generation failed: %s", result.Error)
	}

	cmd.Printf("Generated %d image(s) via %s (%s)\n", len(result.Images), result.Provider, result.Model)
	for _, img := range result.Images {
		if img.URL != "" {
			cmd.Printf("  url: %s\n", img.URL)
		}
	}
	for _, path := range result.SavedFiles {
		cmd.Printf("  saved: %s\n", path)
	}
	if result.Usage != nil {
		cmd.Printf("  tokens: %d\n", result.Usage.TotalTokens)
	}
	return nil
}
