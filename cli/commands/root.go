// Package commands implements the CLI command structure using Cobra.
package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/petal-labs/pigment/cli/config"
)

var (
	// Global flags
	cfgFile    string
	backend    string
	outputDir  string
	jsonOutput bool
	verbose    bool

	// Loaded configuration
	cfg *config.Config
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "pigment",
	Short: "Pigment - image generation tool server",
	Long: `Pigment generates images through the Gemini API or OpenRouter and
serves the generate_image tool over the Model Context Protocol.

Use pigment to manage API keys, generate images from the command line,
or run the tool server for MCP clients.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.pigment/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "backend ID (gemini, openrouter, auto)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "directory for saved images (default generated_images)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit JSON output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
}

// initConfig reads in config file and sets defaults.
func initConfig() error {
	path := cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	var err error
	cfg, err = config.LoadConfig(path)
	if err != nil {
		return err
	}

	// Apply config defaults if flags not set
	if backend == "" && cfg.DefaultProvider != "" {
		backend = cfg.DefaultProvider
	}
	if outputDir == "" && cfg.OutputDir != "" {
		outputDir = cfg.OutputDir
	}

	return nil
}

// newLogger builds the CLI logger. Logs go to stderr so stdout stays free
// for protocol messages and command output.
func newLogger() (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if verbose {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	return zcfg.Build()
}
