package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/petal-labs/pigment/mcp"
	"github.com/petal-labs/pigment/persist"
)

var httpAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the tool server",
	Long: `Run the image generation tool server.

By default the server speaks newline-delimited JSON-RPC over stdin/stdout,
the transport MCP clients expect. With --http it listens on the given
address instead, accepting one message per POST to /mcp.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&httpAddr, "http", "", "serve over HTTP on this address (e.g. :8080) instead of stdio")
}

func runServe(cmd *cobra.Command, args []string) error {
	// A .env next to the working directory may carry the API keys.
	_ = godotenv.Load()

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	selector := buildSelector(&zapTelemetry{logger: logger})

	saverOpts := []persist.Option{persist.WithLogger(logger)}
	if outputDir != "" {
		saverOpts = append(saverOpts, persist.WithDir(outputDir))
	}
	saver := persist.NewSaver(saverOpts...)

	registry := mcp.NewToolset(selector, saver, logger)
	server := mcp.NewServer("pigment", Version, registry, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if httpAddr != "" {
		return mcp.NewHTTPServer(server, httpAddr, logger).ListenAndServe(ctx)
	}
	return server.Serve(ctx, os.Stdin, os.Stdout)
}
