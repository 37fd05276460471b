package commands

import (
	"encoding/json"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List backends and their status",
	RunE:  runBackends,
}

func init() {
	rootCmd.AddCommand(backendsCmd)
}

func runBackends(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	selector := buildSelector(nil)

	if jsonOutput {
		type status struct {
			ID        string `json:"id"`
			Available bool   `json:"available"`
			ModelInfo string `json:"model_info"`
		}
		var statuses []status
		for _, p := range selector.All() {
			statuses = append(statuses, status{ID: p.ID(), Available: p.Available(), ModelInfo: p.ModelInfo()})
		}
		encoded, err := json.MarshalIndent(statuses, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(encoded))
		return nil
	}

	for _, p := range selector.All() {
		state := "not configured"
		if p.Available() {
			state = "ready"
		}
		cmd.Printf("%-12s %-16s %s\n", p.ID(), state, p.ModelInfo())
	}
	return nil
}
