package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/petal-labs/pigment/core"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List scenario presets",
	Long:  `List the named scenario presets and the prompt prefix each applies.`,
	RunE:  runScenarios,
}

func init() {
	rootCmd.AddCommand(scenariosCmd)
}

func runScenarios(cmd *cobra.Command, args []string) error {
	tags := core.ScenarioTags()

	if jsonOutput {
		type entry struct {
			Tag    string `json:"tag"`
			Prefix string `json:"prefix"`
		}
		entries := make([]entry, 0, len(tags))
		for _, tag := range tags {
			prefix, _ := core.ScenarioPrefix(tag)
			entries = append(entries, entry{Tag: tag, Prefix: prefix})
		}
		encoded, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(encoded))
		return nil
	}

	for _, tag := range tags {
		prefix, _ := core.ScenarioPrefix(tag)
		cmd.Printf("%-20s %s\n", tag, prefix)
	}
	return nil
}
