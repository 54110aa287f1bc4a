package toolstream

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// toolListing is one registry entry as printed by 'list tools'.
type toolListing struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
	Schema  bool     `json:"schema"`
}

// toolsCmd implements 'list tools', which prints the registry the engine
// validates tool names against.
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List registered tools with their aliases",
	RunE: func(cmd *cobra.Command, args []string) error {
		listing := collectTools()
		if JSONModeEnabled() {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(listing)
		}

		rows := make([]CommandInfo, 0, len(listing))
		for _, tool := range listing {
			desc := ""
			if len(tool.Aliases) > 0 {
				desc = "aliases: " + strings.Join(tool.Aliases, ", ")
			}
			if tool.Schema {
				desc = strings.TrimSpace(desc + " [schema]")
			}
			rows = append(rows, CommandInfo{Path: tool.Name, Description: desc})
		}
		listColumns(cmd.OutOrStdout(), "Registered Tools:", rows)
		return nil
	},
}

func init() {
	listCmd.AddCommand(toolsCmd)
}

func collectTools() []toolListing {
	reg := Engine().Registry()
	aliases := make(map[string][]string)
	for _, pair := range reg.Aliases() {
		aliases[pair.Canonical] = append(aliases[pair.Canonical], pair.Alias)
	}

	names := reg.Names()
	listing := make([]toolListing, 0, len(names))
	for _, name := range names {
		canonical, _ := reg.Lookup(name)
		_, hasSchema := reg.Schema(canonical)
		own := aliases[name]
		sort.Strings(own)
		listing = append(listing, toolListing{Name: name, Aliases: own, Schema: hasSchema})
	}
	return listing
}
