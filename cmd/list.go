package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-layergroups/pkg/models"
	"github.com/mattsolo1/grove-layergroups/pkg/service"
)

func NewListCmd(svc **service.Service) *cobra.Command {
	var (
		listJSON  bool
		listGroup string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List layers in render order",
		Aliases: []string{"ls"},
		Long: `List the layers of the store in render order.

Examples:
  lg list                 # All layers
  lg list --group roads   # Only layers in the roads group (and its sub-groups)
  lg list --json          # Machine readable output`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			var (
				layers []*models.Layer
				err    error
			)
			if listGroup != "" {
				layers, err = s.Groups.LayersInGroup(listGroup)
			} else {
				layers, err = s.Store.List()
			}
			if err != nil {
				return fmt.Errorf("list layers: %w", err)
			}

			if listJSON {
				return outputJSON(cmd.OutOrStdout(), layers)
			}
			if len(layers) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No layers found")
				return nil
			}
			printLayersTable(cmd.OutOrStdout(), layers)
			return nil
		},
	}

	cmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	cmd.Flags().StringVarP(&listGroup, "group", "g", "", "Only list layers in this group")

	return cmd
}

func printLayersTable(out io.Writer, layers []*models.Layer) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "#\tID\tTYPE\tGROUPS")
	fmt.Fprintln(w, "--\t------------------------\t----------\t------")

	for i, layer := range layers {
		groups := strings.Join(layer.Groups(), ", ")
		if groups == "" {
			groups = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i, truncateString(layer.ID, 24), layer.Type, groups)
	}

	w.Flush()
}

// truncateString shortens s to maxLen runes, marking the cut with "...".
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

func outputJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
