package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-layergroups/pkg/service"
)

func NewLayerCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layer",
		Short: "Inspect individual layers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "groups <layer-id>",
		Short: "Print every group a layer belongs to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			ok, err := s.Groups.HasLayer(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("layer not found: %s", args[0])
			}
			ids, err := s.Groups.LayerGroupIDs(args[0])
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	})

	return cmd
}
