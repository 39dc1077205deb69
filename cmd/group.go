package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-layergroups/pkg/groupid"
	"github.com/mattsolo1/grove-layergroups/pkg/groups"
	"github.com/mattsolo1/grove-layergroups/pkg/service"
)

func NewGroupCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage layer groups",
		Long: `Manage named, nestable groups of layers.

Group ids may be written with or without the leading '$'. Use 'a/b' to
address the sub-group b of group a.`,
	}

	cmd.AddCommand(newGroupAddCmd(svc))
	cmd.AddCommand(newGroupAddLayerCmd(svc))
	cmd.AddCommand(newGroupRemoveCmd(svc))
	cmd.AddCommand(newGroupMoveCmd(svc))
	cmd.AddCommand(newGroupShowCmd(svc))
	cmd.AddCommand(newGroupListCmd(svc))
	cmd.AddCommand(newGroupIDCmd())

	return cmd
}

func newGroupAddCmd(svc **service.Service) *cobra.Command {
	var before string

	cmd := &cobra.Command{
		Use:   "add <group> <layers-file>",
		Short: "Add a group of layers",
		Long: `Insert every layer in a style or layer-list file as members of a group.

--before accepts a layer id or a group id. A grouped layer is resolved to
the first layer of its outermost group.

Examples:
  lg group add roads roads.yaml
  lg group add roads/labels labels.json --before water`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			layers, err := s.ReadLayers(args[1])
			if err != nil {
				return err
			}
			if err := s.Groups.AddGroup(args[0], layers, before); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d layer(s) to %s\n", len(layers), groupid.Normalize(args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&before, "before", "", "Layer or group id to insert the group before")
	return cmd
}

func newGroupAddLayerCmd(svc **service.Service) *cobra.Command {
	var before string

	cmd := &cobra.Command{
		Use:   "add-layer <group> <layer-file>",
		Short: "Add a single layer to a group",
		Long: `Add one layer to a group. Without --before the layer becomes the last
layer of the group. --before must name a layer that is already in the group.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			layer, err := s.ReadLayer(args[1])
			if err != nil {
				return err
			}
			err = s.Groups.AddLayerToGroup(args[0], layer, before)
			if errors.Is(err, groups.ErrInvalidBeforeReference) {
				return fmt.Errorf("%w (see 'lg list --group %s')", err, args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s\n", layer.ID, groupid.Normalize(args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&before, "before", "", "Layer of the same group to insert before")
	return cmd
}

func newGroupRemoveCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <group>",
		Short:   "Remove a group and all of its layers",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			members, err := s.Groups.LayersInGroup(args[0])
			if err != nil {
				return err
			}
			if err := s.Groups.RemoveGroup(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d layer(s) from %s\n", len(members), groupid.Normalize(args[0]))
			return nil
		},
	}
}

func newGroupMoveCmd(svc **service.Service) *cobra.Command {
	var before string

	cmd := &cobra.Command{
		Use:   "move <group>",
		Short: "Move a group before a layer or group",
		Long: `Move every layer of a group, keeping their order, in front of the layer
or group named by --before. Without --before the group moves to the end.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			if err := s.Groups.MoveGroup(args[0], before); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s\n", groupid.Normalize(args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&before, "before", "", "Layer or group id to move the group before")
	return cmd
}

// groupSummary is the JSON shape of 'lg group show'
type groupSummary struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Parent string   `json:"parent,omitempty"`
	First  string   `json:"first,omitempty"`
	Last   string   `json:"last,omitempty"`
	Layers []string `json:"layers"`
}

func newGroupShowCmd(svc **service.Service) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <group>",
		Short: "Show the layers of a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			id := groupid.Normalize(args[0])

			first, err := s.Groups.FirstLayerID(id)
			if err != nil {
				return err
			}
			last, err := s.Groups.LastLayerID(id)
			if err != nil {
				return err
			}
			members, err := s.Groups.LayersInGroup(id)
			if err != nil {
				return err
			}

			summary := groupSummary{
				ID:     id,
				Title:  groupid.Title(id),
				Parent: groupid.Parent(id),
				First:  first,
				Last:   last,
				Layers: make([]string, 0, len(members)),
			}
			for _, l := range members {
				summary.Layers = append(summary.Layers, l.ID)
			}

			if jsonOutput {
				return outputJSON(cmd.OutOrStdout(), summary)
			}

			out := cmd.OutOrStdout()
			if len(members) == 0 {
				fmt.Fprintf(out, "Group %s has no layers\n", id)
				return nil
			}
			fmt.Fprintf(out, "%s (%s)\n", summary.Title, id)
			fmt.Fprintf(out, "  first: %s\n  last:  %s\n", first, last)
			printLayersTable(out, members)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	return cmd
}

func newGroupListCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List every group id in use",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			ids, err := s.Groups.ListGroups()
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func newGroupIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "id <segment>...",
		Short: "Print the group id for a path of group names",
		Long: `Print the group id for a path of group names.

Example:
  lg group id roads labels   # $roads/labels`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), groupid.Compose(args...))
			return nil
		},
	}
}
