package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-layergroups/pkg/service"
	"github.com/mattsolo1/grove-layergroups/pkg/style"
)

func NewImportCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "import <style-file>",
		Short: "Append the layers of a style document to the store",
		Long: `Append the layers of a YAML or JSON style document to the store, keeping
any group tags already recorded in their metadata.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			n, err := s.Import(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d layer(s)\n", n)
			return nil
		},
	}
}

func NewExportCmd(svc **service.Service) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the layer store as a style document",
		Long: `Write the current layers, in render order, as a style document.
The format follows the file extension (.json or YAML). Without a file the
YAML document is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			doc, err := s.Export(path, name)
			if err != nil {
				return err
			}
			if path != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d layer(s) to %s\n", len(doc.Layers), path)
				return nil
			}

			data, err := style.Encode(doc, style.FormatYAML)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Style name to record in the document")
	return cmd
}
