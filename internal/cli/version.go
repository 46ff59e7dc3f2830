package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shoebox/pkg/shoebox"
)

const modulePath = "github.com/mesh-intelligence/shoebox"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the shoebox version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "shoebox v%s\nmodule: %s\n", shoebox.Version, modulePath)
			return nil
		},
	}
}
