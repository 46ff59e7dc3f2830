// Persons command lists person clusters and their face counts.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPersonsCmd() *cobra.Command {
	var withUnknown bool

	cmd := &cobra.Command{
		Use:   "persons",
		Short: "List named person clusters",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := openLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			persons := lib.Persons()
			if !withUnknown {
				named := persons[:0:0]
				for _, p := range persons {
					if !p.Unknown() {
						named = append(named, p)
					}
				}
				persons = named
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), persons)
			}

			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "NAME\tUUID\tFACES\tFAVORITE")
			for _, p := range persons {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
					p.Name, p.UUID, p.FaceCount, yesNo(p.Favorite))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&withUnknown, "all", false, "include unnamed clusters")
	return cmd
}
