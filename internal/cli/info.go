// Info command summarizes a library's contents and diagnostics.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shoebox/pkg/types"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Summarize the library: schema version, counts, diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := openLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			assets, err := lib.Assets(nil)
			if err != nil {
				return err
			}

			diagCounts := make(map[string]int)
			for _, d := range lib.Diagnostics() {
				diagCounts[string(d.Kind)]++
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"schema_version": lib.Version().String(),
					"assets":         len(assets),
					"albums":         len(lib.Albums()),
					"folders":        len(lib.Folders()),
					"persons":        len(lib.Persons()),
					"keywords":       len(lib.Keywords()),
					"shared_albums":  len(lib.SharedAlbums()),
					"diagnostics":    diagCounts,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "schema version: %s\n", lib.Version())
			fmt.Fprintf(out, "%s, %s, %s\n",
				plural(len(assets), "asset"),
				plural(len(lib.Albums()), "album"),
				plural(len(lib.Folders()), "folder"))
			fmt.Fprintf(out, "%s, %s, %s\n",
				plural(len(lib.Persons()), "person"),
				plural(len(lib.Keywords()), "keyword"),
				plural(len(lib.SharedAlbums()), "shared album"))

			if len(lib.Diagnostics()) == 0 {
				fmt.Fprintln(out, "no diagnostics")
				return nil
			}
			fmt.Fprintln(out, "diagnostics:")
			for _, kind := range []types.DiagnosticKind{
				types.DiagCorruptRow, types.DiagInvalidTimestamp,
				types.DiagAmbiguousJoinPath, types.DiagReferentialInconsistency,
				types.DiagFolderCycle,
			} {
				if n := diagCounts[string(kind)]; n > 0 {
					fmt.Fprintf(out, "  %s: %d\n", kind, n)
				}
			}
			return nil
		},
	}
}
