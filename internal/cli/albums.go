// Albums command lists albums with their folder path and member counts.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAlbumsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "albums",
		Short: "List albums with folder paths and member counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := openLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			summary := lib.AlbumSummary()

			if flags.jsonMode {
				type albumRow struct {
					UUID       string   `json:"uuid"`
					Title      string   `json:"title"`
					FolderPath []string `json:"folder_path,omitempty"`
					Shared     bool     `json:"shared"`
					Assets     int      `json:"assets"`
				}
				rows := make([]albumRow, 0, len(lib.Albums()))
				for _, a := range lib.Albums() {
					rows = append(rows, albumRow{
						UUID:       a.UUID,
						Title:      a.Title,
						FolderPath: a.FolderPath,
						Shared:     a.Shared(),
						Assets:     summary[a.Title],
					})
				}
				return printJSON(cmd.OutOrStdout(), rows)
			}

			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "TITLE\tFOLDER\tSHARED\tASSETS")
			for _, a := range lib.Albums() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
					a.Title, strings.Join(a.FolderPath, "/"),
					yesNo(a.Shared()), summary[a.Title])
			}
			return w.Flush()
		},
	}
}
