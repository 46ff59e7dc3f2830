// Keywords command lists keyword titles and usage counts.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newKeywordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keywords",
		Short: "List keywords with the number of tagged assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := openLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			if flags.jsonMode {
				counts := make(map[string]int)
				for _, title := range lib.Keywords() {
					counts[title] = len(lib.KeywordAssets(title))
				}
				return printJSON(cmd.OutOrStdout(), counts)
			}

			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "KEYWORD\tASSETS")
			for _, title := range lib.Keywords() {
				fmt.Fprintf(w, "%s\t%d\n", title, len(lib.KeywordAssets(title)))
			}
			return w.Flush()
		},
	}
}
