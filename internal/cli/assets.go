// Assets command: filter flags build a query filter and list the matches.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shoebox/pkg/types"
)

// assetFlags holds the filter flag values for one invocation.
type assetFlags struct {
	uuids    []string
	keywords []string
	persons  []string
	albums   []string
	names    []string

	favorite   bool
	hidden     bool
	trashed    bool
	burst      bool
	live       bool
	screenshot bool
	raw        bool
	portrait   bool
	shared     bool

	from string
	to   string
	sort string
}

func newAssetsCmd() *cobra.Command {
	var af assetFlags

	cmd := &cobra.Command{
		Use:   "assets",
		Short: "List assets matching the given filters",
		Long: `Assets lists the library's photos and videos. Values given for one
flag are alternatives; distinct flags must all match.

Example:
  shoebox assets --keyword Beach --keyword City
  shoebox assets --person "Maria Soto" --favorite
  shoebox assets --name "IMG_1*.HEIC" --from 2020-01-01 --sort date`,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := af.buildFilter(cmd)
			if err != nil {
				return err
			}
			key, err := parseSortKey(af.sort)
			if err != nil {
				return err
			}

			lib, err := openLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			assets, err := lib.AssetsSorted(filter, key)
			if err != nil {
				return err
			}
			return printAssets(cmd, assets)
		},
	}

	cmd.Flags().StringArrayVar(&af.uuids, "uuid", nil, "asset UUID (repeatable)")
	cmd.Flags().StringArrayVar(&af.keywords, "keyword", nil, "keyword title (repeatable)")
	cmd.Flags().StringArrayVar(&af.persons, "person", nil, "person name (repeatable)")
	cmd.Flags().StringArrayVar(&af.albums, "album", nil, "album title (repeatable)")
	cmd.Flags().StringArrayVar(&af.names, "name", nil, "filename glob pattern (repeatable)")

	cmd.Flags().BoolVar(&af.favorite, "favorite", false, "only favorites (--favorite=false for non-favorites)")
	cmd.Flags().BoolVar(&af.hidden, "hidden", false, "only hidden assets")
	cmd.Flags().BoolVar(&af.trashed, "trashed", false, "only trashed assets")
	cmd.Flags().BoolVar(&af.burst, "burst", false, "only burst members")
	cmd.Flags().BoolVar(&af.live, "live", false, "only live photos")
	cmd.Flags().BoolVar(&af.screenshot, "screenshot", false, "only screenshots")
	cmd.Flags().BoolVar(&af.raw, "raw", false, "only raw images")
	cmd.Flags().BoolVar(&af.portrait, "portrait", false, "only portrait-mode photos")
	cmd.Flags().BoolVar(&af.shared, "shared", false, "only shared assets")

	cmd.Flags().StringVar(&af.from, "from", "", "creation date lower bound (inclusive, YYYY-MM-DD)")
	cmd.Flags().StringVar(&af.to, "to", "", "creation date upper bound (exclusive, YYYY-MM-DD)")
	cmd.Flags().StringVar(&af.sort, "sort", "", "result order: filename or date (default: load order)")

	return cmd
}

// buildFilter translates the flag values to a query filter. Boolean flags
// only constrain when explicitly set, so --hidden=false is a real filter
// while an omitted --hidden matches everything.
func (af *assetFlags) buildFilter(cmd *cobra.Command) (*types.Filter, error) {
	f := &types.Filter{
		UUIDs:        af.uuids,
		Keywords:     af.keywords,
		Persons:      af.persons,
		Albums:       af.albums,
		NamePatterns: af.names,
	}

	boolFlag := func(name string, value bool) *bool {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		return &value
	}
	f.Favorite = boolFlag("favorite", af.favorite)
	f.Hidden = boolFlag("hidden", af.hidden)
	f.Trashed = boolFlag("trashed", af.trashed)
	f.Burst = boolFlag("burst", af.burst)
	f.Live = boolFlag("live", af.live)
	f.Screenshot = boolFlag("screenshot", af.screenshot)
	f.Raw = boolFlag("raw", af.raw)
	f.Portrait = boolFlag("portrait", af.portrait)
	f.Shared = boolFlag("shared", af.shared)

	var err error
	if f.FromDate, err = parseDateFlag("from", af.from); err != nil {
		return nil, err
	}
	if f.ToDate, err = parseDateFlag("to", af.to); err != nil {
		return nil, err
	}
	return f, nil
}

func parseDateFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s date %q (want YYYY-MM-DD)", name, value)
	}
	return &t, nil
}

func parseSortKey(value string) (types.SortKey, error) {
	switch value {
	case "":
		return types.SortNone, nil
	case "filename":
		return types.SortFilename, nil
	case "date":
		return types.SortDate, nil
	default:
		return types.SortNone, fmt.Errorf("invalid --sort %q (want filename or date)", value)
	}
}

func printAssets(cmd *cobra.Command, assets []*types.Asset) error {
	out := cmd.OutOrStdout()

	if flags.jsonMode {
		return printJSON(out, assets)
	}

	w := newTable(out)
	fmt.Fprintln(w, "UUID\tFILENAME\tDATE\tFAVORITE\tTRASHED")
	for _, a := range assets {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			a.UUID, a.Filename, a.Date.Format("2006-01-02 15:04:05"),
			yesNo(a.Favorite), yesNo(a.Trashed))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out, plural(len(assets), "asset"))
	return nil
}
