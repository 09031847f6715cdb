package cli

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/idelchi/filebyte/internal/integration"
)

// options collects every flag of the root command.
type options struct {
	path         string
	sizeUnit     string
	showSize     bool
	tree         bool
	properties   bool
	duplicates   bool
	recursive    bool
	search       string
	excluding    string
	sortBy       string
	export       string
	exportFormat string
	diskArg      string
	file         string
	directory    string
	mimeMode     string
	noColor      bool
	depth        int
	minSizeStr   string
	minSize      int64
	debug        bool
	initScript   bool
}

// NewCommand builds the filebyte root command.
func NewCommand(version string) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:     "filebyte [flags] [path]",
		Short:   "List files and directories with sizes",
		Version: version,
		Long: heredoc.Doc(`
			filebyte inspects files and directories: it lists entries with
			sizes, permissions and timestamps, filters and sorts them,
			finds duplicate files, renders directory trees and exports the
			results to JSON or CSV.

			The positional path defaults to the current directory. Listing
			is shallow unless --recursive is given; --tree, --properties
			and --duplicates always scan the whole subtree.

			Recoverable errors (unreadable entries or subtrees) never abort
			a scan; they are reported as skipped entries at the end.
		`),
		Example: heredoc.Doc(`
			# Shallow listing with auto-scaled sizes
			filebyte -s .

			# Largest-first recursive listing, excluding build output
			filebyte -r -s --sort-by size -x '.*/target/.*' .

			# Find duplicate files and export the full listing
			filebyte --duplicates --export report.json ~/Downloads

			# Show mounted disks
			filebyte --disk list
		`),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.initScript {
				rendered, err := integration.Render()
				if err != nil {
					return fmt.Errorf("rendering integration script: %w", err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), rendered)

				return nil
			}

			if len(args) > 0 {
				opts.path = args[0]
			} else {
				opts.path = "."
			}

			// -s without a value means "auto"; its presence turns size
			// display on.
			opts.showSize = cmd.Flags().Changed("size")

			if opts.depth < 0 {
				return errors.New("depth cannot be negative")
			}

			if opts.minSizeStr != "" {
				size, err := humanize.ParseBytes(opts.minSizeStr)
				if err != nil {
					return fmt.Errorf("invalid min-size: %w", err)
				}

				opts.minSize = int64(size) //nolint:gosec // Size conversion from humanize is safe
			}

			return run(opts)
		},
	}

	flags := cmd.Flags()

	flags.StringVarP(&opts.sizeUnit, "size", "s", "auto",
		"Show sizes in the given unit (auto, b/bytes, kb, mb, gb, tb)")
	flags.Lookup("size").NoOptDefVal = "auto"
	flags.BoolVarP(&opts.tree, "tree", "t", false, "Show directory tree")
	flags.BoolVarP(&opts.properties, "properties", "p", false, "Show detailed file properties and analysis")
	flags.BoolVar(&opts.duplicates, "duplicates", false, "Find duplicate files")
	flags.BoolVarP(&opts.recursive, "recursive", "r", false, "Enable recursive listing and analysis")
	flags.StringVarP(&opts.search, "search", "e", "", "Only include entries whose name matches this regex")
	flags.StringVarP(&opts.excluding, "excluding", "x", "", "Exclude entries whose path matches this regex")
	flags.StringVar(&opts.sortBy, "sort-by", "name", "Sort entries by: name, size or date")
	flags.StringVar(&opts.export, "export", "", "Export results to a .json or .csv file")
	flags.StringVar(&opts.exportFormat, "export-format", "", "Export format override: json or csv")
	flags.StringVarP(&opts.diskArg, "disk", "m", "", "Disk operations: 'list' for all disks, or a disk name for info")
	flags.StringVarP(&opts.file, "file", "f", "", "Analyze a specific file")
	flags.StringVarP(&opts.directory, "directory", "d", "", "Analyze a directory as a whole (not its contents)")
	flags.StringVar(&opts.mimeMode, "mime", "ext", "MIME detection: 'ext' (extension table) or 'deep' (content sniffing)")
	flags.IntVar(&opts.depth, "depth", 0, "Maximum traversal depth (0=unlimited)")
	flags.StringVar(&opts.minSizeStr, "min-size", "", "Minimum file size (e.g., 1KB)")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug output")
	flags.BoolVarP(&opts.initScript, "init", "i", false, "Output init script for shell usage")

	flags.SortFlags = false

	return cmd
}
