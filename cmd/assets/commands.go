package main

import (
	"fmt"
	"io/fs"
	"slices"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gogpu/assets"
)

func newExistsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "exists NAME...",
		Short: "Report whether each name resolves to an asset",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := a.lib.Root()
			missing := 0
			for _, name := range args {
				ok := root.Exists(name)
				if !ok {
					missing++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%t\n", name, ok)
			}
			if missing > 0 {
				return fmt.Errorf("%d of %d assets not found under %s", missing, len(args), root.Dir())
			}
			return nil
		},
	}
}

func newLoadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load NAME...",
		Short: "Load each asset twice and show the shared handle",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KIND\tIDENTITY\tREFS\tSIZE")

			var held []loaded
			defer func() {
				for _, r := range held {
					r.release()
				}
			}()

			for _, name := range args {
				kind := kindOf(name)
				first, err := loadKind(a.lib, kind, name)
				if err != nil {
					return err
				}
				held = append(held, first)

				second, err := loadKind(a.lib, kind, name)
				if err != nil {
					return err
				}
				held = append(held, second)

				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", kind, second.id, second.refs, humanize.IBytes(uint64(second.size)))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			printStats(cmd, a.lib.Stats())
			return nil
		},
	}
}

func printStats(cmd *cobra.Command, stats map[string]assets.Stats) {
	kinds := make([]string, 0, len(stats))
	for k := range stats {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tENTRIES\tHITS\tMISSES\tLOADS\tFAILURES")
	var total assets.Stats
	for _, k := range kinds {
		s := stats[k]
		total = total.Add(s)
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\n", k, s.Entries, s.Hits, s.Misses, s.Loads, s.Failures)
	}
	fmt.Fprintf(tw, "total\t%d\t%d\t%d\t%d\t%d\n", total.Entries, total.Hits, total.Misses, total.Loads, total.Failures)
	_ = tw.Flush()
}

func newLsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List the assets under the root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root := a.lib.Root()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KIND\tIDENTITY\tSIZE")

			err := root.Walk(func(id assets.Identity) error {
				info, err := fs.Stat(root.FS(), string(id))
				if err != nil {
					return err
				}
				kind := kindOf(string(id))
				if kind == "" {
					kind = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", kind, id, humanize.IBytes(uint64(info.Size())))
				return nil
			})
			if err != nil {
				return fmt.Errorf("list %s: %w", root.Dir(), err)
			}
			return tw.Flush()
		},
	}
}
