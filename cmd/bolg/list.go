package main

import (
	"bolg/internal/index"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var listBuilds int

var listCmd = &cobra.Command{
	Use:   "list [slug]",
	Short: "Show the entries recorded by the last build",
	Long: `Without arguments, list prints every entry of the last build in index
order. Given a slug it prints that entry's record; with --builds it prints
the most recent builds instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.IndexPath == "" {
			return errors.New("indexPath is not configured")
		}

		out := cmd.OutOrStdout()
		if _, err := os.Stat(cfg.IndexPath); os.IsNotExist(err) {
			fmt.Fprintln(out, "No builds recorded.")
			return nil
		}

		st, err := index.Open(index.OpenOptions{Path: cfg.IndexPath, ReadOnly: true})
		if err != nil {
			return fmt.Errorf("open index %s: %w", cfg.IndexPath, err)
		}
		defer st.Close()

		switch {
		case len(args) == 1:
			return printEntry(out, st, args[0])
		case listBuilds > 0:
			return printBuilds(out, st, listBuilds)
		default:
			return printListing(out, st)
		}
	},
}

func printListing(out io.Writer, st *index.Store) error {
	last, err := st.LastBuild()
	if errors.Is(err, index.ErrNotFound) {
		fmt.Fprintln(out, "No builds recorded.")
		return nil
	}
	if err != nil {
		return err
	}
	entries, err := st.List()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Build %s at %s (%d entries)\n",
		last.ID, last.FinishedAt.Format(time.DateTime), last.Entries)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SLUG\tTITLE\tOUTPUT")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Slug, e.Title, e.OutPath)
	}
	return w.Flush()
}

func printEntry(out io.Writer, st *index.Store, slug string) error {
	e, err := st.Get(slug)
	if errors.Is(err, index.ErrNotFound) {
		return fmt.Errorf("no entry %q in the last build", slug)
	}
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Slug:\t%s\n", e.Slug)
	fmt.Fprintf(w, "Title:\t%s\n", e.Title)
	fmt.Fprintf(w, "Output:\t%s\n", e.OutPath)
	fmt.Fprintf(w, "Link:\t%s\n", e.Href)
	fmt.Fprintf(w, "Source:\t%s\n", e.SourcePath)
	if !e.Timestamp.IsZero() {
		fmt.Fprintf(w, "Timestamp:\t%s\n", e.Timestamp.Format(time.RFC3339))
	}
	fmt.Fprintf(w, "Source hash:\t%s\n", e.SourceHash)
	fmt.Fprintf(w, "Output hash:\t%s\n", e.OutputHash)
	return w.Flush()
}

func printBuilds(out io.Writer, st *index.Store, limit int) error {
	builds, err := st.Builds(limit)
	if err != nil {
		return err
	}
	if len(builds) == 0 {
		fmt.Fprintln(out, "No builds recorded.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFINISHED\tENTRIES\tELAPSED")
	for _, b := range builds {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			b.ID, b.FinishedAt.Format(time.DateTime), b.Entries, b.Elapsed.Round(time.Millisecond))
	}
	return w.Flush()
}

func init() {
	listCmd.Flags().IntVar(&listBuilds, "builds", 0, "Show the N most recent builds instead of entries")
	rootCmd.AddCommand(listCmd)
}
