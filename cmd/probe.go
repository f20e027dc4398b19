package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hlsx/internal/probe"
	"hlsx/internal/ui"
)

var probeCmd = &cobra.Command{
	Use:   "probe <playlist-url>",
	Short: "Fetch every variant of a master playlist and summarise each",
	Args:  cobra.ExactArgs(1),
	RunE:  probeRun,
}

var flagConcurrency int

func init() {
	probeCmd.Flags().IntVarP(&flagConcurrency, "concurrency", "j", probe.DefaultConcurrency, "Variants fetched at once")
}

func probeRun(cmd *cobra.Command, args []string) error {
	ext := newExtractor()
	qualities, err := ext.Qualities(cmd.Context(), args[0], nil)
	if err != nil {
		return err
	}

	prober := probe.New(ext, flagConcurrency)
	if ui.IsTerminal(os.Stderr) {
		prober.WithProgress(os.Stderr)
	}
	results := prober.Probe(cmd.Context(), qualities, nil)

	return writeOutput(cmd.OutOrStdout(), flagFormat, results, func(w io.Writer) error {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "QUALITY\tSEGMENTS\tDURATION\tTYPE\tURL")
		for _, r := range results {
			if r.Error != "" {
				fmt.Fprintf(tw, "%s\t-\t-\terror: %s\t%s\n", r.Quality.Title, r.Error, r.Quality.URL)
				continue
			}
			kind := "vod"
			if r.IsLive {
				kind = "live"
			}
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", r.Quality.Title, r.Segments, formatDuration(r.Duration), kind, r.Quality.URL)
		}
		return tw.Flush()
	})
}
