package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <playlist-url>",
	Short: "Print the URL of the highest-bandwidth variant",
	Long: `Resolve prints the media playlist URL of the best variant of a master
playlist. A media playlist resolves to itself, and any fetch or decode
failure falls back to printing the input URL.`,
	Args: cobra.ExactArgs(1),
	RunE: resolveRun,
}

func resolveRun(cmd *cobra.Command, args []string) error {
	best := newExtractor().ResolveBestStreamURL(cmd.Context(), args[0], nil)

	out := struct {
		URL       string `json:"url" yaml:"url"`
		StreamURL string `json:"stream_url" yaml:"stream_url"`
	}{args[0], best}

	return writeOutput(cmd.OutOrStdout(), flagFormat, out, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, best)
		return err
	})
}
