package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"hlsx/internal/ui"
)

var qualitiesCmd = &cobra.Command{
	Use:     "qualities <playlist-url>",
	Aliases: []string{"q", "variants"},
	Short:   "List the quality variants of a playlist, best first",
	Args:    cobra.ExactArgs(1),
	RunE:    qualitiesRun,
}

func qualitiesRun(cmd *cobra.Command, args []string) error {
	qualities, err := newExtractor().Qualities(cmd.Context(), args[0], nil)
	if err != nil {
		return err
	}

	return writeOutput(cmd.OutOrStdout(), flagFormat, qualities, func(w io.Writer) error {
		_, err := io.WriteString(w, ui.RenderQualities(qualities, ui.IsTerminal(os.Stdout)))
		return err
	})
}
