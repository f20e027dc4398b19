package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"hlsx/internal/history"
	"hlsx/internal/ui"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Resume from play history",
	Args:  cobra.NoArgs,
	RunE:  historyRun,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the play history, most recent first",
	Args:  cobra.NoArgs,
	RunE:  historyListRun,
}

var historyRemoveCmd = &cobra.Command{
	Use:   "remove <playlist-url>",
	Short: "Remove an entry from the play history",
	Args:  cobra.ExactArgs(1),
	RunE:  historyRemoveRun,
}

var flagYes bool

// confirm asks before destructive history changes.
var confirm = ui.Confirm

func init() {
	historyRemoveCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Remove without asking")

	historyCmd.Flags().BoolVarP(&flagDownload, "download", "d", false, "Download instead of playing")
	historyCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Download directory (default: download_dir from config)")
	historyCmd.Flags().BoolVarP(&flagSelect, "select", "s", false, "Pick the quality interactively")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyRemoveCmd)
}

func historyRun(cmd *cobra.Command, args []string) error {
	store, err := history.OpenDefault()
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	entries, err := store.Load(cmd.Context())
	store.Close()
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No history entries found.")
		return nil
	}

	items := history.FormatForDisplay(entries)
	idx, err := ui.Select("History", items)
	if err != nil {
		return err
	}

	selected := entries[idx]
	debugf("resuming: %s (%s) at %.0fs", selected.Title, selected.URL, selected.Position)

	// Re-resolve from the original playlist; variant URLs are often tokenized.
	return playFlow(cmd.Context(), cmd.OutOrStdout(), selected.URL, selected.Title, selected.Position)
}

func historyListRun(cmd *cobra.Command, args []string) error {
	store, err := history.OpenDefault()
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	entries, err := store.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	return writeOutput(cmd.OutOrStdout(), flagFormat, entries, func(w io.Writer) error {
		for i, item := range history.FormatForDisplay(entries) {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", item, entries[i].URL); err != nil {
				return err
			}
		}
		return nil
	})
}

func historyRemoveRun(cmd *cobra.Command, args []string) error {
	store, err := history.OpenDefault()
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	entry, ok, err := store.Find(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no history entry for %s", args[0])
	}

	if !flagYes {
		yes, err := confirm(fmt.Sprintf("Remove %q from history?", entry.Title))
		if err != nil {
			return err
		}
		if !yes {
			return nil
		}
	}

	return store.Remove(cmd.Context(), args[0])
}
