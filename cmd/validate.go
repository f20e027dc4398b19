package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"hlsx/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate <playlist-url>",
	Short: "Check a playlist with a strict HLS decoder",
	Long: `Validate decodes the playlist strictly and compares the result with the
lenient parser used for playback. It exits non-zero when strict decoding
fails.`,
	Args: cobra.ExactArgs(1),
	RunE: validateRun,
}

var errValidation = errors.New("playlist failed strict validation")

func validateRun(cmd *cobra.Command, args []string) error {
	text, err := newExtractor().FetchText(cmd.Context(), args[0], nil)
	if err != nil {
		return err
	}

	report := validate.Check(text, args[0])

	err = writeOutput(cmd.OutOrStdout(), flagFormat, report, func(w io.Writer) error {
		status := "ok"
		if !report.Strict.Valid {
			status = "invalid: " + report.Strict.Error
		}
		fmt.Fprintf(w, "%s\n  strict:  %s (%s)\n", report.URL, status, report.Strict.Type)
		switch report.Lenient.Type {
		case validate.TypeMaster:
			fmt.Fprintf(w, "  lenient: master, %d variants\n", report.Lenient.Variants)
		default:
			fmt.Fprintf(w, "  lenient: media, %d segments, live=%t\n", report.Lenient.Segments, report.Lenient.IsLive)
		}
		for _, warning := range report.Warnings {
			fmt.Fprintf(w, "  warning: %s\n", warning)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if !report.Strict.Valid {
		return errValidation
	}
	return nil
}
