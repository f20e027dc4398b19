package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"hlsx/internal/hls"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <playlist-url>",
	Short: "Parse a media playlist and summarise it",
	Args:  cobra.ExactArgs(1),
	RunE:  inspectRun,
}

var flagSegments bool

func init() {
	inspectCmd.Flags().BoolVar(&flagSegments, "segments", false, "List every segment")
}

// inspectOutput is the machine-readable form of an inspected playlist.
type inspectOutput struct {
	URL             string        `json:"url" yaml:"url"`
	Master          bool          `json:"master" yaml:"master"`
	Version         *int          `json:"version,omitempty" yaml:"version,omitempty"`
	TargetDuration  *float64      `json:"target_duration,omitempty" yaml:"target_duration,omitempty"`
	MediaSequence   *int          `json:"media_sequence,omitempty" yaml:"media_sequence,omitempty"`
	SegmentCount    int           `json:"segment_count" yaml:"segment_count"`
	TotalDuration   float64       `json:"total_duration" yaml:"total_duration"`
	Discontinuities int           `json:"discontinuities" yaml:"discontinuities"`
	IsLive          bool          `json:"is_live" yaml:"is_live"`
	Segments        []hls.Segment `json:"segments,omitempty" yaml:"segments,omitempty"`
}

func inspectRun(cmd *cobra.Command, args []string) error {
	ext := newExtractor()
	text, err := ext.FetchText(cmd.Context(), args[0], nil)
	if err != nil {
		return err
	}

	p := hls.Parse(text, args[0])
	out := inspectOutput{
		URL:             args[0],
		Master:          hls.HasVariants(text),
		Version:         p.Version,
		TargetDuration:  p.TargetDuration,
		MediaSequence:   p.MediaSequence,
		SegmentCount:    len(p.Segments),
		TotalDuration:   p.TotalDuration(),
		Discontinuities: p.Discontinuities(),
		IsLive:          p.IsLive,
	}
	if flagSegments {
		out.Segments = p.Segments
	}

	return writeOutput(cmd.OutOrStdout(), flagFormat, out, func(w io.Writer) error {
		return writeInspectText(w, out)
	})
}

func writeInspectText(w io.Writer, out inspectOutput) error {
	kind := "VOD"
	switch {
	case out.Master:
		kind = "master"
	case out.IsLive:
		kind = "live"
	}

	fmt.Fprintf(w, "URL:              %s\n", out.URL)
	fmt.Fprintf(w, "Type:             %s\n", kind)
	if out.Version != nil {
		fmt.Fprintf(w, "Version:          %d\n", *out.Version)
	}
	if out.TargetDuration != nil {
		fmt.Fprintf(w, "Target duration:  %gs\n", *out.TargetDuration)
	}
	if out.MediaSequence != nil {
		fmt.Fprintf(w, "Media sequence:   %d\n", *out.MediaSequence)
	}
	fmt.Fprintf(w, "Segments:         %d\n", out.SegmentCount)
	fmt.Fprintf(w, "Total duration:   %s\n", formatDuration(out.TotalDuration))
	fmt.Fprintf(w, "Discontinuities:  %d\n", out.Discontinuities)

	for i, s := range out.Segments {
		line := fmt.Sprintf("%5d  %7.3fs  %s", i, s.Duration, s.URL)
		if s.Title != "" {
			line += "  " + s.Title
		}
		if s.Discontinuity {
			line += "  [discontinuity]"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
