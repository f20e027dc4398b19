// Package download saves a resolved stream to disk with ffmpeg.
// Output paths are validated against directory traversal.
package download

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"hlsx/internal/httputil"
	"hlsx/internal/media"
)

// Download fetches a stream to a local file using ffmpeg and returns the
// path written.
func Download(ctx context.Context, stream *media.Stream, title string, outputDir string) (string, error) {
	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}

	outputPath, err := OutputPath(outputDir, title)
	if err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, ffmpegPath, ffmpegArgs(stream, title, outputPath)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	fmt.Fprintf(os.Stderr, "Downloading to: %s\n", outputPath)

	if err := cmd.Run(); err != nil {
		os.Remove(outputPath)
		return "", fmt.Errorf("ffmpeg download failed: %w", err)
	}

	return outputPath, nil
}

// OutputPath creates outputDir if needed and returns the file path for title.
func OutputPath(outputDir, title string) (string, error) {
	absDir, err := filepath.Abs(outputDir)
	if err != nil {
		return "", fmt.Errorf("resolving output directory: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	filename := httputil.SanitizeFilename(title) + ".mkv"
	outputPath, err := httputil.SafeDownloadPath(absDir, filename)
	if err != nil {
		return "", fmt.Errorf("invalid output path: %w", err)
	}
	return outputPath, nil
}

// ffmpegArgs builds the argument list. Input options must precede -i.
func ffmpegArgs(stream *media.Stream, title, outputPath string) []string {
	args := []string{"-y"}

	var extra []string
	for k, v := range stream.Headers {
		switch {
		case strings.EqualFold(k, "User-Agent"):
			args = append(args, "-user_agent", v)
		case strings.EqualFold(k, "Referer"):
			args = append(args, "-referer", v)
		default:
			extra = append(extra, k+": "+v+"\r\n")
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		args = append(args, "-headers", strings.Join(extra, ""))
	}

	args = append(args,
		"-i", stream.URL,
		"-c", "copy",
		"-metadata", "title="+title,
		outputPath,
	)
	return args
}
