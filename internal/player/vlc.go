package player

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"hlsx/internal/media"
)

// VLC implements the Player interface for VLC media player.
type VLC struct{}

func (v *VLC) Name() string { return "vlc" }

func (v *VLC) Available() bool {
	_, err := exec.LookPath("vlc")
	return err == nil
}

// vlcArgs builds the VLC argument list. VLC only takes User-Agent and
// Referer; other headers are dropped.
func vlcArgs(stream *media.Stream, title string, startPos float64) []string {
	args := []string{
		stream.URL,
		"--meta-title", title,
		"--play-and-exit",
	}

	ua, referer, _ := splitHeaders(stream.Headers)
	if ua != "" {
		args = append(args, "--http-user-agent="+ua)
	}
	if referer != "" {
		args = append(args, "--http-referrer="+referer)
	}

	if startPos > 0 {
		args = append(args, "--start-time="+formatSeconds(startPos))
	}

	return args
}

// Play launches VLC. VLC doesn't have IPC position tracking like mpv,
// so we return 0 for position.
func (v *VLC) Play(stream *media.Stream, title string, startPos float64) (float64, error) {
	cmd := exec.Command("vlc", vlcArgs(stream, title, startPos)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// VLC exits non-zero on user close.
			return 0, nil
		}
		return 0, fmt.Errorf("running vlc: %w", err)
	}

	return 0, nil
}
