package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"hlsx/internal/media"
)

// MPV implements the Player interface for mpv.
// Position is tracked over IPC via a Unix socket at a randomized temp path.
type MPV struct{}

func (m *MPV) Name() string { return "mpv" }

func (m *MPV) Available() bool {
	_, err := exec.LookPath("mpv")
	return err == nil
}

// Play launches mpv with the given stream and returns the final playback position.
func (m *MPV) Play(stream *media.Stream, title string, startPos float64) (float64, error) {
	socketDir, err := os.MkdirTemp("", "hlsx-mpv-*")
	if err != nil {
		return 0, fmt.Errorf("creating temp dir for mpv socket: %w", err)
	}
	defer os.RemoveAll(socketDir)

	socketPath := filepath.Join(socketDir, "socket")

	args := mpvArgs(stream, title, startPos)
	args = append(args, "--input-ipc-server="+socketPath, "--really-quiet")

	cmd := exec.Command("mpv", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("starting mpv: %w", err)
	}

	pos := make(chan float64, 1)
	go func() {
		pos <- m.trackPosition(socketPath)
	}()

	waitErr := cmd.Wait()

	// The socket closes when mpv exits, which ends tracking.
	var lastPos float64
	select {
	case lastPos = <-pos:
	case <-time.After(2 * time.Second):
	}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		return lastPos, fmt.Errorf("running mpv: %w", waitErr)
	}
	// mpv exits non-zero on user quit, which is normal.
	return lastPos, nil
}

// trackPosition polls mpv's IPC socket for the current playback position.
func (m *MPV) trackPosition(socketPath string) float64 {
	var lastPos float64

	for i := 0; i < 50; i++ {
		if _, err := os.Stat(socketPath); err == nil {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return 0
	}
	defer conn.Close()

	cmd := map[string]any{
		"command":    []any{"observe_property", 1, "time-pos"},
		"request_id": 100,
	}
	data, _ := json.Marshal(cmd)
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		return 0
	}

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		lastPos = positionFromEvent(scanner.Bytes(), lastPos)
	}

	return lastPos
}

// positionFromEvent returns the time-pos carried by an mpv IPC event line,
// or last if the line is not a time-pos update.
func positionFromEvent(line []byte, last float64) float64 {
	var event struct {
		Event string  `json:"event"`
		Name  string  `json:"name"`
		Data  float64 `json:"data"`
	}
	if err := json.Unmarshal(line, &event); err != nil {
		return last
	}
	if event.Name == "time-pos" && event.Data > 0 {
		return event.Data
	}
	return last
}

// formatSeconds formats a start offset as whole seconds.
func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 0, 64)
}
