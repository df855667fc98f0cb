package audio

import (
	"os/exec"
	"strconv"
)

// Backend is a command that plays raw signed 16-bit little-endian stereo
// PCM read from stdin.
type Backend struct {
	Name string
	Path string
	Args []string
}

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// DetectBackend returns the first available player, in the order
// pacat, pw-cat, aplay, play (sox).
func DetectBackend(rate int) (Backend, error) {
	r := strconv.Itoa(rate)
	candidates := []Backend{
		{Name: "pacat", Args: []string{"--raw", "--format=s16le", "--rate=" + r, "--channels=2", "--latency-msec=50", "--playback"}},
		{Name: "pw-cat", Args: []string{"--playback", "--format=s16", "--rate=" + r, "--channels=2", "--latency=50ms", "-"}},
		{Name: "aplay", Args: []string{"-t", "raw", "-f", "S16_LE", "-r", r, "-c", "2", "-q"}},
		{Name: "play", Args: []string{"-t", "raw", "-e", "signed", "-b", "16", "-c", "2", "-r", r, "-", "-d", "-q"}},
	}
	for _, b := range candidates {
		if path, err := lookPath(b.Name); err == nil {
			b.Path = path
			return b, nil
		}
	}
	return Backend{}, ErrNoBackend
}
