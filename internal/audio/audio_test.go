package audio

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/gopxl/beep"
)

func TestEffectsRender(t *testing.T) {
	rate := beep.SampleRate(44100)
	for s := SoundMove; s < soundCount; s++ {
		t.Run(s.String(), func(t *testing.T) {
			buf := renderMono(effect(s, rate))
			if len(buf) == 0 {
				t.Fatal("rendered buffer is empty")
			}
			if len(buf) > rate.N(2e9) {
				t.Errorf("len = %d, want under two seconds", len(buf))
			}
			peak := 0.0
			for _, v := range buf {
				peak = math.Max(peak, math.Abs(v))
			}
			if peak == 0 || peak > 1.5 {
				t.Errorf("peak = %v, want in (0, 1.5]", peak)
			}
		})
	}
}

func TestMelodyLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	buf := renderMono(melody(rate))
	want := 16 * rate.N(220e6)
	if d := len(buf) - want; d < -16 || d > 16 {
		t.Errorf("len = %d, want about %d", len(buf), want)
	}
}

func TestMixerLoopsMusic(t *testing.T) {
	m := newMixer(nil, 1000)
	m.music = voice{buf: []float64{0.1, 0.2, 0.3}, volume: 1}
	m.active = []voice{{buf: []float64{0.5}, volume: 0.5}}

	buf := make([]float64, 5)
	m.mix(buf)

	want := []float64{0.35, 0.2, 0.3, 0.1, 0.2}
	for i := range want {
		if math.Abs(buf[i]-want[i]) > 1e-9 {
			t.Errorf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
	if len(m.active) != 0 {
		t.Errorf("active voices = %d, want 0", len(m.active))
	}
}

func TestFloatToBytesClips(t *testing.T) {
	out := make([]byte, 3*bytesPerFrame)
	floatToBytes([]float64{0, 5, -5}, out)

	tests := []struct {
		frame int
		want  int16
	}{
		{0, 0},
		{1, 32767},
		{2, -32767},
	}
	for _, tt := range tests {
		l := int16(binary.LittleEndian.Uint16(out[tt.frame*4:]))
		r := int16(binary.LittleEndian.Uint16(out[tt.frame*4+2:]))
		if l != r {
			t.Errorf("frame %d: left %d != right %d", tt.frame, l, r)
		}
		if tt.frame == 0 && l != tt.want {
			t.Errorf("frame %d = %d, want %d", tt.frame, l, tt.want)
		}
		if tt.frame > 0 && (l > 32767 || l < -32767 || (l > 0) != (tt.want > 0)) {
			t.Errorf("frame %d = %d, want sign of %d", tt.frame, l, tt.want)
		}
	}
}

func TestDetectBackendNone(t *testing.T) {
	old := lookPath
	defer func() { lookPath = old }()
	lookPath = func(string) (string, error) { return "", errors.New("not found") }

	if _, err := DetectBackend(44100); !errors.Is(err, ErrNoBackend) {
		t.Errorf("DetectBackend() err = %v, want ErrNoBackend", err)
	}
}

func TestDetectBackendOrder(t *testing.T) {
	old := lookPath
	defer func() { lookPath = old }()
	lookPath = func(name string) (string, error) {
		if name == "aplay" || name == "play" {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}

	b, err := DetectBackend(22050)
	if err != nil {
		t.Fatalf("DetectBackend() err = %v", err)
	}
	if b.Name != "aplay" || b.Path != "/usr/bin/aplay" {
		t.Errorf("backend = %s at %s, want aplay", b.Name, b.Path)
	}
}

func TestEngineSilentWhenDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	e := NewEngine(cfg, nil)
	if err := e.Start(); err != nil {
		t.Fatalf("Start() err = %v", err)
	}
	defer e.Stop()

	if e.Enabled() {
		t.Error("Enabled() = true for a disabled engine")
	}
	e.PlaySound(SoundPush)
	e.StartMusic()
	e.StopMusic()
}

func TestSilentPlayer(t *testing.T) {
	var p Player = Silent{}
	p.PlaySound(SoundComplete)
	p.StartMusic()
	p.StopMusic()
}
