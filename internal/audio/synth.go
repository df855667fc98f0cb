package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType selects an oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
)

// tone is an endless oscillator; bound it with beep.Take.
type tone struct {
	freq  float64
	phase float64
	wave  WaveType
	rate  beep.SampleRate
}

func newTone(freq float64, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, wave: wave, rate: rate}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		var v float64
		switch t.wave {
		case WaveSquare:
			if t.phase < 0.5 {
				v = 1
			} else {
				v = -1
			}
		case WaveTriangle:
			v = 4*math.Abs(t.phase-0.5) - 1
		default:
			v = math.Sin(2 * math.Pi * t.phase)
		}
		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// envelope applies a linear attack and release over a fixed length.
type envelope struct {
	streamer beep.Streamer
	pos      int
	total    int
	attack   int
	release  int
}

func newEnvelope(s beep.Streamer, length, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: beep.Take(rate.N(length), s),
		total:    rate.N(length),
		attack:   rate.N(attack),
		release:  rate.N(release),
	}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		if rs := e.total - e.release; e.release > 0 && e.pos >= rs {
			vol = math.Max(float64(e.total-e.pos)/float64(e.release), 0)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// note is one enveloped tone.
func note(freq float64, length time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	release := length / 2
	return newEnvelope(newTone(freq, wave, rate), length, 5*time.Millisecond, release, rate)
}

// gain scales s linearly; zero or less is silent.
func gain(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Note frequencies in Hz.
const (
	noteA3 = 220.00
	noteC4 = 261.63
	noteE4 = 329.63
	noteG4 = 392.00
	noteA4 = 440.00
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
	noteC6 = 1046.50
)

// effect builds the streamer for one sound effect at unity volume.
func effect(s Sound, rate beep.SampleRate) beep.Streamer {
	switch s {
	case SoundMove:
		return gain(note(noteA3, 40*time.Millisecond, WaveTriangle, rate), 0.4)
	case SoundPush:
		return beep.Mix(
			gain(note(140, 90*time.Millisecond, WaveSquare, rate), 0.3),
			gain(note(70, 90*time.Millisecond, WaveSine, rate), 0.5),
		)
	case SoundMenuSelect:
		return gain(note(noteE5, 60*time.Millisecond, WaveSine, rate), 0.6)
	case SoundComplete:
		arp := beep.Seq(
			note(noteC5, 90*time.Millisecond, WaveSquare, rate),
			note(noteE5, 90*time.Millisecond, WaveSquare, rate),
			note(noteG5, 90*time.Millisecond, WaveSquare, rate),
		)
		chord := beep.Mix(
			note(noteC5, 400*time.Millisecond, WaveSine, rate),
			note(noteE5, 400*time.Millisecond, WaveSine, rate),
			note(noteC6, 400*time.Millisecond, WaveSine, rate),
		)
		return beep.Seq(gain(arp, 0.3), gain(chord, 0.25))
	default:
		return nil
	}
}

// melody is one pass of the menu loop.
func melody(rate beep.SampleRate) beep.Streamer {
	beat := 220 * time.Millisecond
	line := []float64{noteC4, noteE4, noteG4, noteE4, noteA3, noteC4, noteE4, noteC4,
		noteA3, noteC4, noteE4, noteA4, noteG4, noteE4, noteC4, noteE4}

	notes := make([]beep.Streamer, 0, len(line))
	for _, f := range line {
		notes = append(notes, beep.Mix(
			gain(note(f, beat, WaveTriangle, rate), 0.35),
			gain(note(f/2, beat, WaveSine, rate), 0.25),
		))
	}
	return beep.Seq(notes...)
}

// renderMono drains s into mono samples.
func renderMono(s beep.Streamer) []float64 {
	if s == nil {
		return nil
	}
	var out []float64
	chunk := make([][2]float64, 512)
	for {
		n, ok := s.Stream(chunk)
		for i := 0; i < n; i++ {
			out = append(out, (chunk[i][0]+chunk[i][1])/2)
		}
		if !ok || n == 0 {
			return out
		}
	}
}
