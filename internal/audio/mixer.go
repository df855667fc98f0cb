package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync/atomic"
	"time"
)

const (
	mixInterval   = 20 * time.Millisecond
	bytesPerFrame = 4 // two int16 channels
)

type voice struct {
	buf    []float64
	pos    int
	volume float64
}

type musicRequest struct {
	buf    []float64
	volume float64
}

// mixer owns the output pipe. Everything except the request channels is
// touched only by the loop goroutine.
type mixer struct {
	out        io.Writer
	samples    int
	playQueue  chan voice
	musicQueue chan musicRequest
	stopChan   chan struct{}
	errChan    chan error
	stopped    atomic.Bool

	active []voice
	music  voice
}

func newMixer(out io.Writer, sampleRate int) *mixer {
	return &mixer{
		out:        out,
		samples:    sampleRate * int(mixInterval/time.Millisecond) / 1000,
		playQueue:  make(chan voice, 32),
		musicQueue: make(chan musicRequest, 4),
		stopChan:   make(chan struct{}),
		errChan:    make(chan error, 1),
		active:     make([]voice, 0, 8),
	}
}

func (m *mixer) start() {
	go m.loop()
}

func (m *mixer) stop() {
	if m.stopped.CompareAndSwap(false, true) {
		close(m.stopChan)
	}
}

// play queues a buffer; it is dropped when the queue is full.
func (m *mixer) play(buf []float64, volume float64) {
	if m.stopped.Load() || len(buf) == 0 {
		return
	}
	select {
	case m.playQueue <- voice{buf: buf, volume: volume}:
	default:
	}
}

// setMusic replaces the looping track. A nil buffer stops it.
func (m *mixer) setMusic(buf []float64, volume float64) {
	if m.stopped.Load() {
		return
	}
	select {
	case m.musicQueue <- musicRequest{buf: buf, volume: volume}:
	default:
	}
}

func (m *mixer) errors() <-chan error {
	return m.errChan
}

func (m *mixer) loop() {
	ticker := time.NewTicker(mixInterval)
	defer ticker.Stop()

	mixBuf := make([]float64, m.samples)
	outBytes := make([]byte, m.samples*bytesPerFrame)

	for {
		select {
		case <-m.stopChan:
			return
		case v := <-m.playQueue:
			m.active = append(m.active, v)
		case req := <-m.musicQueue:
			m.music = voice{buf: req.buf, volume: req.volume}
		case <-ticker.C:
			m.mix(mixBuf)
			floatToBytes(mixBuf, outBytes)
			if _, err := m.out.Write(outBytes); err != nil {
				select {
				case m.errChan <- fmt.Errorf("%w: %v", ErrPipeClosed, err):
				default:
				}
				return
			}
		}
	}
}

// mix fills buf with the active voices and one slice of the music loop.
func (m *mixer) mix(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}

	remaining := m.active[:0]
	for i := range m.active {
		v := &m.active[i]
		for j := 0; j < len(buf) && v.pos < len(v.buf); j++ {
			buf[j] += v.buf[v.pos] * v.volume
			v.pos++
		}
		if v.pos < len(v.buf) {
			remaining = append(remaining, *v)
		}
	}
	m.active = remaining

	if n := len(m.music.buf); n > 0 {
		for j := range buf {
			buf[j] += m.music.buf[m.music.pos] * m.music.volume
			m.music.pos = (m.music.pos + 1) % n
		}
	}
}

// floatToBytes writes mono samples as interleaved stereo int16 LE with a
// soft knee above 0.8.
func floatToBytes(in []float64, out []byte) {
	for i, v := range in {
		if v > 0.8 {
			v = 0.8 + 0.2*(1-1/(1+(v-0.8)*5))
		} else if v < -0.8 {
			v = -0.8 - 0.2*(1-1/(1+(-v-0.8)*5))
		}
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}

		s := uint16(int16(v * 32767))
		binary.LittleEndian.PutUint16(out[i*4:], s)
		binary.LittleEndian.PutUint16(out[i*4+2:], s)
	}
}
