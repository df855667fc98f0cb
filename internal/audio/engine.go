package audio

import (
	"io"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
)

// Engine is a Player backed by a pipe to a system audio tool.
// After Start it either plays through the backend or stays silent.
type Engine struct {
	cfg    Config
	logger *log.Logger

	cacheMu sync.Mutex
	cache   [soundCount][]float64
	music   []float64

	cmd   *exec.Cmd
	stdin io.WriteCloser
	mixer *mixer

	running atomic.Bool
	silent  atomic.Bool
	muted   atomic.Bool
	wg      sync.WaitGroup
}

// NewEngine creates a stopped engine. Zero volumes and rates in cfg fall
// back to DefaultConfig.
func NewEngine(cfg Config, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	def := DefaultConfig()
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = def.SampleRate
	}
	e := &Engine{cfg: cfg, logger: logger}
	e.muted.Store(!cfg.Enabled)
	return e
}

// Start launches the backend process and mixer. A missing or failing
// backend switches the engine to silent mode and returns the cause; the
// engine remains usable either way.
func (e *Engine) Start() error {
	if !e.running.CompareAndSwap(false, true) {
		return nil
	}
	if e.muted.Load() {
		e.silent.Store(true)
		return nil
	}

	backend, err := DetectBackend(e.cfg.SampleRate)
	if err != nil {
		e.silent.Store(true)
		e.logger.Warn("audio disabled", "err", err)
		return err
	}

	cmd := exec.Command(backend.Path, backend.Args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		e.silent.Store(true)
		return err
	}
	if err := cmd.Start(); err != nil {
		stdin.Close()
		e.silent.Store(true)
		e.logger.Warn("audio backend failed to start", "backend", backend.Name, "err", err)
		return err
	}
	e.cmd = cmd
	e.stdin = stdin

	e.mixer = newMixer(stdin, e.cfg.SampleRate)
	e.mixer.start()

	e.wg.Add(2)
	go e.watchProcess()
	go e.watchMixer()

	e.logger.Info("audio started", "backend", backend.Name, "rate", e.cfg.SampleRate)
	return nil
}

func (e *Engine) watchProcess() {
	defer e.wg.Done()
	if err := e.cmd.Wait(); err != nil && e.running.Load() {
		e.silent.Store(true)
	}
}

func (e *Engine) watchMixer() {
	defer e.wg.Done()
	select {
	case err := <-e.mixer.errors():
		e.silent.Store(true)
		e.logger.Warn("audio output lost", "err", err)
	case <-e.mixer.stopChan:
	}
}

// Stop terminates the backend. It is safe to call more than once.
func (e *Engine) Stop() {
	if !e.running.CompareAndSwap(true, false) {
		return
	}
	if e.mixer != nil {
		e.mixer.stop()
	}
	if e.stdin != nil {
		e.stdin.Close()
	}
	if e.cmd != nil && e.cmd.Process != nil {
		e.cmd.Process.Kill()
	}
	e.wg.Wait()
}

// Enabled reports whether sounds currently reach a backend.
func (e *Engine) Enabled() bool {
	return e.running.Load() && !e.silent.Load() && !e.muted.Load() && e.mixer != nil
}

// SetMuted toggles output without stopping the backend.
func (e *Engine) SetMuted(m bool) {
	e.muted.Store(m)
	if m && e.mixer != nil {
		e.mixer.setMusic(nil, 0)
	}
}

func (e *Engine) PlaySound(s Sound) {
	if !e.Enabled() {
		return
	}
	e.mixer.play(e.buffer(s), e.cfg.MasterVolume*e.cfg.SfxVolume)
}

func (e *Engine) StartMusic() {
	if !e.Enabled() {
		return
	}
	e.cacheMu.Lock()
	if e.music == nil {
		e.music = renderMono(melody(beep.SampleRate(e.cfg.SampleRate)))
	}
	buf := e.music
	e.cacheMu.Unlock()
	e.mixer.setMusic(buf, e.cfg.MasterVolume*e.cfg.MusicVolume)
}

func (e *Engine) StopMusic() {
	if e.mixer != nil {
		e.mixer.setMusic(nil, 0)
	}
}

// buffer returns the rendered samples for s, synthesizing on first use.
func (e *Engine) buffer(s Sound) []float64 {
	if s < 0 || s >= soundCount {
		return nil
	}
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()
	if e.cache[s] == nil {
		e.cache[s] = renderMono(effect(s, beep.SampleRate(e.cfg.SampleRate)))
	}
	return e.cache[s]
}
