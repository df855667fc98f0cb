package config

// Flags holds command-line overrides. Zero values leave the loaded
// configuration untouched.
type Flags struct {
	Fullscreen   bool
	NoVSync      bool
	NoMSAA       bool
	ShowFPS      bool
	NoAnimations bool
	ShowGrid     bool
	Mute         bool
	Watch        bool
	Resolution   string
	LevelsDir    string
	DBPath       string
	LogLevel     string
	LogFile      string
}

// ApplyFlags overlays f on c.
func (c *Config) ApplyFlags(f Flags) error {
	if f.Fullscreen {
		c.Display.Fullscreen = true
	}
	if f.NoVSync {
		c.Display.VSync = false
	}
	if f.NoMSAA {
		c.Display.MSAA = false
	}
	if f.ShowFPS {
		c.Display.ShowFPS = true
	}
	if f.ShowGrid {
		c.Display.ShowGrid = true
	}
	if f.NoAnimations {
		c.Animation.Enabled = false
	}
	if f.Mute {
		c.Audio.Enabled = false
	}
	if f.Watch {
		c.Levels.Watch = true
	}
	if f.Resolution != "" {
		w, h, err := ParseResolution(f.Resolution)
		if err != nil {
			return err
		}
		c.Display.Width, c.Display.Height = w, h
	}
	if f.LevelsDir != "" {
		c.Levels.Dir = f.LevelsDir
	}
	if f.DBPath != "" {
		c.Storage.DBPath = f.DBPath
	}
	if f.LogLevel != "" {
		c.Log.Level = f.LogLevel
	}
	if f.LogFile != "" {
		c.Log.File = f.LogFile
	}
	return nil
}
