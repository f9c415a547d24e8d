package config

import "flag"

// Flags holds the command-line overrides
type Flags struct {
	Config  string
	Scene   string
	Heatmap string
	Preview bool
	Debug   bool
	LogFile string
}

// ParseFlags parses command-line arguments (without the program name)
func ParseFlags(args []string) (*Flags, error) {
	f := &Flags{}
	fs := flag.NewFlagSet("roomlight", flag.ContinueOnError)
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.StringVar(&f.Scene, "scene", "", "Path to scene file (.yaml or .json)")
	fs.StringVar(&f.Heatmap, "heatmap", "", "Write an illumination heatmap PNG to this path")
	fs.BoolVar(&f.Preview, "preview", false, "Open the interactive preview window")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFile, "log-file", "", "Also write logs to this file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// apply copies set flags over the config
func (f *Flags) apply(cfg *Config) {
	if f.Scene != "" {
		cfg.Scene.Path = f.Scene
	}
	if f.Heatmap != "" {
		cfg.Heatmap.Output = f.Heatmap
	}
	if f.Preview {
		cfg.Preview.Enabled = true
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
}
