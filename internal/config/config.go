/*
Package config holds the configuration of the nodemap command.

Configuration is read from a YAML file and decoded onto defaults, so a file
needs to mention only the keys it changes:

	tracing:
	  adapter: go
	  level: Debug
	render:
	  color: false
	  width: 100
	  pretty: true

Without an explicit path, the file nodemap.yaml (or .yml) is searched for in
the working directory and in the user's configuration directory.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/npillmayer/nodemap/render"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"gopkg.in/yaml.v3"
)

// Tracing configures tracing output.
type Tracing struct {
	Adapter string `mapstructure:"adapter"` // only "go" is supported
	Level   string `mapstructure:"level"`   // Error, Info or Debug
}

// Render configures console output.
type Render struct {
	Color  bool `mapstructure:"color"`
	Width  int  `mapstructure:"width"`  // 0 for the terminal's width
	Pretty bool `mapstructure:"pretty"` // render through markdown styling
}

// Config is the configuration of the nodemap command.
type Config struct {
	Tracing Tracing `mapstructure:"tracing"`
	Render  Render  `mapstructure:"render"`
	Source  string  `mapstructure:"-"` // file the configuration has been read from
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Tracing: Tracing{Adapter: "go", Level: "Error"},
		Render:  Render{Color: true},
	}
}

// Load reads the configuration file at path. If path is empty, Load looks
// for a configuration file in the usual places and falls back to Default if
// there is none.
func Load(path string) (*Config, error) {
	conf := Default()
	if path == "" {
		if path = Locate(); path == "" {
			return conf, nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := conf.decode(data); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	conf.Source = path
	return conf, nil
}

func (conf *Config) decode(data []byte) error {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata:         &md,
		Result:           conf,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return err
	}
	if len(md.Unused) > 0 {
		return fmt.Errorf("unknown keys %s", strings.Join(md.Unused, ", "))
	}
	_, err = parseLevel(conf.Tracing.Level)
	return err
}

// Locate returns the path of the first configuration file found, or "".
func Locate() string {
	dirs := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, "nodemap"))
	}
	for _, dir := range dirs {
		for _, ext := range []string{"yaml", "yml"} {
			path := filepath.Join(dir, "nodemap."+ext)
			if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
				return path
			}
		}
	}
	return ""
}

func parseLevel(name string) (tracing.TraceLevel, error) {
	switch strings.ToLower(name) {
	case "error", "":
		return tracing.LevelError, nil
	case "info":
		return tracing.LevelInfo, nil
	case "debug":
		return tracing.LevelDebug, nil
	}
	return tracing.LevelError, fmt.Errorf("unknown trace level %q", name)
}

// SetLevel sets the trace level of t by name (Error, Info or Debug).
func SetLevel(t tracing.Trace, name string) error {
	level, err := parseLevel(name)
	if err != nil {
		return err
	}
	t.SetTraceLevel(level)
	return nil
}

// ErrUnknownAdapter is flagged by SetupTracing for adapters other than "go".
var ErrUnknownAdapter = errors.New("config: unknown tracing adapter")

// SetupTracing installs the core tracer the configuration asks for.
func (conf *Config) SetupTracing() error {
	var t tracing.Trace
	switch conf.Tracing.Adapter {
	case "go", "":
		t = gologadapter.New()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAdapter, conf.Tracing.Adapter)
	}
	if err := SetLevel(t, conf.Tracing.Level); err != nil {
		return err
	}
	gtrace.CoreTracer = t
	gtrace.CoreTracer.Debugf("config: tracing at level %s", conf.Tracing.Level)
	return nil
}

// RenderConfig derives the console configuration. Terminal properties are
// used where the configuration does not say otherwise.
func (conf *Config) RenderConfig() *render.Config {
	rc := render.ConfigFromTerminal()
	rc.Color = rc.Color && conf.Render.Color
	if conf.Render.Width > 0 {
		rc.LineWidth = conf.Render.Width
	}
	return rc
}
