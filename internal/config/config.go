// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "AUDSEG"

type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Editor   EditorConfig   `mapstructure:"editor"`
	Playback PlaybackConfig `mapstructure:"playback"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

type EditorConfig struct {
	MinSegmentSeconds float64 `mapstructure:"min_segment_seconds"`
	// NudgeSeconds is how far one arrow key moves a trim handle.
	NudgeSeconds float64 `mapstructure:"nudge_seconds"`
}

type PlaybackConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	SampleRate int  `mapstructure:"sample_rate"`
	Channels   int  `mapstructure:"channels"`
}

type AnalysisConfig struct {
	Endpoint   string        `mapstructure:"endpoint"`
	APIKey     string        `mapstructure:"api_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
}

type MetricsConfig struct {
	// Listen is the address of the Prometheus endpoint; empty disables it.
	Listen string `mapstructure:"listen"`
}

// defaults in file order.
var defaults = []struct {
	key   string
	value any
}{
	{"log.level", "info"},
	{"log.format", "text"},
	{"editor.min_segment_seconds", 0.5},
	{"editor.nudge_seconds", 0.1},
	{"playback.enabled", true},
	{"playback.sample_rate", 48000},
	{"playback.channels", 2},
	{"analysis.endpoint", "http://localhost:8080"},
	{"analysis.api_key", ""},
	{"analysis.timeout", "60s"},
	{"analysis.max_retries", 2},
	{"metrics.listen", ""},
}

func newViper() *viper.Viper {
	v := viper.New()
	for _, d := range defaults {
		v.SetDefault(d.key, d.value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the YAML file at path, when path is not empty, and applies
// environment overrides. The result is validated.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Default returns the built-in settings.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: built-in defaults are invalid: %v", err))
	}
	return cfg
}

// WriteDefault writes the built-in settings as a YAML document.
func WriteDefault(w io.Writer) error {
	root := map[string]any{}
	for _, d := range defaults {
		section, key, _ := strings.Cut(d.key, ".")
		m, ok := root[section].(map[string]any)
		if !ok {
			m = map[string]any{}
			root[section] = m
		}
		m[key] = d.value
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encoding defaults: %w", err)
	}
	return enc.Close()
}

func (c *Config) Validate() error {
	return errors.Join(
		c.Log.Validate(),
		c.Editor.Validate(),
		c.Playback.Validate(),
		c.Analysis.Validate(),
	)
}

func (l *LogConfig) Validate() error {
	if _, err := logrus.ParseLevel(l.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch l.Format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("log.format must be text or json, got %q", l.Format)
	}
}

func (e *EditorConfig) Validate() error {
	if !(e.MinSegmentSeconds > 0) {
		return fmt.Errorf("editor.min_segment_seconds must be positive, got %v", e.MinSegmentSeconds)
	}
	if !(e.NudgeSeconds > 0) {
		return fmt.Errorf("editor.nudge_seconds must be positive, got %v", e.NudgeSeconds)
	}
	return nil
}

func (p *PlaybackConfig) Validate() error {
	if !p.Enabled {
		return nil
	}
	if p.SampleRate < 8000 || p.SampleRate > 192000 {
		return fmt.Errorf("playback.sample_rate must be between 8000 and 192000, got %d", p.SampleRate)
	}
	if p.Channels != 1 && p.Channels != 2 {
		return fmt.Errorf("playback.channels must be 1 or 2, got %d", p.Channels)
	}
	return nil
}

func (a *AnalysisConfig) Validate() error {
	u, err := url.Parse(a.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("analysis.endpoint must be an absolute URL, got %q", a.Endpoint)
	}
	if a.Timeout <= 0 {
		return fmt.Errorf("analysis.timeout must be positive, got %v", a.Timeout)
	}
	if a.MaxRetries < 0 {
		return fmt.Errorf("analysis.max_retries cannot be negative, got %d", a.MaxRetries)
	}
	return nil
}

// NewLogger builds a logger writing to w at the configured level and format.
func (l *LogConfig) NewLogger(w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(level)
	if l.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log, nil
}
