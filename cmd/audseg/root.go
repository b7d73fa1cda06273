// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ik5/audseg"
	"github.com/ik5/audseg/analysis"
	"github.com/ik5/audseg/editor"
	"github.com/ik5/audseg/internal/config"
	"github.com/ik5/audseg/internal/metrics"
	"github.com/ik5/audseg/output"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs after flag parsing.
type app struct {
	configPath string
	logLevel   string
	mimeType   string

	cfg *config.Config
	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "audseg",
		Short:         "Trim audio clips and analyze the sentiment of a segment",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML config file")
	flags.StringVar(&a.logLevel, "log-level", "", "override log.level")
	flags.StringVar(&a.mimeType, "mime", "", "mime type of the input; sniffed when empty")

	root.AddCommand(
		newInfoCmd(a),
		newExportCmd(a),
		newAnalyzeCmd(a),
		newAnalyzeTextCmd(a),
		newEditCmd(a),
		newConfigCmd(),
	)

	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	log, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		return err
	}

	a.cfg, a.log = cfg, log
	return nil
}

func (a *app) readClip(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading clip: %w", err)
	}
	return data, nil
}

func (a *app) analysisClient() (*analysis.Client, error) {
	return analysis.NewClient(analysis.Config{
		Endpoint:   a.cfg.Analysis.Endpoint,
		APIKey:     a.cfg.Analysis.APIKey,
		Timeout:    a.cfg.Analysis.Timeout,
		MaxRetries: a.cfg.Analysis.MaxRetries,
		Logger:     a.log,
	})
}

// openDevice opens the speakers, falling back to a silent device when
// playback is disabled or no audio stack is available.
func (a *app) openDevice() output.Device {
	if !a.cfg.Playback.Enabled {
		return output.NewNull()
	}

	dev, err := output.NewOto(output.Options{
		SampleRate: a.cfg.Playback.SampleRate,
		Channels:   a.cfg.Playback.Channels,
		Logger:     a.log,
	})
	if err != nil {
		a.log.WithError(err).Warn("audio output unavailable, playback is silent")
		return output.NewNull()
	}
	return dev
}

// newSession builds a session and, when metrics.listen is set, starts the
// metrics endpoint for the lifetime of ctx.
func (a *app) newSession(ctx context.Context, device output.Device) *editor.Session {
	opts := editor.Options{
		Decoder:    audseg.NewRegistry(),
		MinSegment: a.cfg.Editor.MinSegmentSeconds,
		Device:     device,
		Logger:     a.log,
	}

	if addr := a.cfg.Metrics.Listen; addr != "" {
		reg := prometheus.NewRegistry()
		opts.Observer = metrics.New(reg)
		go func() {
			if err := metrics.Serve(ctx, addr, reg, a.log); err != nil {
				a.log.WithError(err).Error("metrics endpoint stopped")
			}
		}()
	}

	return editor.NewSession(opts)
}
