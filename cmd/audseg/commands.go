// SPDX-License-Identifier: EPL-2.0

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audseg"
	"github.com/ik5/audseg/analysis"
	"github.com/ik5/audseg/editor"
	"github.com/ik5/audseg/internal/config"
	"github.com/ik5/audseg/internal/tui"
	"github.com/ik5/audseg/output"
	"github.com/spf13/cobra"
)

// window flags shared by export and analyze. A negative end means the end
// of the clip.
type windowFlags struct {
	start float64
	end   float64
}

func (w *windowFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&w.start, "start", 0, "segment start in seconds")
	cmd.Flags().Float64Var(&w.end, "end", -1, "segment end in seconds; negative selects to the end of the clip")
}

func (w *windowFlags) apply(s *editor.Session) editor.Window {
	end := w.end
	if end < 0 {
		end = s.Status().Duration
	}
	return s.SetWindow(w.start, end)
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Decode a clip and print its format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.readClip(args[0])
			if err != nil {
				return err
			}

			buf, err := audseg.Decode(cmd.Context(), data, a.mimeType)
			if err != nil {
				return err
			}

			format := audseg.Format(data, a.mimeType)
			if format == "" {
				format = "unknown"
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "file:        %s\n", args[0])
			fmt.Fprintf(w, "container:   %s\n", format)
			fmt.Fprintf(w, "sample rate: %d Hz\n", buf.SampleRate())
			fmt.Fprintf(w, "channels:    %d\n", buf.Channels())
			fmt.Fprintf(w, "frames:      %d\n", buf.Frames())
			fmt.Fprintf(w, "duration:    %.3fs\n", buf.Duration())
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var (
		win windowFlags
		out string
	)

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Write a segment of a clip as 16-bit PCM WAV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.readClip(args[0])
			if err != nil {
				return err
			}

			s := a.newSession(cmd.Context(), output.NewNull())
			defer s.Close()

			if err := s.Load(cmd.Context(), data, a.mimeType); err != nil {
				return err
			}
			w := win.apply(s)

			seg, err := s.Export()
			if err != nil {
				return err
			}
			if seg.Empty() {
				return editor.ErrEmptySegment
			}

			if out == "" {
				out = segmentPath(args[0])
			}
			if err := writeOutput(cmd.OutOrStdout(), out, seg.Data); err != nil {
				return err
			}

			a.log.WithField("output", out).Infof("exported %.3fs - %.3fs", w.Start, w.End)
			return nil
		},
	}

	win.register(cmd)
	cmd.Flags().StringVarP(&out, "output", "o", "", `output file, "-" for stdout (default FILE.segment.wav)`)

	return cmd
}

func newAnalyzeCmd(a *app) *cobra.Command {
	var win windowFlags

	cmd := &cobra.Command{
		Use:   "analyze FILE",
		Short: "Submit a segment of a clip for sentiment analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.analysisClient()
			if err != nil {
				return err
			}

			data, err := a.readClip(args[0])
			if err != nil {
				return err
			}

			s := a.newSession(cmd.Context(), output.NewNull())
			defer s.Close()

			if err := s.Load(cmd.Context(), data, a.mimeType); err != nil {
				return err
			}
			win.apply(s)

			v, err := s.Analyze(cmd.Context(), client)
			if err != nil {
				return err
			}
			return printVerdict(cmd.OutOrStdout(), v)
		},
	}

	win.register(cmd)

	return cmd
}

func newAnalyzeTextCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze-text TEXT...",
		Short: "Submit text for sentiment analysis",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.analysisClient()
			if err != nil {
				return err
			}

			v, err := client.AnalyzeText(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printVerdict(cmd.OutOrStdout(), v)
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	var noAudio bool

	cmd := &cobra.Command{
		Use:   "edit FILE",
		Short: "Trim, play and analyze a clip interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.readClip(args[0])
			if err != nil {
				return err
			}

			// The terminal belongs to the editor from here on.
			a.log.SetOutput(io.Discard)

			device := output.Device(output.NewNull())
			if !noAudio {
				device = a.openDevice()
			}

			s := a.newSession(cmd.Context(), device)
			defer s.Close()

			if err := s.Load(cmd.Context(), data, a.mimeType); err != nil {
				return err
			}

			opts := tui.Options{
				Title:      filepath.Base(args[0]),
				ExportPath: segmentPath(args[0]),
				Nudge:      a.cfg.Editor.NudgeSeconds,
			}
			if client, err := a.analysisClient(); err == nil {
				opts.Analyzer = client
			}

			return tui.Run(cmd.Context(), s, opts)
		},
	}

	cmd.Flags().BoolVar(&noAudio, "no-audio", false, "do not open the audio device")

	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var out string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		Args:  cobra.NoArgs,
		// Runs without an existing config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			if out == "" || out == "-" {
				return config.WriteDefault(cmd.OutOrStdout())
			}

			f, err := os.OpenFile(out, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			if err := config.WriteDefault(f); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
	initCmd.Flags().StringVarP(&out, "output", "o", "", "file to create; stdout when empty")

	cmd.AddCommand(initCmd)
	return cmd
}

// segmentPath derives the default export name: clip.mp3 -> clip.segment.wav.
func segmentPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".segment.wav"
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func printVerdict(w io.Writer, v *analysis.Verdict) error {
	if v == nil {
		return errors.New("gateway returned no verdict")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
