// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ik5/audseg/formats/wav"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeClip(t *testing.T, rate, channels, frames int) string {
	t.Helper()

	var b bytes.Buffer
	if err := wav.WriteWAV16(&b, rate, channels, make([]int16, frames*channels)); err != nil {
		t.Fatalf("WriteWAV16: %v", err)
	}

	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := os.WriteFile(path, b.Bytes(), 0o600); err != nil {
		t.Fatalf("writing clip: %v", err)
	}
	return path
}

func TestInfo(t *testing.T) {
	path := writeClip(t, 22050, 2, 44100)

	out, err := run(t, "info", path)
	if err != nil {
		t.Fatalf("info: %v", err)
	}

	for _, want := range []string{"container:   wav", "sample rate: 22050 Hz", "channels:    2", "duration:    2.000s"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestExport(t *testing.T) {
	path := writeClip(t, 8000, 1, 16000)
	dst := filepath.Join(t.TempDir(), "cut.wav")

	if _, err := run(t, "export", path, "--start", "0.5", "--end", "1.5", "-o", dst); err != nil {
		t.Fatalf("export: %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if len(data) != 44+8000*2 {
		t.Errorf("export is %d bytes, want %d", len(data), 44+8000*2)
	}
}

func TestExport_DefaultsToWholeClip(t *testing.T) {
	path := writeClip(t, 8000, 1, 4000)

	if _, err := run(t, "export", path); err != nil {
		t.Fatalf("export: %v", err)
	}

	data, err := os.ReadFile(segmentPath(path))
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if len(data) != 44+4000*2 {
		t.Errorf("export is %d bytes, want %d", len(data), 44+4000*2)
	}
}

func TestExport_NotAudio(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("not audio"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "export", path); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestConfigInit(t *testing.T) {
	out, err := run(t, "config", "init")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	for _, want := range []string{"min_segment_seconds: 0.5", "endpoint: http://localhost:8080", "timeout: 60s"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSegmentPath(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"clip.mp3":          "clip.segment.wav",
		"/tmp/a.b/talk.ogg": "/tmp/a.b/talk.segment.wav",
		"noext":             "noext.segment.wav",
	}
	for in, want := range tests {
		if got := segmentPath(in); got != want {
			t.Errorf("segmentPath(%q) = %q, want %q", in, got, want)
		}
	}
}
