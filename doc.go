// SPDX-License-Identifier: EPL-2.0

// Package audseg cuts segments out of audio clips and submits them for
// sentiment analysis.
//
// A clip of any supported container is decoded once into an immutable
// audio.Buffer. A trim window over the buffer selects the segment to play
// or export; exports are canonical 16-bit PCM WAV.
//
// # Supported Formats
//
//   - WAV (8, 16, 24 and 32-bit integer PCM) via formats/wav
//   - AIFF via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - FLAC via formats/flac
//
// # Quick Start
//
// Cutting a segment needs no session:
//
//	data, _ := os.ReadFile("interview.mp3")
//	out, err := audseg.ExportSegment(ctx, data, "audio/mpeg", 12.5, 20)
//	if err != nil {
//		return err
//	}
//	if len(out) == 0 {
//		// the window selected nothing
//	}
//
// # Editing
//
// Interactive use goes through editor.Session, which owns the trim window,
// playback on an output.Device and analysis through an editor.Analyzer
// such as analysis.Client:
//
//	s := editor.NewSession(editor.Options{Decoder: audseg.NewRegistry()})
//	defer s.Close()
//
//	_ = s.Load(ctx, data, "audio/mpeg")
//	s.SetWindow(12.5, 20)
//	verdict, err := s.Analyze(ctx, client)
//
// See the subpackages for details.
package audseg
