// SPDX-License-Identifier: EPL-2.0

// Package editor holds the audio segment editor: a trim Selector over a
// decoded clip, a playback Engine that plays the selected window, and the
// Session that ties both to decoding, WAV export and analysis.
//
// A Session owns its output device from NewSession until Close. Editing the
// window while audio is playing or paused stops playback, so the next Play
// always starts at the beginning of the new window.
//
//	s := editor.NewSession(editor.Options{Decoder: registry})
//	defer s.Close()
//
//	if err := s.Load(ctx, data, "audio/mpeg"); err != nil {
//		return err
//	}
//	s.SetWindow(1.0, 3.5)
//	seg, err := s.Export()
package editor

import (
	"io"

	"github.com/sirupsen/logrus"
)

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
