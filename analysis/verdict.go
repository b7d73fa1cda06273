// SPDX-License-Identifier: EPL-2.0

package analysis

// Sentiment labels the gateway uses.
const (
	Positive = "positive"
	Negative = "negative"
	Neutral  = "neutral"
	Mixed    = "mixed"
)

// Emotion is one detected emotion and its intensity in [0, 1].
type Emotion struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Verdict is the gateway's judgement of one clip or text.
type Verdict struct {
	Sentiment  string    `json:"sentiment"`
	Score      float64   `json:"score"`
	Confidence float64   `json:"confidence"`
	Emotions   []Emotion `json:"emotions,omitempty"`
	Summary    string    `json:"summary,omitempty"`
	// Transcript is only set for audio requests.
	Transcript string `json:"transcript,omitempty"`
}

// Dominant returns the strongest emotion, or the zero Emotion when none were
// reported.
func (v *Verdict) Dominant() Emotion {
	var best Emotion
	for _, e := range v.Emotions {
		if e.Score > best.Score {
			best = e
		}
	}
	return best
}

type audioRequest struct {
	MimeType string `json:"mime_type"`
	Audio    []byte `json:"audio"`
}

type textRequest struct {
	Text string `json:"text"`
}
