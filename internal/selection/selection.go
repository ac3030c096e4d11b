package selection

import "esvid/internal/media"

// Selection accumulates the per-track choices for one run. It is populated
// once, frozen into a download plan, and discarded.
type Selection struct {
	Video media.Format

	// AudioID is empty when no audio track was chosen; the plan compiler
	// then delegates the pick to the retrieval tool ("bestaudio").
	AudioID   string
	AudioLang string
	AudioNote string

	// SubtitleLang is empty when no subtitle was chosen. Subtitles are
	// addressed by language tag, not track ID, at mux time.
	SubtitleLang   string
	SubtitleOrigin string
	SubtitleExt    string
}

// HasAudio reports whether an audio track was explicitly selected.
func (s Selection) HasAudio() bool { return s.AudioID != "" }

// HasSubtitle reports whether a subtitle language was selected.
func (s Selection) HasSubtitle() bool { return s.SubtitleLang != "" }
