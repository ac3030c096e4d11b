package selection

import (
	"fmt"
	"sort"

	"esvid/internal/language"
	"esvid/internal/media"
)

// SelectAudioAuto picks an audio track for the preferred language. It tries
// explicitly tagged tracks first, then falls back to the best available
// audio when the title itself signals the language. The returned format is
// nil when neither applies; the provenance note is always populated.
func SelectAudioAuto(catalog media.Catalog, lang string) (*media.Format, string) {
	display := language.DisplayName(lang)

	tagged := make([]media.Format, 0)
	for _, f := range catalog.AudioBearing() {
		if language.HasPrefix(f.Language, lang) {
			tagged = append(tagged, f)
		}
	}
	if len(tagged) > 0 {
		best := bestByBitrate(tagged)
		return &best, fmt.Sprintf("Found explicitly tagged %s audio.", display)
	}

	if language.TitleMentions(catalog.Title, lang) {
		if len(catalog.AudioOnly) > 0 {
			best := bestByBitrate(catalog.AudioOnly)
			return &best, fmt.Sprintf("Inferred %s from title, selected best available audio.", display)
		}
	}

	return nil, fmt.Sprintf("No %s audio found.", display)
}

// bestByBitrate returns the highest-bitrate candidate; ties keep their
// original order.
func bestByBitrate(candidates []media.Format) media.Format {
	ranked := make([]media.Format, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TBR > ranked[j].TBR
	})
	return ranked[0]
}
