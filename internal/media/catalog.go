package media

import (
	"sort"
	"strings"
)

// Subtitle origin markers shown to the user next to each candidate.
const (
	OriginManual = "manual"
	OriginAuto   = "auto"
)

// SubtitleCandidate is one selectable subtitle language after merging the
// manual and auto-caption mappings.
type SubtitleCandidate struct {
	Lang   string
	Ext    string
	Origin string
}

// Catalog partitions a metadata document into the candidate lists the
// selectors work from. It is built once per run and never mutated.
type Catalog struct {
	Title     string
	VideoOnly []Format
	AudioOnly []Format
	Subtitles []SubtitleCandidate

	formats []Format
}

// AudioBearing returns every format that carries audio, including combined
// video+audio tracks.
func (c Catalog) AudioBearing() []Format {
	out := make([]Format, 0, len(c.formats))
	for _, f := range c.formats {
		if f.HasAudio() {
			out = append(out, f)
		}
	}
	return out
}

// Normalize builds the Catalog from a metadata document. Empty candidate
// lists are valid and propagate to the selectors.
func Normalize(info *Info) Catalog {
	catalog := Catalog{
		Title:   info.Title,
		formats: info.Formats,
	}

	for _, f := range info.Formats {
		if f.VideoOnly() {
			catalog.VideoOnly = append(catalog.VideoOnly, f)
		}
	}
	if len(catalog.VideoOnly) == 0 {
		// Some sources only expose combined tracks.
		for _, f := range info.Formats {
			if f.HasVideo() {
				catalog.VideoOnly = append(catalog.VideoOnly, f)
			}
		}
	}

	for _, f := range info.Formats {
		if f.AudioOnly() {
			catalog.AudioOnly = append(catalog.AudioOnly, f)
		}
	}
	if len(catalog.AudioOnly) == 0 {
		catalog.AudioOnly = catalog.AudioBearing()
	}

	catalog.Subtitles = mergeSubtitles(info.Subtitles, info.AutomaticCaptions)
	return catalog
}

func mergeSubtitles(manual, auto map[string][]SubtitleTrack) []SubtitleCandidate {
	tags := make(map[string]struct{}, len(manual)+len(auto))
	for tag := range manual {
		tags[tag] = struct{}{}
	}
	for tag := range auto {
		tags[tag] = struct{}{}
	}

	candidates := make([]SubtitleCandidate, 0, len(tags))
	for tag := range tags {
		if !plausibleLanguageTag(tag) {
			continue
		}
		if tracks := manual[tag]; len(tracks) > 0 {
			candidates = append(candidates, SubtitleCandidate{Lang: tag, Ext: tracks[0].Ext, Origin: OriginManual})
			continue
		}
		if tracks := auto[tag]; len(tracks) > 0 {
			candidates = append(candidates, SubtitleCandidate{Lang: tag, Ext: tracks[0].Ext, Origin: OriginAuto})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Lang < candidates[j].Lang
	})
	return candidates
}

// plausibleLanguageTag filters out the pseudo-tags the auto-caption mapping
// is littered with (translation targets like "en-orig" stay, service noise
// like "live_chat" goes). Known heuristic: a real 4+ letter language code
// without a region suffix is excluded too.
func plausibleLanguageTag(tag string) bool {
	return len(tag) <= 3 || strings.Contains(tag, "-")
}
