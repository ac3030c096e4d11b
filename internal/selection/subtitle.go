package selection

import (
	"sort"

	"esvid/internal/media"
)

// extRank orders subtitle renditions by container preference. Unknown
// extensions rank last.
func extRank(ext string) int {
	switch ext {
	case "srt":
		return 0
	case "vtt":
		return 1
	default:
		return 99
	}
}

// SelectSubtitleAuto looks up a subtitle for the preferred language from the
// auto-caption mapping, trying each tag in order (base tag first, then
// regional variants like "es-419"). Within a tag, renditions are ranked by
// extension preference. Returns nil when no tag has tracks.
func SelectSubtitleAuto(captions map[string][]media.SubtitleTrack, tags []string) *media.SubtitleCandidate {
	for _, tag := range tags {
		tracks := captions[tag]
		if len(tracks) == 0 {
			continue
		}
		ranked := make([]media.SubtitleTrack, len(tracks))
		copy(ranked, tracks)
		sort.SliceStable(ranked, func(i, j int) bool {
			return extRank(ranked[i].Ext) < extRank(ranked[j].Ext)
		})
		return &media.SubtitleCandidate{Lang: tag, Ext: ranked[0].Ext, Origin: media.OriginAuto}
	}
	return nil
}
