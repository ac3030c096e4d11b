package selection

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"esvid/internal/media"
	"esvid/internal/services"
)

// SelectVideo picks the best video track, optionally constrained by a
// quality string like "1080p". The constraint is a preference: when no
// candidate matches the requested height the selector warns and falls back
// to the unfiltered list. An empty candidate list is fatal.
func SelectVideo(catalog media.Catalog, quality string, logger *slog.Logger) (media.Format, error) {
	candidates := catalog.VideoOnly

	if strings.TrimSpace(quality) != "" {
		if height, ok := parseQuality(quality); ok {
			matched := make([]media.Format, 0, len(candidates))
			for _, f := range candidates {
				if f.Height == height {
					matched = append(matched, f)
				}
			}
			if len(matched) > 0 {
				candidates = matched
			} else {
				logger.Warn("requested quality not available, falling back to best available", "quality", quality)
			}
		} else {
			logger.Warn("quality value carries no height, ignoring", "quality", quality)
		}
	}

	if len(candidates) == 0 {
		return media.Format{}, services.Wrap(services.ErrNoStream, "selection", "video", "no usable video track in metadata", nil)
	}

	ranked := rankVideo(candidates)
	return ranked[0], nil
}

// rankVideo orders candidates by height, then frame rate, then bitrate, all
// descending. The sort is stable so ties keep their catalog order.
func rankVideo(candidates []media.Format) []media.Format {
	ranked := make([]media.Format, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Height != b.Height {
			return a.Height > b.Height
		}
		if a.FPS != b.FPS {
			return a.FPS > b.FPS
		}
		return a.TBR > b.TBR
	})
	return ranked
}

// parseQuality extracts the height from a free-text quality value by
// discarding every non-digit rune.
func parseQuality(quality string) (int, bool) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, quality)
	if digits == "" {
		return 0, false
	}
	height, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return height, true
}
