package selection_test

import (
	"strings"
	"testing"

	"esvid/internal/media"
	"esvid/internal/selection"
)

func audioCandidates() []media.Format {
	return []media.Format{
		{ID: "en", VCodec: "none", ACodec: "opus", Language: "en", TBR: 160},
		{ID: "es-high", VCodec: "none", ACodec: "opus", Language: "es", TBR: 128},
		{ID: "es-low", VCodec: "none", ACodec: "opus", Language: "es", TBR: 64},
	}
}

func TestChooseAudioValidChoice(t *testing.T) {
	var out strings.Builder
	chooser := selection.NewChooser(strings.NewReader("2\n"), &out)

	got, err := chooser.ChooseAudio(audioCandidates())
	if err != nil {
		t.Fatalf("ChooseAudio: %v", err)
	}
	// Sorted by language then bitrate desc: en, es-high, es-low.
	if got == nil || got.ID != "es-high" {
		t.Fatalf("expected second entry, got %#v", got)
	}
}

func TestChooseAudioZeroSkips(t *testing.T) {
	var out strings.Builder
	chooser := selection.NewChooser(strings.NewReader("0\n"), &out)

	got, err := chooser.ChooseAudio(audioCandidates())
	if err != nil {
		t.Fatalf("ChooseAudio: %v", err)
	}
	if got != nil {
		t.Fatalf("expected skip, got %#v", got)
	}
}

func TestChooseAudioRejectsInvalidInputThenAccepts(t *testing.T) {
	var out strings.Builder
	input := "\nabc\n4\n-1\n1\n"
	chooser := selection.NewChooser(strings.NewReader(input), &out)

	got, err := chooser.ChooseAudio(audioCandidates())
	if err != nil {
		t.Fatalf("ChooseAudio: %v", err)
	}
	if got == nil || got.ID != "en" {
		t.Fatalf("expected first entry after retries, got %#v", got)
	}
	rendered := out.String()
	if !strings.Contains(rendered, "Please enter a number.") {
		t.Fatalf("empty input must re-prompt, output: %s", rendered)
	}
	if !strings.Contains(rendered, "is not a number") {
		t.Fatalf("non-numeric input must re-prompt, output: %s", rendered)
	}
	if !strings.Contains(rendered, "between 1 and 3") {
		t.Fatalf("out-of-range input must re-prompt, output: %s", rendered)
	}
}

func TestChooseAudioOutOfRangeUpperBound(t *testing.T) {
	var out strings.Builder
	chooser := selection.NewChooser(strings.NewReader("4\n0\n"), &out)

	got, err := chooser.ChooseAudio(audioCandidates())
	if err != nil {
		t.Fatalf("ChooseAudio: %v", err)
	}
	if got != nil {
		t.Fatalf("count+1 must be rejected, then 0 skips; got %#v", got)
	}
}

func TestChooseAudioEOFSkips(t *testing.T) {
	var out strings.Builder
	chooser := selection.NewChooser(strings.NewReader(""), &out)

	got, err := chooser.ChooseAudio(audioCandidates())
	if err != nil {
		t.Fatalf("ChooseAudio: %v", err)
	}
	if got != nil {
		t.Fatalf("closed input must skip, got %#v", got)
	}
}

func TestChooseAudioEmptyList(t *testing.T) {
	var out strings.Builder
	chooser := selection.NewChooser(strings.NewReader("1\n"), &out)

	got, err := chooser.ChooseAudio(nil)
	if err != nil || got != nil {
		t.Fatalf("empty list must skip without reading input, got %#v err %v", got, err)
	}
}

func TestChooseSubtitleReturnsLanguage(t *testing.T) {
	candidates := []media.SubtitleCandidate{
		{Lang: "en", Ext: "vtt", Origin: media.OriginAuto},
		{Lang: "es", Ext: "srt", Origin: media.OriginManual},
	}
	var out strings.Builder
	chooser := selection.NewChooser(strings.NewReader("2\n"), &out)

	got, err := chooser.ChooseSubtitle(candidates)
	if err != nil {
		t.Fatalf("ChooseSubtitle: %v", err)
	}
	if got == nil || got.Lang != "es" || got.Origin != media.OriginManual {
		t.Fatalf("unexpected choice: %#v", got)
	}
}
