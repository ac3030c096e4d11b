package main

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"esvid/internal/config"
	"esvid/internal/media"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

func TestYoutubeURLPattern(t *testing.T) {
	valid := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"http://youtu.be/dQw4w9WgXcQ",
		"youtube.com/shorts/abc-123",
		"https://youtube.com/live/xyz_9",
	}
	for _, url := range valid {
		if !youtubeURLPattern.MatchString(url) {
			t.Fatalf("expected %q to validate", url)
		}
	}
	invalid := []string{
		"https://vimeo.com/12345",
		"not a url",
		"https://www.youtube.com/feed/subscriptions",
	}
	for _, url := range invalid {
		if youtubeURLPattern.MatchString(url) {
			t.Fatalf("expected %q to be rejected", url)
		}
	}
}

func TestBuildSelectionTaggedAudio(t *testing.T) {
	cfg := testConfig(t)
	info := &media.Info{
		Title: "Some title",
		Formats: []media.Format{
			{ID: "v1", VCodec: "vp9", ACodec: "none", Height: 1080},
			{ID: "a1", VCodec: "none", ACodec: "opus", Language: "es", TBR: 128},
		},
	}
	catalog := media.Normalize(info)

	sel, err := buildSelection(cfg, catalog, info, downloadOptions{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("buildSelection: %v", err)
	}
	if sel.Video.ID != "v1" || sel.AudioID != "a1" {
		t.Fatalf("unexpected selection: %+v", sel)
	}
	if !strings.Contains(sel.AudioNote, "explicitly tagged") {
		t.Fatalf("unexpected provenance: %q", sel.AudioNote)
	}
	if sel.HasSubtitle() {
		t.Fatalf("no subtitle expected when audio selected: %+v", sel)
	}
}

func TestBuildSelectionTitleInference(t *testing.T) {
	cfg := testConfig(t)
	info := &media.Info{
		Title: "Documental completo en Español",
		Formats: []media.Format{
			{ID: "v1", VCodec: "vp9", ACodec: "none", Height: 720},
			{ID: "a-lo", VCodec: "none", ACodec: "opus", Language: "en", TBR: 64},
			{ID: "a-hi", VCodec: "none", ACodec: "opus", Language: "en", TBR: 160},
		},
	}
	catalog := media.Normalize(info)

	sel, err := buildSelection(cfg, catalog, info, downloadOptions{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("buildSelection: %v", err)
	}
	if sel.AudioID != "a-hi" {
		t.Fatalf("expected best-bitrate fallback, got %+v", sel)
	}
	if !strings.Contains(sel.AudioNote, "Inferred") {
		t.Fatalf("unexpected provenance: %q", sel.AudioNote)
	}
}

func TestBuildSelectionSubtitleSubstitute(t *testing.T) {
	cfg := testConfig(t)
	info := &media.Info{
		Title: "An English documentary",
		Formats: []media.Format{
			{ID: "v1", VCodec: "vp9", ACodec: "none", Height: 1080},
			{ID: "a1", VCodec: "none", ACodec: "opus", Language: "en", TBR: 128},
		},
		AutomaticCaptions: map[string][]media.SubtitleTrack{
			"es": {{Ext: "vtt"}},
		},
	}
	catalog := media.Normalize(info)

	sel, err := buildSelection(cfg, catalog, info, downloadOptions{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("buildSelection: %v", err)
	}
	if sel.HasAudio() {
		t.Fatalf("no audio expected: %+v", sel)
	}
	if sel.SubtitleLang != "es" {
		t.Fatalf("expected Spanish captions as substitute, got %+v", sel)
	}
}

func TestBuildSelectionQualityPreference(t *testing.T) {
	cfg := testConfig(t)
	info := &media.Info{
		Title: "Short",
		Formats: []media.Format{
			{ID: "v-480", VCodec: "vp9", ACodec: "none", Height: 480},
			{ID: "v-1080", VCodec: "vp9", ACodec: "none", Height: 1080},
		},
	}
	catalog := media.Normalize(info)

	sel, err := buildSelection(cfg, catalog, info, downloadOptions{quality: "720p"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("quality must degrade to a warning: %v", err)
	}
	if sel.Video.ID != "v-1080" {
		t.Fatalf("expected best available fallback, got %+v", sel.Video)
	}
}

func TestBuildSelectionNoVideoIsFatal(t *testing.T) {
	cfg := testConfig(t)
	info := &media.Info{Title: "Audio only"}
	catalog := media.Normalize(info)

	if _, err := buildSelection(cfg, catalog, info, downloadOptions{}, slog.New(slog.NewTextHandler(io.Discard, nil))); err == nil {
		t.Fatal("expected fatal error for empty catalog")
	}
}
