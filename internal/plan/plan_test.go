package plan_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"esvid/internal/media"
	"esvid/internal/plan"
	"esvid/internal/selection"
)

func baseSelection() selection.Selection {
	return selection.Selection{
		Video: media.Format{ID: "137", FormatNote: "1080p", Height: 1080},
	}
}

func TestCompilePairsVideoAndAudio(t *testing.T) {
	sel := baseSelection()
	sel.AudioID = "140"
	sel.AudioLang = "es"
	sel.AudioNote = "Found explicitly tagged Spanish audio."

	p, err := plan.Compile(sel, plan.Request{
		URL:       "https://www.youtube.com/watch?v=abc",
		Title:     "Mi Película",
		OutputDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if p.FormatExpr != "137+140" {
		t.Fatalf("unexpected format expression: %q", p.FormatExpr)
	}
	if !strings.HasSuffix(p.OutputPath, "Mi Película.mp4") {
		t.Fatalf("unexpected output path: %q", p.OutputPath)
	}
	joined := strings.Join(p.Args, " ")
	if !strings.Contains(joined, "-f 137+140") {
		t.Fatalf("format selector missing: %v", p.Args)
	}
	if !strings.Contains(joined, "--merge-output-format mp4") {
		t.Fatalf("container must be forced to mp4: %v", p.Args)
	}
	if strings.Contains(joined, "--embed-subs") {
		t.Fatalf("no subtitle directives expected: %v", p.Args)
	}
}

func TestCompileDelegatesAudioWhenUnselected(t *testing.T) {
	sel := baseSelection()
	sel.AudioNote = "No Spanish audio found."

	p, err := plan.Compile(sel, plan.Request{URL: "u", Title: "t", OutputDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if p.FormatExpr != "137+bestaudio" {
		t.Fatalf("unexpected format expression: %q", p.FormatExpr)
	}
}

func TestCompileSubtitleDirectives(t *testing.T) {
	sel := baseSelection()
	sel.SubtitleLang = "es-419"
	sel.SubtitleExt = "vtt"
	sel.SubtitleOrigin = media.OriginAuto

	p, err := plan.Compile(sel, plan.Request{URL: "u", Title: "t", OutputDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	joined := strings.Join(p.Args, " ")
	if !strings.Contains(joined, "--write-subs --embed-subs --sub-langs es-419") {
		t.Fatalf("subtitle directives missing: %v", p.Args)
	}
}

func TestCompileOutputOverrideCreatesParent(t *testing.T) {
	override := filepath.Join(t.TempDir(), "nested", "dir", "out.mp4")

	p, err := plan.Compile(baseSelection(), plan.Request{URL: "u", OutputOverride: override})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if p.OutputPath != override {
		t.Fatalf("override must win: %q", p.OutputPath)
	}
	if _, err := os.Stat(filepath.Dir(override)); err != nil {
		t.Fatalf("parent directory not created: %v", err)
	}
}

func TestCompileCookieAndVerboseDirectives(t *testing.T) {
	p, err := plan.Compile(baseSelection(), plan.Request{
		URL:            "u",
		Title:          "t",
		OutputDir:      t.TempDir(),
		CookieSource:   "firefox",
		FFmpegLocation: "/opt/ffmpeg/bin",
		Verbose:        true,
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	joined := strings.Join(p.Args, " ")
	for _, want := range []string{"--cookies-from-browser firefox", "--ffmpeg-location /opt/ffmpeg/bin", "--verbose"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing %q in %v", want, p.Args)
		}
	}
}

func TestCompileUntitledFallback(t *testing.T) {
	p, err := plan.Compile(baseSelection(), plan.Request{URL: "u", Title: "???", OutputDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !strings.HasSuffix(p.OutputPath, "video.mp4") {
		t.Fatalf("expected fallback name, got %q", p.OutputPath)
	}
}

func TestSummaryLines(t *testing.T) {
	sel := baseSelection()
	sel.AudioID = "140"
	sel.AudioLang = "es"
	sel.AudioNote = "Found explicitly tagged Spanish audio."
	sel.SubtitleLang = "es"
	sel.SubtitleExt = "srt"
	sel.SubtitleOrigin = media.OriginManual

	lines := plan.Summary(sel)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %v", lines)
	}
	if !strings.Contains(lines[0], "1080p") || !strings.Contains(lines[0], "137") {
		t.Fatalf("video line: %q", lines[0])
	}
	if !strings.Contains(lines[1], "explicitly tagged") {
		t.Fatalf("audio line must carry provenance: %q", lines[1])
	}
	if !strings.Contains(lines[2], "Spanish") {
		t.Fatalf("subtitle line: %q", lines[2])
	}
}
