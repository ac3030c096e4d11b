package plan

import (
	"fmt"
	"os"
	"path/filepath"

	"esvid/internal/language"
	"esvid/internal/selection"
	"esvid/internal/services"
	"esvid/internal/textutil"
)

// containerFormat is forced on every download so the result is always a
// playable file with a real extension, whatever the source containers were.
const containerFormat = "mp4"

// Request carries the run inputs the compiler needs besides the selection
// itself. Paths are expected to be absolute already.
type Request struct {
	URL            string
	Title          string
	OutputOverride string
	OutputDir      string
	CookieSource   string
	FFmpegLocation string
	Verbose        bool
}

// Plan is the compiled download command: one output path and the ordered
// argument list for the retrieval tool. Built once, consumed once.
type Plan struct {
	OutputPath string
	FormatExpr string
	Args       []string
}

// Compile resolves the output path and assembles the tool arguments from a
// frozen selection. Directory creation is the only I/O and the only failure
// mode here.
func Compile(sel selection.Selection, req Request) (*Plan, error) {
	outputPath, err := resolveOutputPath(req)
	if err != nil {
		return nil, err
	}

	expr := sel.Video.ID + "+bestaudio"
	if sel.HasAudio() {
		expr = sel.Video.ID + "+" + sel.AudioID
	}

	args := []string{req.URL}
	if req.FFmpegLocation != "" {
		args = append(args, "--ffmpeg-location", req.FFmpegLocation)
	}
	if req.CookieSource != "" {
		args = append(args, "--cookies-from-browser", req.CookieSource)
	}
	if req.Verbose {
		args = append(args, "--verbose")
	}
	args = append(args, "-f", expr)
	if sel.HasSubtitle() {
		args = append(args, "--write-subs", "--embed-subs", "--sub-langs", sel.SubtitleLang)
	}
	args = append(args, "--merge-output-format", containerFormat)
	args = append(args, "-o", outputPath)

	return &Plan{OutputPath: outputPath, FormatExpr: expr, Args: args}, nil
}

func resolveOutputPath(req Request) (string, error) {
	if req.OutputOverride != "" {
		parent := filepath.Dir(req.OutputOverride)
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return "", services.Wrap(services.ErrConfiguration, "plan", "output", fmt.Sprintf("create %q", parent), err)
		}
		return req.OutputOverride, nil
	}

	name := textutil.SanitizeFileName(req.Title)
	if name == "" {
		name = "video"
	}
	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrConfiguration, "plan", "output", fmt.Sprintf("create %q", req.OutputDir), err)
	}
	return filepath.Join(req.OutputDir, name+"."+containerFormat), nil
}

// Summary renders the human-readable selection lines shown before the
// download starts.
func Summary(sel selection.Selection) []string {
	lines := []string{
		fmt.Sprintf("Video: %s (%s)", sel.Video.FormatNote, sel.Video.ID),
	}
	if sel.HasAudio() {
		lang := sel.AudioLang
		if lang == "" {
			lang = "n/a"
		}
		lines = append(lines, fmt.Sprintf("Audio: %s (%s) - %s", lang, sel.AudioID, sel.AudioNote))
	} else {
		lines = append(lines, fmt.Sprintf("Audio: %s Falling back to best available at mux time.", sel.AudioNote))
	}
	if sel.HasSubtitle() {
		lines = append(lines, fmt.Sprintf("Subtitle: %s (%s, %s, %s)",
			language.DisplayName(sel.SubtitleLang), sel.SubtitleLang, sel.SubtitleExt, sel.SubtitleOrigin))
	} else {
		lines = append(lines, "Subtitle: none")
	}
	return lines
}
