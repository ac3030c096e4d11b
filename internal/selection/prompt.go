package selection

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"esvid/internal/language"
	"esvid/internal/media"
)

// Chooser runs the interactive numeric-choice protocol: print an enumerated
// candidate table, block for one line of input, and loop until the line is
// "0" (skip) or a number within range. There is no retry limit; the loop is
// driven by a human.
type Chooser struct {
	in  *bufio.Reader
	out io.Writer
}

// NewChooser wraps an input stream and an output stream, normally stdin and
// stdout.
func NewChooser(in io.Reader, out io.Writer) *Chooser {
	return &Chooser{in: bufio.NewReader(in), out: out}
}

// ChooseAudio presents audio candidates sorted by language then bitrate and
// returns the chosen track, or nil when the user skips.
func (c *Chooser) ChooseAudio(candidates []media.Format) (*media.Format, error) {
	if len(candidates) == 0 {
		fmt.Fprintln(c.out, "No audio tracks to choose from.")
		return nil, nil
	}

	sorted := make([]media.Format, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Language != b.Language {
			return a.Language < b.Language
		}
		return a.TBR > b.TBR
	})

	tw := newCandidateTable(c.out, "Language", "Bitrate", "Size", "Note")
	for i, f := range sorted {
		tw.AppendRow(table.Row{i + 1, audioLanguageCell(f), bitrateCell(f), sizeCell(f), f.FormatNote})
	}
	tw.Render()

	idx, err := c.choose("Audio track", len(sorted))
	if err != nil || idx < 0 {
		return nil, err
	}
	return &sorted[idx], nil
}

// ChooseSubtitle presents the merged subtitle candidates and returns the
// chosen one, or nil when the user skips.
func (c *Chooser) ChooseSubtitle(candidates []media.SubtitleCandidate) (*media.SubtitleCandidate, error) {
	if len(candidates) == 0 {
		fmt.Fprintln(c.out, "No subtitle tracks to choose from.")
		return nil, nil
	}

	tw := newCandidateTable(c.out, "Language", "Format", "Source")
	for i, s := range candidates {
		tw.AppendRow(table.Row{i + 1, fmt.Sprintf("%s (%s)", language.DisplayName(s.Lang), s.Lang), s.Ext, s.Origin})
	}
	tw.Render()

	idx, err := c.choose("Subtitle", len(candidates))
	if err != nil || idx < 0 {
		return nil, err
	}
	return &candidates[idx], nil
}

// choose reads lines until one parses as 0 (skip, returned as -1) or as an
// index in [1, count] (returned 0-based). EOF counts as a skip so a closed
// stdin cannot spin the loop.
func (c *Chooser) choose(label string, count int) (int, error) {
	for {
		fmt.Fprintf(c.out, "%s [1-%d], or 0 to skip: ", label, count)
		line, err := c.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return -1, fmt.Errorf("read choice: %w", err)
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(c.out, "skipped")
				return -1, nil
			}
			fmt.Fprintln(c.out, "Please enter a number.")
			continue
		}
		choice, convErr := strconv.Atoi(trimmed)
		if convErr != nil {
			fmt.Fprintf(c.out, "%q is not a number.\n", trimmed)
			continue
		}
		if choice == 0 {
			return -1, nil
		}
		if choice < 1 || choice > count {
			fmt.Fprintf(c.out, "Choice must be between 1 and %d.\n", count)
			continue
		}
		return choice - 1, nil
	}
}

func newCandidateTable(out io.Writer, columns ...string) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetStyle(table.StyleRounded)
	header := make(table.Row, 0, len(columns)+1)
	header = append(header, "#")
	for _, col := range columns {
		header = append(header, col)
	}
	tw.AppendHeader(header)
	return tw
}

func audioLanguageCell(f media.Format) string {
	if strings.TrimSpace(f.Language) == "" {
		return "unknown"
	}
	return fmt.Sprintf("%s (%s)", language.DisplayName(f.Language), f.Language)
}

func bitrateCell(f media.Format) string {
	if f.TBR <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f kbps", f.TBR)
}

func sizeCell(f media.Format) string {
	if f.Filesize <= 0 {
		return "-"
	}
	return humanize.IBytes(uint64(f.Filesize))
}
