package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Requirement defines an external dependency esvid relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the dependency set for a run. binDir is consulted as
// a fallback location for binaries absent from PATH.
func Requirements(binDir string) []Requirement {
	return []Requirement{
		{Name: "yt-dlp", Command: resolveCommand("yt-dlp", binDir), Description: "Fetches metadata and downloads streams"},
		{Name: "FFmpeg", Command: resolveCommand("ffmpeg", binDir), Description: "Muxes video, audio, and subtitles"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if filepath.IsAbs(cmd) {
			info, err := os.Stat(cmd)
			if err != nil || !isExecutable(info) {
				status.Available = false
				status.Detail = fmt.Sprintf("binary %q not found", cmd)
				results = append(results, status)
				continue
			}
		} else if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// resolveCommand prefers PATH, then the cache bin directory, and falls back
// to the bare name so status output can still show what was looked for.
func resolveCommand(name, binDir string) string {
	binary := executableName(name)
	if path, err := exec.LookPath(binary); err == nil {
		return path
	}
	if binDir != "" {
		cached := filepath.Join(binDir, binary)
		if info, err := os.Stat(cached); err == nil && isExecutable(info) {
			return cached
		}
	}
	return binary
}

func executableName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
