package deps

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/gofrs/flock"
	"github.com/schollz/progressbar/v3"
)

var httpClient = &http.Client{Timeout: 10 * time.Minute}

// ytdlpReleaseURL returns the latest-release download URL for the current
// platform, or empty when no prebuilt binary exists.
func ytdlpReleaseURL() string {
	switch runtime.GOOS {
	case "windows":
		return "https://github.com/yt-dlp/yt-dlp/releases/latest/download/yt-dlp.exe"
	case "linux":
		return "https://github.com/yt-dlp/yt-dlp/releases/latest/download/yt-dlp"
	case "darwin":
		return "https://github.com/yt-dlp/yt-dlp/releases/latest/download/yt-dlp_macos"
	default:
		return ""
	}
}

// EnsureYtdlp resolves a usable yt-dlp binary: PATH first, then the cache,
// then a fresh download of the latest release.
func EnsureYtdlp(ctx context.Context, binDir string) (string, error) {
	binary := executableName("yt-dlp")
	if path, err := exec.LookPath(binary); err == nil {
		return path, nil
	}
	cached := filepath.Join(binDir, binary)
	if info, err := os.Stat(cached); err == nil && isExecutable(info) {
		return cached, nil
	}

	url := ytdlpReleaseURL()
	if url == "" {
		return "", fmt.Errorf("no yt-dlp build available for %s, install it manually", runtime.GOOS)
	}

	unlock, err := lockBinDir(binDir)
	if err != nil {
		return "", err
	}
	defer unlock()

	// Another process may have finished the install while we waited.
	if info, err := os.Stat(cached); err == nil && isExecutable(info) {
		return cached, nil
	}
	if err := downloadFile(ctx, url, cached, "yt-dlp"); err != nil {
		return "", fmt.Errorf("install yt-dlp: %w", err)
	}
	return cached, nil
}

// EnsureFFmpeg resolves a usable ffmpeg binary: PATH first, then the cache,
// then a static-build download extracted into the cache.
func EnsureFFmpeg(ctx context.Context, binDir string) (string, error) {
	binary := executableName("ffmpeg")
	if path, err := exec.LookPath(binary); err == nil {
		return path, nil
	}
	cached := filepath.Join(binDir, binary)
	if info, err := os.Stat(cached); err == nil && isExecutable(info) {
		return cached, nil
	}

	unlock, err := lockBinDir(binDir)
	if err != nil {
		return "", err
	}
	defer unlock()

	if info, err := os.Stat(cached); err == nil && isExecutable(info) {
		return cached, nil
	}
	if err := installFFmpeg(ctx, binDir); err != nil {
		return "", fmt.Errorf("install ffmpeg: %w", err)
	}
	return cached, nil
}

// lockBinDir serializes installs across concurrent runs sharing one cache.
func lockBinDir(binDir string) (func(), error) {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return nil, fmt.Errorf("create bin directory: %w", err)
	}
	lock := flock.New(filepath.Join(binDir, ".install.lock"))
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("lock bin directory: %w", err)
	}
	return func() { _ = lock.Unlock() }, nil
}

func installFFmpeg(ctx context.Context, binDir string) error {
	switch runtime.GOOS {
	case "windows":
		return installFFmpegZip(ctx, binDir,
			"https://github.com/BtbN/FFmpeg-Builds/releases/latest/download/ffmpeg-master-latest-win64-gpl.zip")
	case "linux":
		return installFFmpegTarXz(ctx, binDir,
			"https://github.com/BtbN/FFmpeg-Builds/releases/latest/download/ffmpeg-master-latest-linux64-gpl.tar.xz")
	default:
		return fmt.Errorf("no static ffmpeg build for %s, install it manually", runtime.GOOS)
	}
}

func installFFmpegZip(ctx context.Context, binDir, url string) error {
	archivePath := filepath.Join(binDir, "ffmpeg-download.zip")
	if err := downloadFile(ctx, url, archivePath, "ffmpeg"); err != nil {
		return err
	}
	defer os.Remove(archivePath)

	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer reader.Close()

	target := executableName("ffmpeg")
	for _, member := range reader.File {
		if member.FileInfo().IsDir() || filepath.Base(member.Name) != target {
			continue
		}
		src, err := member.Open()
		if err != nil {
			return fmt.Errorf("read archive member: %w", err)
		}
		defer src.Close()

		destPath := filepath.Join(binDir, target)
		dest, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o755)
		if err != nil {
			return err
		}
		if _, err := io.Copy(dest, src); err != nil {
			dest.Close()
			os.Remove(destPath)
			return fmt.Errorf("extract %s: %w", target, err)
		}
		return dest.Close()
	}
	return fmt.Errorf("%s not found in archive", target)
}

func installFFmpegTarXz(ctx context.Context, binDir, url string) error {
	archivePath := filepath.Join(binDir, "ffmpeg-download.tar.xz")
	if err := downloadFile(ctx, url, archivePath, "ffmpeg"); err != nil {
		return err
	}
	defer os.Remove(archivePath)

	extractDir := filepath.Join(binDir, "ffmpeg-extract")
	if err := os.MkdirAll(extractDir, 0o755); err != nil {
		return err
	}
	defer os.RemoveAll(extractDir)

	// The static builds ship as tar.xz; delegate decompression to tar.
	cmd := exec.CommandContext(ctx, "tar", "xf", archivePath, "-C", extractDir)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("extract archive (is tar installed?): %w", err)
	}

	found := false
	err := filepath.WalkDir(extractDir, func(path string, entry os.DirEntry, err error) error {
		if err != nil || entry.IsDir() || entry.Name() != "ffmpeg" {
			return err
		}
		destPath := filepath.Join(binDir, "ffmpeg")
		if err := os.Rename(path, destPath); err != nil {
			return fmt.Errorf("move ffmpeg into cache: %w", err)
		}
		if err := os.Chmod(destPath, 0o755); err != nil {
			return err
		}
		found = true
		return filepath.SkipAll
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("ffmpeg not found in archive")
	}
	return nil
}

// downloadFile fetches url into destPath via a temp file, showing a progress
// bar on stderr.
func downloadFile(ctx context.Context, url, destPath, label string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", label, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: unexpected status %d", label, resp.StatusCode)
	}

	tmpPath := destPath + ".download"
	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o755)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	bar := progressbar.DefaultBytes(resp.ContentLength, "downloading "+label)
	_, copyErr := io.Copy(io.MultiWriter(file, bar), resp.Body)
	closeErr := file.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("download %s: %w", label, copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return closeErr
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("finalize %s: %w", label, err)
	}
	return nil
}
