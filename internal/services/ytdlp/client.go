package ytdlp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"esvid/internal/media"
	"esvid/internal/services"
)

var commandContext = exec.CommandContext

// Client defines the retrieval tool behaviour the pipeline depends on.
type Client interface {
	FetchInfo(ctx context.Context, url string, browsers []string) (*media.Info, string, error)
	Download(ctx context.Context, args []string, onLine func(string)) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithLogger attaches a logger for cookie-retry diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *CLI) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// CLI wraps the yt-dlp command-line tool.
type CLI struct {
	binary string
	logger *slog.Logger
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "yt-dlp", logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// FetchInfo dumps the metadata document for a URL. Each named browser is
// tried as a cookie source in order; the first success wins and its name is
// returned alongside the document. When every source fails the fetch runs
// once more without cookies. The retry loop is resilience, not user-visible
// error handling: only total exhaustion surfaces an error.
func (c *CLI) FetchInfo(ctx context.Context, url string, browsers []string) (*media.Info, string, error) {
	if url == "" {
		return nil, "", errors.New("url required")
	}

	for _, browser := range browsers {
		info, err := c.dumpJSON(ctx, url, browser)
		if err == nil {
			c.logger.Debug("fetched metadata with browser cookies", "browser", browser)
			return info, browser, nil
		}
		if ctx.Err() != nil {
			return nil, "", ctx.Err()
		}
		c.classifyCookieFailure(browser, err)
	}

	info, err := c.dumpJSON(ctx, url, "")
	if err != nil {
		return nil, "", services.Wrap(services.ErrExternalTool, "ytdlp", "fetch-info", "could not fetch video info", err)
	}
	if len(browsers) > 0 {
		c.logger.Warn("all browser cookie sources failed, fetched without cookies")
	}
	return info, "", nil
}

func (c *CLI) dumpJSON(ctx context.Context, url, browser string) (*media.Info, error) {
	args := []string{"--dump-json"}
	if browser != "" {
		args = append(args, "--cookies-from-browser", browser)
	}
	args = append(args, url)

	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	output, err := cmd.Output()
	if err != nil {
		return nil, err
	}

	var info media.Info
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	return &info, nil
}

func (c *CLI) classifyCookieFailure(browser string, err error) {
	detail := err.Error()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		detail = string(exitErr.Stderr)
	}
	switch {
	case strings.Contains(detail, "Unable to find a suitable cookie file"):
		c.logger.Debug("no cookie file for browser", "browser", browser)
	case strings.Contains(detail, "PermissionError"):
		c.logger.Warn("permission denied reading browser cookies", "browser", browser)
	default:
		c.logger.Debug("cookie source failed", "browser", browser, "error", strings.TrimSpace(detail))
	}
}

// Download launches yt-dlp with a compiled argument list and forwards every
// output line to the callback as it arrives. Output is passed through, not
// buffered, so long downloads stay bounded.
func (c *CLI) Download(ctx context.Context, args []string, onLine func(string)) error {
	if len(args) == 0 {
		return errors.New("arguments required")
	}

	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start yt-dlp: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if onLine != nil {
			onLine(scanner.Text())
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read yt-dlp output: %w", err)
	}

	if err := cmd.Wait(); err != nil {
		return services.Wrap(services.ErrExternalTool, "ytdlp", "download", "yt-dlp exited with an error", err)
	}
	return nil
}

var _ Client = (*CLI)(nil)
