package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kaywahmatch/create-project/internal/defs"
	"github.com/kaywahmatch/create-project/internal/resilience"
)

// DefaultBaseURL serves repository tarballs.
const DefaultBaseURL = "https://codeload.github.com"

// Event codes emitted during a clone.
const (
	CodeDestNotEmpty = "DEST_NOT_EMPTY"
	CodeDestIsEmpty  = "DEST_IS_EMPTY"
	CodeUsingCache   = "USING_CACHE"
	CodeDownloading  = "DOWNLOADING"
	CodeExtracting   = "EXTRACTING"
	CodeFileWritten  = "FILE_WRITTEN"
	CodeLinkSkipped  = "LINK_SKIPPED"
	CodeSuccess      = "SUCCESS"
)

// Level grades an Event.
type Level string

const (
	LevelInfo  Level = "info"
	LevelDebug Level = "debug"
)

// Event is a progress notification of a clone.
type Event struct {
	Level   Level
	Code    string
	Message string
}

// EventFunc receives clone events.
type EventFunc func(Event)

// Options controls a single clone.
type Options struct {
	// Cache keeps the downloaded archive and reuses it on later clones.
	Cache bool
	// Force allows extracting into a non-empty destination.
	Force bool
	// Verbose emits a debug event per extracted entry.
	Verbose bool
}

// Client downloads and extracts repository archives.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cacheDir   string
	retry      resilience.Policy
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the archive host.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithCacheDir sets where archives are cached. Without it nothing is cached.
func WithCacheDir(dir string) ClientOption {
	return func(c *Client) { c.cacheDir = dir }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRetryPolicy sets how failed downloads are retried.
func WithRetryPolicy(p resilience.Policy) ClientOption {
	return func(c *Client) { c.retry = p }
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a Client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		baseURL:    DefaultBaseURL,
		retry:      resilience.DefaultPolicy(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Clone fetches src and extracts it into dest, creating dest if needed.
// Every failure is returned as an *Error.
func (c *Client) Clone(ctx context.Context, src, dest string, opts Options, onEvent EventFunc) error {
	emit := func(level Level, code, msg string) {
		if level == LevelDebug && !opts.Verbose {
			return
		}
		c.logger.Debug("fetch event", "code", code, "message", msg)
		if onEvent != nil {
			onEvent(Event{Level: level, Code: code, Message: msg})
		}
	}

	source, err := ParseSource(src)
	if err != nil {
		return &Error{Stage: StageSource, Source: src, Err: err}
	}
	fail := func(stage Stage, err error) error {
		return &Error{Stage: stage, Source: source.String(), Err: err}
	}

	empty, err := isEmptyDir(dest)
	if err != nil {
		return fail(StageDestination, err)
	}
	if !empty {
		if !opts.Force {
			return fail(StageDestination, ErrDestNotEmpty)
		}
		emit(LevelInfo, CodeDestNotEmpty, "destination directory is not empty. Using force, continuing")
	} else {
		emit(LevelInfo, CodeDestIsEmpty, "destination directory is empty")
	}

	archive, cleanup, err := c.archive(ctx, source, opts, emit)
	if err != nil {
		return fail(StageDownload, err)
	}
	defer cleanup()

	emit(LevelInfo, CodeExtracting, fmt.Sprintf("extracting %s to %s", source, dest))
	if err := os.MkdirAll(dest, defs.DirPerm); err != nil {
		return fail(StageExtract, err)
	}
	n, err := extract(ctx, archive, dest, source.Subdir, func(code, msg string) { emit(LevelDebug, code, msg) })
	if err != nil {
		return fail(StageExtract, err)
	}

	emit(LevelInfo, CodeSuccess, fmt.Sprintf("cloned %s to %s (%d files)", source, dest, n))
	return nil
}

// archive returns a local path to the source tarball, downloading it unless
// a cached copy can be used. cleanup removes uncached downloads.
func (c *Client) archive(ctx context.Context, s Source, opts Options, emit func(Level, string, string)) (string, func(), error) {
	noop := func() {}
	useCache := opts.Cache && c.cacheDir != ""

	var cached string
	if useCache {
		cached = filepath.Join(c.cacheDir, s.User, s.Repo, sanitizeRef(s.Ref)+".tar.gz")
		if info, err := os.Stat(cached); err == nil && info.Mode().IsRegular() {
			emit(LevelInfo, CodeUsingCache, fmt.Sprintf("using cached archive for %s", s))
			return cached, noop, nil
		}
	}

	url := s.ArchiveURL(c.baseURL)
	emit(LevelInfo, CodeDownloading, fmt.Sprintf("downloading %s", url))

	dir := os.TempDir()
	if useCache {
		dir = filepath.Dir(cached)
		if err := os.MkdirAll(dir, defs.DirPerm); err != nil {
			return "", noop, err
		}
	}
	tmp, err := os.CreateTemp(dir, "create-project-*.tar.gz")
	if err != nil {
		return "", noop, err
	}
	tmpName := tmp.Name()
	removeTmp := func() { _ = os.Remove(tmpName) }

	if err := c.downloadWithRetry(ctx, url, tmp); err != nil {
		_ = tmp.Close()
		removeTmp()
		return "", noop, err
	}
	if err := tmp.Close(); err != nil {
		removeTmp()
		return "", noop, err
	}

	if !useCache {
		return tmpName, removeTmp, nil
	}
	if err := os.Rename(tmpName, cached); err != nil {
		removeTmp()
		return "", noop, err
	}
	return cached, noop, nil
}

// downloadWithRetry retries transient failures, rewinding f before each
// attempt.
func (c *Client) downloadWithRetry(ctx context.Context, url string, f *os.File) error {
	policy := c.retry
	policy.OnRetry = func(attempt int, err error, delay time.Duration) {
		c.logger.Warn("archive download failed, retrying", "url", url, "attempt", attempt, "delay", delay, "error", err)
	}
	return resilience.Retry(ctx, policy, func() error {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return err
		}
		if err := f.Truncate(0); err != nil {
			return err
		}
		return c.download(ctx, url, f)
	})
}

func (c *Client) download(ctx context.Context, url string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{URL: url, Code: resp.StatusCode, Status: resp.Status}
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("GET %s: %w", url, err)
	}
	return nil
}

func isEmptyDir(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		return false, err
	}
	return len(entries) == 0, nil
}

func sanitizeRef(ref string) string {
	return strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(ref)
}
