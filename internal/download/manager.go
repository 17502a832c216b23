package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/kestrel-mc/corelaunch/internal/core"
	"github.com/kestrel-mc/corelaunch/internal/corelog"
	hashpkg "github.com/kestrel-mc/corelaunch/internal/hash"
)

// UserAgent identifies this module's own HTTP client to upstream services,
// matching the original's "<project>/<version>" convention.
const UserAgent = "corelaunch/1.0"

// maxRedirects is the redirect cap the shared client enforces.
const maxRedirects = 10

// Progress tracks a batch download's aggregate progress.
type Progress struct {
	TotalBytes      int64
	DownloadedBytes int64
	TotalItems      int
	CompletedItems  int
	CurrentItem     string
	Speed           float64 // bytes per second
}

// FormatSpeed renders bytes/sec the way the teacher's UI does.
func FormatSpeed(bytesPerSec float64) string {
	return humanize.Bytes(uint64(bytesPerSec)) + "/s"
}

// Engine is the shared downloader: one retrying HTTP client honoring the
// Downloadable four-step contract, plus a worker pool for batches.
type Engine struct {
	httpClient  *http.Client
	workerCount int
	log         *log.Logger
}

// NewEngine builds an Engine with workerCount parallel workers for batch
// installs (4 if workerCount <= 0) and the teacher's retry/backoff policy.
func NewEngine(workerCount int, logger *log.Logger) *Engine {
	if workerCount <= 0 {
		workerCount = 4
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 10 * time.Second
	retryClient.Logger = nil

	retryClient.HTTPClient.Transport = &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	retryClient.HTTPClient.Timeout = 5 * time.Minute
	retryClient.HTTPClient.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return fmt.Errorf("download: stopped after %d redirects", maxRedirects)
		}
		return nil
	}

	return &Engine{
		httpClient:  retryClient.StandardClient(),
		workerCount: workerCount,
		log:         corelog.Default(logger),
	}
}

// HTTPClient exposes the underlying client for callers (the credentials
// pipeline, the manifest fetchers) that need the same retry/redirect
// policy but aren't fetching a Downloadable.
func (e *Engine) HTTPClient() *http.Client {
	return e.httpClient
}

// Fetch implements the four-step Downloadable contract:
//  1. custom download procedure, if declared;
//  2. skip if the local file already matches the declared hash;
//  3. no-op for about:blank;
//  4. otherwise GET the body and write it to FilePath, verifying any hash
//     after the write and failing explicitly on mismatch.
func (e *Engine) Fetch(ctx context.Context, d Downloadable, gameVersion string) error {
	if d.RequiresCustomDownload() {
		return d.CustomDownload(ctx, gameVersion)
	}

	path := d.FilePath(gameVersion)
	if want, ok := d.Hash(); ok {
		if match, err := hashpkg.VerifyFile(path, want); err == nil && match {
			e.log.Debug("artifact already verified, skipping", "path", path)
			return nil
		}
	}

	downloadURL := d.DownloadURL()
	if downloadURL == AboutBlank {
		return nil
	}
	if _, err := url.Parse(downloadURL); err != nil {
		return fmt.Errorf("download: invalid URL %q: %w", downloadURL, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("download: creating directory for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return fmt.Errorf("download: building request for %s: %w", downloadURL, err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return &core.DownloadError{URL: downloadURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &core.DownloadError{URL: downloadURL, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("download: creating %s: %w", tmpPath, err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("download: writing %s: %w", tmpPath, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("download: closing %s: %w", tmpPath, err)
	}

	if want, ok := d.Hash(); ok {
		match, err := hashpkg.VerifyFile(tmpPath, want)
		if err != nil {
			os.Remove(tmpPath)
			return fmt.Errorf("download: verifying %s: %w", tmpPath, err)
		}
		if !match {
			os.Remove(tmpPath)
			return fmt.Errorf("download: hash mismatch for %s after download", downloadURL)
		}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("download: renaming %s to %s: %w", tmpPath, path, err)
	}
	e.log.Info("downloaded artifact", "url", downloadURL, "path", path)
	return nil
}

// Result summarizes a batch run.
type Result struct {
	Completed int
	Failed    int
	Errors    []error
}

// FetchAll downloads every Downloadable, fanning out across the worker pool
// and optionally reporting aggregate Progress on progressChan every 100ms.
func (e *Engine) FetchAll(ctx context.Context, items []Downloadable, gameVersion string, progressChan chan<- Progress) (*Result, error) {
	if len(items) == 0 {
		return &Result{}, nil
	}

	var totalSize int64
	for _, item := range items {
		if sz, ok := item.Size(); ok {
			totalSize += sz
		}
	}

	var (
		downloadedBytes int64
		completed       int64
		failed          int64
		errMu           sync.Mutex
		errs            []error
		mu              sync.RWMutex
		currentItem     string
	)

	workChan := make(chan Downloadable, len(items))
	for _, item := range items {
		workChan <- item
	}
	close(workChan)

	doneSignal := make(chan struct{})
	progressDone := make(chan struct{})
	if progressChan != nil {
		go func() {
			defer close(progressDone)
			ticker := time.NewTicker(100 * time.Millisecond)
			defer ticker.Stop()

			var lastBytes int64
			lastTime := time.Now()
			for {
				select {
				case <-ctx.Done():
					return
				case <-doneSignal:
					return
				case <-ticker.C:
					now := time.Now()
					bytes := atomic.LoadInt64(&downloadedBytes)
					elapsed := now.Sub(lastTime).Seconds()
					var speed float64
					if elapsed > 0 {
						speed = float64(bytes-lastBytes) / elapsed
						lastBytes = bytes
						lastTime = now
					}
					mu.RLock()
					item := currentItem
					mu.RUnlock()
					p := Progress{
						TotalBytes:      totalSize,
						DownloadedBytes: bytes,
						TotalItems:      len(items),
						CompletedItems:  int(atomic.LoadInt64(&completed)),
						CurrentItem:     item,
						Speed:           speed,
					}
					select {
					case progressChan <- p:
					default:
					}
				}
			}
		}()
	} else {
		close(progressDone)
	}

	var wg sync.WaitGroup
	for i := 0; i < e.workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range workChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				mu.Lock()
				currentItem = filepath.Base(item.FilePath(gameVersion))
				mu.Unlock()

				before := fileSize(item.FilePath(gameVersion))
				if err := e.Fetch(ctx, item, gameVersion); err != nil {
					atomic.AddInt64(&failed, 1)
					errMu.Lock()
					errs = append(errs, fmt.Errorf("%s: %w", item.DownloadURL(), err))
					errMu.Unlock()
					continue
				}
				after := fileSize(item.FilePath(gameVersion))
				if after > before {
					atomic.AddInt64(&downloadedBytes, after-before)
				}
				atomic.AddInt64(&completed, 1)
			}
		}()
	}

	wg.Wait()
	close(doneSignal)
	<-progressDone

	return &Result{
		Completed: int(completed),
		Failed:    int(failed),
		Errors:    errs,
	}, nil
}

func fileSize(path string) int64 {
	st, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return st.Size()
}
