// Package fetch retrieves content for classification from local files,
// URLs, and standard input.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Size limits keep a misbehaving source from exhausting memory; text worth
// classifying is small.
const (
	MaxFileSizeBytes = 10 * 1024 * 1024 // local files and stdin
	MaxHTTPSizeBytes = 20 * 1024 * 1024 // HTTP bodies, which may lack Content-Length
)

// RequestTimeout bounds a whole HTTP fetch.
const RequestTimeout = 30 * time.Second

// httpClient is shared across fetches and safe for concurrent use.
var httpClient = &http.Client{
	Timeout: RequestTimeout,
	Transport: &http.Transport{
		Dial: (&net.Dialer{
			Timeout: RequestTimeout / 6,
		}).Dial,
		TLSHandshakeTimeout:   RequestTimeout / 6,
		ResponseHeaderTimeout: RequestTimeout / 2,
		DisableKeepAlives:     true,
	},
}

// boundedReader wraps an io.ReadCloser and fails once the size limit is hit.
type boundedReader struct {
	io.ReadCloser
	remaining int64
	source    string
}

func (b *boundedReader) Read(p []byte) (int, error) {
	if b.remaining <= 0 {
		return 0, fmt.Errorf("content from %q exceeds size limit", b.source)
	}
	if int64(len(p)) > b.remaining {
		p = p[:b.remaining]
	}
	n, err := b.ReadCloser.Read(p)
	b.remaining -= int64(n)
	return n, err
}

// Open resolves a source argument to a readable stream:
//   - "-" reads standard input
//   - "http://" and "https://" prefixes fetch over HTTP
//   - anything else is a local file path
//
// ctx cancels in-flight HTTP requests; local reads are not cancellable.
func Open(ctx context.Context, source string) (io.ReadCloser, error) {
	switch {
	case source == "-":
		return &boundedReader{ReadCloser: os.Stdin, remaining: MaxFileSizeBytes, source: "stdin"}, nil
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		return openURL(ctx, source)
	default:
		return openFile(source)
	}
}

func openURL(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %q: %w", url, err)
	}
	req.Header.Set("User-Agent", "vitriol/0.1")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %q: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("request for %q failed: status %s", url, resp.Status)
	}

	// reject obviously oversized bodies up front when the server tells us
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		if size, err := strconv.ParseInt(cl, 10, 64); err == nil && size > MaxHTTPSizeBytes {
			resp.Body.Close()
			return nil, fmt.Errorf("content at %q too large (%d bytes)", url, size)
		}
	}

	return &boundedReader{ReadCloser: resp.Body, remaining: MaxHTTPSizeBytes, source: url}, nil
}

func openFile(path string) (io.ReadCloser, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file %q does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to access file %q: %w", path, err)
	}
	if info.Size() > MaxFileSizeBytes {
		return nil, fmt.Errorf("file %q too large (%d bytes)", path, info.Size())
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}
	return f, nil
}
