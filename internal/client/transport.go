package client

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// webtoonTransport stamps the fixed request header set (User-Agent, Referer,
// Accept-Encoding) onto every outgoing request and transparently decompresses
// gzip, brotli and zstd response bodies. The platform serves compressed JSON
// and HTML, and rejects requests without browser-like headers.
type webtoonTransport struct {
	base      http.RoundTripper
	userAgent string
	referer   string
}

func newWebtoonTransport(base http.RoundTripper, userAgent, referer string) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &webtoonTransport{
		base:      base,
		userAgent: userAgent,
		referer:   referer,
	}
}

// RoundTrip executes a single HTTP transaction with the platform headers set,
// returning a response whose body is already decoded.
func (t *webtoonTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = cloneRequest(req)

	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	if req.Header.Get("Referer") == "" && t.referer != "" {
		req.Header.Set("Referer", t.referer)
	}
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", "gzip, br, zstd")
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// Nothing to decode for bodiless responses (HEAD, 204, 304).
	if resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	encoding := lastContentEncoding(resp.Header.Get("Content-Encoding"))
	var reader io.ReadCloser
	switch encoding {
	case "":
		return resp, nil
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, err
		}
		reader = gz
	case "br":
		reader = io.NopCloser(brotli.NewReader(resp.Body))
	case "zstd":
		zr, err := zstd.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, err
		}
		reader = zr.IOReadCloser()
	default:
		// Unknown encoding, return response as-is
		return resp, nil
	}

	resp.Body = &decodedBody{reader: reader, original: resp.Body}

	// The decoded stream invalidates the encoding and length headers.
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1

	return resp, nil
}

// decodedBody closes both the decompressor and the underlying network body.
type decodedBody struct {
	reader   io.ReadCloser
	original io.ReadCloser
}

func (d *decodedBody) Read(p []byte) (int, error) {
	return d.reader.Read(p)
}

func (d *decodedBody) Close() error {
	readerErr := d.reader.Close()
	bodyErr := d.original.Close()
	if readerErr != nil {
		return readerErr
	}
	return bodyErr
}

// cloneRequest creates a shallow copy of the request with deep-copied headers
// so the caller's request is never mutated.
func cloneRequest(req *http.Request) *http.Request {
	r := new(http.Request)
	*r = *req

	r.Header = make(http.Header, len(req.Header))
	for k, v := range req.Header {
		r.Header[k] = append([]string(nil), v...)
	}

	return r
}

// lastContentEncoding extracts the outermost encoding from a Content-Encoding
// header, handling comma-separated lists and whitespace. The outermost
// encoding is applied last and must be removed first.
func lastContentEncoding(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}

	parts := strings.Split(header, ",")
	return strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
}
