package parser

import (
	"io"

	"golang.org/x/net/html/charset"
)

// NewUTF8Reader wraps an io.Reader with automatic character encoding detection
// and conversion to UTF-8. Older detail pages still declare EUC-KR, so the
// document is normalized before it reaches goquery.
//
// The charset is detected from:
// 1. HTML <meta charset="..."> or <meta http-equiv="Content-Type"> tags
// 2. Byte order marks (BOM)
// 3. Heuristic detection if neither is present
//
// If the content is already UTF-8, this is a no-op wrapper with minimal overhead.
func NewUTF8Reader(body io.Reader) (io.Reader, error) {
	// contentType is empty because we want it to detect from the HTML content itself
	return charset.NewReader(body, "")
}
