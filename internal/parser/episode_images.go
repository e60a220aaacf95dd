package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ImageContainerID identifies the content region of an episode detail page
// that holds the page images, in reading order.
const ImageContainerID = "sectionContWide"

// ImageParser extracts page-image source URLs from an episode detail document.
type ImageParser struct {
	containerID string
}

// NewImageParser creates a parser bound to the detail page's image container.
func NewImageParser() *ImageParser {
	return &ImageParser{containerID: ImageContainerID}
}

// ParseHtml returns the src attribute of every image inside the content
// container, in document order. A document without the container yields an
// empty slice, not an error: Naver serves a placeholder page (no container)
// for episodes the session cannot view.
func (p *ImageParser) ParseHtml(body io.Reader) ([]string, error) {
	utf8Body, err := NewUTF8Reader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to detect charset: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(utf8Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	urls := []string{}
	doc.Find("#" + p.containerID + " img").Each(func(_ int, img *goquery.Selection) {
		src, exists := img.Attr("src")
		if !exists {
			return
		}
		src = strings.TrimSpace(src)
		if src != "" {
			urls = append(urls, src)
		}
	})

	return urls, nil
}
