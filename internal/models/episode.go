package models

// Episode represents one installment of a webtoon title.
type Episode struct {
	No            int      `json:"no"`
	Subtitle      string   `json:"subtitle"`
	ThumbnailLock bool     `json:"thumbnailLock"`
	ImageURLs     []string `json:"imageUrls"`
}

// EpisodeImages carries the image URLs extracted from one episode's detail
// page, joined back to its Episode by No. Extraction results are returned as
// fresh values instead of being written into a shared Episode, so concurrent
// extractions never alias.
type EpisodeImages struct {
	No   int      `json:"no"`
	URLs []string `json:"urls"`
}
