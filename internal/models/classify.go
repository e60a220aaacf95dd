package models

// DownloadablePrefix scans episodes from the lowest No upward and returns the
// prefix before the first thumbnail-locked episode, along with its length.
// The first lock wins: lock states after it are never inspected, even if later
// episodes happen to be unlocked again. Callers must pass a slice already
// sorted ascending by No; unsorted input is accepted silently.
func DownloadablePrefix(episodes []Episode) (int, []Episode) {
	downloadable := make([]Episode, 0, len(episodes))
	for _, ep := range episodes {
		if ep.ThumbnailLock {
			break
		}
		downloadable = append(downloadable, ep)
	}
	return len(downloadable), downloadable
}
