package models

// Analysis is the read-only result of analyzing one title: the full episode
// list sorted ascending by No, and how many episodes from the front are
// freely viewable.
type Analysis struct {
	TitleID           int       `json:"titleId"`
	TitleName         string    `json:"titleName"`
	TotalCount        int       `json:"totalCount"`
	DownloadableCount int       `json:"downloadableCount"`
	Episodes          []Episode `json:"episodes"`
}

// LockedEpisodes returns the episodes whose thumbnail is access-restricted.
func (a *Analysis) LockedEpisodes() []Episode {
	var locked []Episode
	for _, ep := range a.Episodes {
		if ep.ThumbnailLock {
			locked = append(locked, ep)
		}
	}
	return locked
}
