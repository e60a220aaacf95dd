package models

// TitleMetadata describes a webtoon title as reported by the info and list
// endpoints. The three paging fields are set together or nil together: they
// stay nil exactly when IsAdult is true, because the paginated list API
// rejects age-restricted titles without session credentials.
type TitleMetadata struct {
	TitleID    int    `json:"titleId"`
	TitleName  string `json:"titleName"`
	IsAdult    bool   `json:"isAdult"`
	TotalCount *int   `json:"totalCount,omitempty"`
	PageSize   *int   `json:"pageSize,omitempty"`
	TotalPages *int   `json:"totalPages,omitempty"`
}

// HasPaging reports whether the paging trio was resolved.
func (m *TitleMetadata) HasPaging() bool {
	return m.TotalCount != nil && m.PageSize != nil && m.TotalPages != nil
}
