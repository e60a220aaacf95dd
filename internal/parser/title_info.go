package parser

import (
	"encoding/json"
	"io"

	"github.com/LeeHanYeong/NWebtoon-Downloader/internal/apperrors"
)

// AdultRatingType is the age-rating category Naver assigns to titles that
// require session-based age verification. The list API rejects these titles.
const AdultRatingType = "RATE_18"

// TitleInfoPayload is the title info API response.
type TitleInfoPayload struct {
	TitleID   int       `json:"titleId"`
	TitleName string    `json:"titleName"`
	Age       AgeRating `json:"age"`
}

// AgeRating is the age-rating block of the info response.
type AgeRating struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// IsAdult reports whether the title carries the strict-adult rating.
func (p *TitleInfoPayload) IsAdult() bool {
	return p.Age.Type == AdultRatingType
}

// ParseTitleInfo decodes and validates the title info API response.
func ParseTitleInfo(body io.Reader) (*TitleInfoPayload, error) {
	var payload TitleInfoPayload
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return nil, apperrors.NewSchemaError("title info", err.Error())
	}

	if payload.TitleName == "" {
		return nil, apperrors.NewSchemaError("title info", "missing titleName")
	}
	if payload.Age.Type == "" {
		return nil, apperrors.NewSchemaError("title info", "missing age.type")
	}

	return &payload, nil
}
