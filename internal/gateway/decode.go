package gateway

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/noircloset/noir/internal/model"
)

// ErrBadResponse marks a model reply that failed strict decoding: malformed
// JSON or required fields missing. Callers surface it as a retryable error;
// it never propagates as a parse panic.
var ErrBadResponse = errors.New("gateway: malformed model response")

// The gateway is a trust boundary: responses are decoded strictly and enum
// fields the model may have hallucinated are clamped to known values before
// anything reaches the data layer.

func decodeAutoTag(data []byte) (*AutoTag, error) {
	var tag AutoTag
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	if tag.Name == "" {
		tag.Name = "New Item"
	}
	if !model.ValidCategory(tag.Category) {
		tag.Category = model.CategoryTop
	}
	if !model.ValidSeason(tag.Season) {
		tag.Season = model.SeasonYearRound
	}
	if tag.Color == "" {
		tag.Color = "Multi"
	}
	if tag.EstimatedPrice < 0 {
		tag.EstimatedPrice = 0
	}
	return &tag, nil
}

func decodeClosetAnalysis(data []byte) (*ClosetAnalysis, error) {
	var analysis ClosetAnalysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if len(analysis.Outfits) == 0 {
		return nil, fmt.Errorf("%w: no outfits", ErrBadResponse)
	}
	return &analysis, nil
}

func decodeBodyFit(data []byte) (*BodyFitAnalysis, error) {
	var analysis BodyFitAnalysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if analysis.BodyShape == "" && analysis.Analysis == "" {
		return nil, fmt.Errorf("%w: empty analysis", ErrBadResponse)
	}
	return &analysis, nil
}

func decodeChatReply(data []byte) (*ChatReply, error) {
	var parsed struct {
		ResponseText    string                 `json:"response_text"`
		Recommendations []LuxuryRecommendation `json:"recommendations"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if parsed.ResponseText == "" {
		return nil, fmt.Errorf("%w: empty reply", ErrBadResponse)
	}
	return &ChatReply{Text: parsed.ResponseText, Recommendations: parsed.Recommendations}, nil
}

func decodePackingList(data []byte) (*PackingList, error) {
	var list PackingList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if len(list.OutfitsPerDay) == 0 {
		return nil, fmt.Errorf("%w: no itinerary days", ErrBadResponse)
	}
	return &list, nil
}

func decodeOutfitRating(data []byte) (*OutfitRating, error) {
	var rating OutfitRating
	if err := json.Unmarshal(data, &rating); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if rating.Score < 1 {
		rating.Score = 1
	}
	if rating.Score > 10 {
		rating.Score = 10
	}
	return &rating, nil
}
