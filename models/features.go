package models

import "time"

// ExtractedFeatures is the structured reading of a free-text query. Each list
// holds at most one value.
type ExtractedFeatures struct {
	Colors       []string `json:"colors"`
	Styles       []string `json:"styles"`
	Rooms        []string `json:"rooms"`
	ProductTypes []string `json:"productTypes"`
}

// RecommendationResponse is returned by GET /api/recommendations.
type RecommendationResponse struct {
	Recommendations       []ProductView     `json:"recommendations"`
	ExtractedFeatures     ExtractedFeatures `json:"extractedFeatures"`
	RecommendationMessage *string           `json:"recommendationMessage"`
	IsExactMatch          bool              `json:"isExactMatch"`
}

// CatalogEvent is published whenever a product changes.
type CatalogEvent struct {
	EventType string    `json:"event_type"`
	ProductID string    `json:"product_id"`
	Name      string    `json:"name,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
