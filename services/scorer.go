package services

import (
	"fmt"
	"sort"
	"strings"

	"furniture-service/models"
)

const (
	MaxRecommendations = 5

	categoryWeight    = 10
	styleWeight       = 2
	colorWeight       = 5
	productTypeWeight = 3
)

type ScoredProduct struct {
	Product models.ProductView
	Score   int
}

// Score rates how well a product fits the extracted features. Zero means the
// product is excluded.
//
// A room, when present, must equal the category name or the product is out.
// Each tag named like a requested style adds a little. A requested color
// must agree with the product's color (explicit, or else the first known
// color in its text); disagreement excludes the product. The product type
// appearing in the text adds a little more.
func Score(p models.ProductView, f models.ExtractedFeatures) int {
	score := 0

	if len(f.Rooms) > 0 {
		if !contains(f.Rooms, p.Category.Name) {
			return 0
		}
		score += categoryWeight
	}

	for _, tag := range p.Tags {
		if contains(f.Styles, tag.Name) {
			score += styleWeight
		}
	}

	text := lowerTR(p.Name + " " + p.Description)

	for _, requested := range f.Colors {
		requested = lowerTR(requested)
		productColor := lowerTR(strings.TrimSpace(p.Color))
		if productColor == "" {
			productColor = colorInText(text)
			if productColor == "" {
				continue
			}
		}
		if productColor != requested {
			return 0
		}
		score += colorWeight
	}

	for _, t := range f.ProductTypes {
		if t = lowerTR(t); t != "" && strings.Contains(text, t) {
			score += productTypeWeight
		}
	}

	return score
}

// ScoreAll scores every product, keeping input order.
func ScoreAll(products []models.ProductView, f models.ExtractedFeatures) []ScoredProduct {
	scored := make([]ScoredProduct, len(products))
	for i, p := range products {
		scored[i] = ScoredProduct{Product: p, Score: Score(p, f)}
	}
	return scored
}

// Rank keeps positive scores, orders them best first (ties keep input
// order), truncates to MaxRecommendations and flags the first one.
func Rank(scored []ScoredProduct) []models.ProductView {
	kept := make([]ScoredProduct, 0, len(scored))
	for _, s := range scored {
		if s.Score > 0 {
			kept = append(kept, s)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})
	if len(kept) > MaxRecommendations {
		kept = kept[:MaxRecommendations]
	}

	out := make([]models.ProductView, len(kept))
	for i, s := range kept {
		recommended := i == 0
		out[i] = s.Product
		out[i].IsRecommended = &recommended
	}
	return out
}

// RecommendationMessage is set only when both a color and a product type
// were understood.
func RecommendationMessage(f models.ExtractedFeatures) *string {
	if len(f.Colors) == 0 || len(f.ProductTypes) == 0 {
		return nil
	}
	msg := fmt.Sprintf("İstediğiniz %s %s için öneriler:", f.Colors[0], f.ProductTypes[0])
	return &msg
}

func colorInText(text string) string {
	for _, c := range KnownColors {
		if strings.Contains(text, c) {
			return c
		}
	}
	return ""
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
