package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"furniture-service/models"
	"furniture-service/providers"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrExtraction covers every way feature extraction can fail.
var ErrExtraction = errors.New("feature extraction failed")

// KnownColors is the closed color vocabulary, in the order used when a
// product's color has to be read from its text.
var KnownColors = []string{"beyaz", "siyah", "gri", "kahverengi", "bej", "mavi", "kırmızı", "yeşil", "altın"}

const promptTemplate = `Bir mobilya mağazasında müşterilere ürün tavsiye ediyorsun. Kullanıcı şu girdiyi verdi: "%s".

Kullanıcının isteğine uygun olarak aşağıdaki özellikleri çıkar:
1. Kategori (örn: Oturma Odası, Yatak Odası, Mutfak, Çalışma Odası, Yemek Odası)
2. Renk (SADECE TEK RENK SEÇ):
   - Eğer kullanıcı spesifik bir renk belirttiyse (örn: "beyaz koltuk", "mavi masa"), o rengi kullan
   - Sadece şu renklerden birini seç: %s
   - Birden fazla renk yazma, sadece en uygun olanı seç
3. Stil (örn: Modern, Klasik, Minimalist, Vintage, Scandinav, Rustik, Bohem, Endüstriyel)
4. Ürün Türü (örn: koltuk, kanepe, sandalye, masa, gardırop, yatak, dolap, sehpa, kitaplık, raf, komodin, puf, televizyon ünitesi)

Sadece JSON formatında yanıt ver:
{
    "category": "kategori adı",
    "color": "renk",
    "style": "stil",
    "productType": "ürün türü"
}`

var codeFence = regexp.MustCompile("(?s)^```[A-Za-z0-9_-]*[ \t]*\r?\n?(.*?)\r?\n?```$")

// FeatureExtractor turns a free-text query into ExtractedFeatures using a
// generative model.
type FeatureExtractor struct {
	generator providers.TextGenerator
}

func NewFeatureExtractor(generator providers.TextGenerator) *FeatureExtractor {
	return &FeatureExtractor{generator: generator}
}

// BuildPrompt embeds the query in the extraction instructions.
func BuildPrompt(query string) string {
	return fmt.Sprintf(promptTemplate, query, strings.Join(KnownColors, ", "))
}

// Extract makes exactly one model call. Any failure is wrapped in ErrExtraction.
func (e *FeatureExtractor) Extract(ctx context.Context, query string) (models.ExtractedFeatures, error) {
	text, err := e.generator.GenerateContent(ctx, BuildPrompt(query))
	if err != nil {
		return models.ExtractedFeatures{}, fmt.Errorf("%w: %w", ErrExtraction, err)
	}
	features, err := ParseFeatures(text)
	if err != nil {
		return models.ExtractedFeatures{}, fmt.Errorf("%w: %w", ErrExtraction, err)
	}
	return features, nil
}

// ParseFeatures reads the model's answer, with or without a markdown fence.
func ParseFeatures(text string) (models.ExtractedFeatures, error) {
	raw := map[string]interface{}{}
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &raw); err != nil {
		return models.ExtractedFeatures{}, fmt.Errorf("parse model output: %w", err)
	}

	return models.ExtractedFeatures{
		Colors:       single(NormalizeColor(stringField(raw, "color"))),
		Styles:       single(stringField(raw, "style")),
		Rooms:        single(stringField(raw, "category")),
		ProductTypes: single(stringField(raw, "productType")),
	}, nil
}

// NormalizeColor keeps the first comma-separated token, lower-cased with
// Turkish rules, or "" when it is not a known color.
func NormalizeColor(color string) string {
	token, _, _ := strings.Cut(color, ",")
	token = lowerTR(strings.TrimSpace(token))
	for _, c := range KnownColors {
		if token == c {
			return c
		}
	}
	return ""
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if m := codeFence.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return text
}

// stringField returns a trimmed string value; other JSON types count as absent.
func stringField(raw map[string]interface{}, key string) string {
	s, _ := raw[key].(string)
	return strings.TrimSpace(s)
}

func single(v string) []string {
	if v == "" {
		return []string{}
	}
	return []string{v}
}

func lowerTR(s string) string {
	return cases.Lower(language.Turkish).String(s)
}
