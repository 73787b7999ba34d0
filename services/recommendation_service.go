package services

import (
	"context"
	"strings"
	"time"

	apperrors "furniture-service/common/errors"
	"furniture-service/common/logger"
	"furniture-service/models"
	awspkg "furniture-service/pkg/aws"

	"go.uber.org/zap"
)

var metricDims = map[string]string{"Service": "furniture-service"}

type Extractor interface {
	Extract(ctx context.Context, query string) (models.ExtractedFeatures, error)
}

type ProductLister interface {
	ListProducts(ctx context.Context) ([]models.ProductView, error)
}

type RecommendationService struct {
	extractor Extractor
	products  ProductLister
	metrics   awspkg.MetricsRecorder
}

// NewRecommendationService wires the extractor and catalog. metrics may be nil.
func NewRecommendationService(extractor Extractor, products ProductLister, metrics awspkg.MetricsRecorder) *RecommendationService {
	return &RecommendationService{extractor: extractor, products: products, metrics: metrics}
}

// Recommend reads the query with the model and returns the best matching
// products.
func (s *RecommendationService) Recommend(ctx context.Context, query string) (*models.RecommendationResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.Validation(MsgQueryMissing, nil)
	}

	start := time.Now()
	features, err := s.extractor.Extract(ctx, query)
	if err != nil {
		s.record(ctx, awspkg.Count(awspkg.MetricFeatureExtractionFailed, metricDims))
		return nil, apperrors.Internal(err)
	}
	s.record(ctx, awspkg.Latency(awspkg.MetricFeatureExtractionLatency, time.Since(start), metricDims))
	logger.Info(ctx, "features extracted",
		zap.Strings("colors", features.Colors),
		zap.Strings("styles", features.Styles),
		zap.Strings("rooms", features.Rooms),
		zap.Strings("product_types", features.ProductTypes))

	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	recommendations := Rank(ScoreAll(products, features))
	if len(recommendations) == 0 {
		s.record(ctx, awspkg.Count(awspkg.MetricRecommendationsEmpty, metricDims))
		return nil, apperrors.NotFound(MsgNoRecommendations)
	}
	s.record(ctx, awspkg.Count(awspkg.MetricRecommendationsServed, metricDims))

	return &models.RecommendationResponse{
		Recommendations:       recommendations,
		ExtractedFeatures:     features,
		RecommendationMessage: RecommendationMessage(features),
		IsExactMatch:          len(features.Colors) > 0,
	}, nil
}

func (s *RecommendationService) record(ctx context.Context, points ...awspkg.MetricPoint) {
	if s.metrics == nil || !s.metrics.IsEnabled() {
		return
	}
	if err := s.metrics.Record(context.WithoutCancel(ctx), points...); err != nil {
		logger.Warn(ctx, "failed to record metrics", zap.Error(err))
	}
}
