package controllers

import (
	"context"
	"time"

	"furniture-service/models"
	"furniture-service/services"
)

const (
	DefaultCacheTTL       = 10 * time.Minute
	DefaultContextTimeout = 30 * time.Second
)

type CategoryServiceAPI interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, req models.CategoryUpdateRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type TagServiceAPI interface {
	ListTags(ctx context.Context) ([]models.Tag, error)
	GetTag(ctx context.Context, id string) (*models.Tag, error)
	CreateTag(ctx context.Context, req models.TagRequest) (*models.Tag, error)
	UpdateTag(ctx context.Context, id string, req models.TagRequest) (*models.Tag, error)
	DeleteTag(ctx context.Context, id string) error
}

type ProductServiceAPI interface {
	ListProducts(ctx context.Context) ([]models.ProductView, error)
	GetProduct(ctx context.Context, id string) (*models.ProductView, error)
	ListByCategory(ctx context.Context, categoryID string) ([]models.ProductView, error)
	ListByTag(ctx context.Context, tagID string) ([]models.ProductView, error)
	CreateProduct(ctx context.Context, req models.ProductRequest) (*models.ProductView, error)
	UpdateProduct(ctx context.Context, id string, req models.ProductUpdateRequest) (*models.ProductView, error)
	DeleteProduct(ctx context.Context, id string) error
	PresignImageUpload(ctx context.Context, id, filename, contentType string, expiresSeconds int64) (*services.ImageUpload, error)
}

type RecommendationServiceAPI interface {
	Recommend(ctx context.Context, query string) (*models.RecommendationResponse, error)
}

var (
	_ CategoryServiceAPI       = (*services.CategoryService)(nil)
	_ TagServiceAPI            = (*services.TagService)(nil)
	_ ProductServiceAPI        = (*services.ProductService)(nil)
	_ RecommendationServiceAPI = (*services.RecommendationService)(nil)
)
