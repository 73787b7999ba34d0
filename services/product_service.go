package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	apperrors "furniture-service/common/errors"
	"furniture-service/models"
	awspkg "furniture-service/pkg/aws"
	"furniture-service/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"

	defaultPresignExpiry = 900
	maxPresignExpiry     = 3600
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type ProductService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	tags       repository.TagRepository

	publisher awspkg.SNSPublisher
	topicArn  string

	presigner awspkg.ObjectPresigner
	images    ImageStorageConfig

	log *zap.Logger
}

// ProductServiceOption configures optional collaborators.
type ProductServiceOption func(*ProductService)

// WithEventPublisher publishes catalog events to topicArn. An empty ARN
// leaves events off.
func WithEventPublisher(p awspkg.SNSPublisher, topicArn string) ProductServiceOption {
	return func(s *ProductService) {
		s.publisher = p
		s.topicArn = topicArn
	}
}

// WithImageStorage enables presigned image uploads.
func WithImageStorage(p awspkg.ObjectPresigner, cfg ImageStorageConfig) ProductServiceOption {
	return func(s *ProductService) {
		s.presigner = p
		s.images = cfg
	}
}

func WithLogger(l *zap.Logger) ProductServiceOption {
	return func(s *ProductService) {
		s.log = l
	}
}

func NewProductService(products repository.ProductRepository, categories repository.CategoryRepository, tags repository.TagRepository, opts ...ProductServiceOption) *ProductService {
	s := &ProductService{
		products:   products,
		categories: categories,
		tags:       tags,
		log:        zap.L(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ProductService) ListProducts(ctx context.Context) ([]models.ProductView, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return s.resolve(ctx, products)
}

func (s *ProductService) GetProduct(ctx context.Context, idHex string) (*models.ProductView, error) {
	id, err := parseID(idHex)
	if err != nil {
		return nil, err
	}
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, MsgProductNotFound, "")
	}
	return s.resolveOne(ctx, product)
}

// ListByCategory returns the products referencing the category. An empty
// result is reported as not found.
func (s *ProductService) ListByCategory(ctx context.Context, categoryHex string) ([]models.ProductView, error) {
	id, err := parseID(categoryHex)
	if err != nil {
		return nil, err
	}
	products, err := s.products.FindByCategory(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if len(products) == 0 {
		return nil, apperrors.NotFound(MsgNoProductsInCat)
	}
	return s.resolve(ctx, products)
}

func (s *ProductService) ListByTag(ctx context.Context, tagHex string) ([]models.ProductView, error) {
	id, err := parseID(tagHex)
	if err != nil {
		return nil, err
	}
	products, err := s.products.FindByTag(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if len(products) == 0 {
		return nil, apperrors.NotFound(MsgNoProductsWithTag)
	}
	return s.resolve(ctx, products)
}

func (s *ProductService) CreateProduct(ctx context.Context, req models.ProductRequest) (*models.ProductView, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation(MsgProductNameMissing, nil)
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, apperrors.Validation(MsgProductDescMissing, nil)
	}

	categoryID, err := s.requireCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}
	tagIDs, err := parseTagIDs(req.Tags)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &models.Product{
		Name:        name,
		Description: req.Description,
		Category:    categoryID,
		Tags:        tagIDs,
		Images:      req.Images,
		Color:       strings.TrimSpace(req.Color),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if product.Images == nil {
		product.Images = []string{}
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.Internal(err)
	}
	s.publish(ctx, EventProductCreated, product.ID, product.Name)

	return s.resolveOne(ctx, product)
}

// UpdateProduct applies the provided fields only.
func (s *ProductService) UpdateProduct(ctx context.Context, idHex string, req models.ProductUpdateRequest) (*models.ProductView, error) {
	id, err := parseID(idHex)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.Validation(MsgProductNameMissing, nil)
		}
		updates["name"] = name
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, apperrors.Validation(MsgProductDescMissing, nil)
		}
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.Color != nil {
		updates["color"] = strings.TrimSpace(*req.Color)
	}
	if req.Images != nil {
		images := *req.Images
		if images == nil {
			images = []string{}
		}
		updates["images"] = images
	}
	if req.Tags != nil {
		tagIDs, err := parseTagIDs(*req.Tags)
		if err != nil {
			return nil, err
		}
		updates["tags"] = tagIDs
	}
	if req.Category != nil {
		categoryID, err := s.requireCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		updates["category"] = categoryID
	}

	product, err := s.products.Update(ctx, id, updates)
	if err != nil {
		return nil, storeError(err, MsgProductNotFound, "")
	}
	s.publish(ctx, EventProductUpdated, product.ID, product.Name)

	return s.resolveOne(ctx, product)
}

func (s *ProductService) DeleteProduct(ctx context.Context, idHex string) error {
	id, err := parseID(idHex)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return storeError(err, MsgProductNotFound, "")
	}
	s.publish(ctx, EventProductDeleted, id, "")
	return nil
}

// PresignImageUpload returns a signed PUT URL for a new image of an
// existing product. expiresSeconds <= 0 selects the default.
func (s *ProductService) PresignImageUpload(ctx context.Context, idHex, filename, contentType string, expiresSeconds int64) (*ImageUpload, error) {
	if s.presigner == nil || s.images.Bucket == "" {
		return nil, apperrors.Unavailable(MsgUploadsDisabled)
	}

	id, err := parseID(idHex)
	if err != nil {
		return nil, err
	}
	ext, ok := allowedImageTypes[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return nil, apperrors.Validation(MsgImageTypeInvalid, nil)
	}
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return nil, storeError(err, MsgProductNotFound, "")
	}

	if expiresSeconds <= 0 {
		expiresSeconds = defaultPresignExpiry
	}
	if expiresSeconds > maxPresignExpiry {
		expiresSeconds = maxPresignExpiry
	}

	if e := strings.ToLower(path.Ext(path.Base(filename))); len(e) > 1 && len(e) <= 5 {
		ext = e
	}
	key := fmt.Sprintf("%s%s/%s%s", s.images.Prefix, id.Hex(), uuid.NewString(), ext)

	url, err := s.presigner.PresignPut(ctx, s.images.Bucket, key, contentType, time.Duration(expiresSeconds)*time.Second)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &ImageUpload{
		UploadURL: url,
		Method:    "PUT",
		Key:       key,
		PublicURL: s.publicURL(key),
		ExpiresIn: expiresSeconds,
	}, nil
}

func (s *ProductService) publicURL(key string) string {
	if base := s.images.PublicBaseURL; base != "" {
		if !strings.Contains(base, "://") {
			base = "https://" + base
		}
		return strings.TrimSuffix(base, "/") + "/" + key
	}
	region := s.images.Region
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.images.Bucket, region, key)
}

// requireCategory parses the reference and checks that it exists.
func (s *ProductService) requireCategory(ctx context.Context, hex string) (primitive.ObjectID, error) {
	id, err := parseID(hex)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return primitive.NilObjectID, apperrors.Validation(MsgCategoryNotFound, err)
		}
		return primitive.NilObjectID, apperrors.Internal(err)
	}
	return id, nil
}

func parseTagIDs(hexes []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(h))
		if err != nil {
			return nil, apperrors.Validation(MsgInvalidTagID, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *ProductService) resolveOne(ctx context.Context, p *models.Product) (*models.ProductView, error) {
	views, err := s.resolve(ctx, []models.Product{*p})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// resolve replaces category and tag references with the stored objects. A
// reference to a deleted record becomes an object holding only its id.
func (s *ProductService) resolve(ctx context.Context, products []models.Product) ([]models.ProductView, error) {
	catSeen := map[primitive.ObjectID]struct{}{}
	tagSeen := map[primitive.ObjectID]struct{}{}
	var catIDs, tagIDs []primitive.ObjectID
	for _, p := range products {
		if _, ok := catSeen[p.Category]; !ok && !p.Category.IsZero() {
			catSeen[p.Category] = struct{}{}
			catIDs = append(catIDs, p.Category)
		}
		for _, t := range p.Tags {
			if _, ok := tagSeen[t]; !ok {
				tagSeen[t] = struct{}{}
				tagIDs = append(tagIDs, t)
			}
		}
	}

	categories, err := s.categories.FindByIDs(ctx, catIDs)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	tags, err := s.tags.FindByIDs(ctx, tagIDs)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	catByID := make(map[primitive.ObjectID]models.Category, len(categories))
	for _, c := range categories {
		catByID[c.ID] = c
	}
	tagByID := make(map[primitive.ObjectID]models.Tag, len(tags))
	for _, t := range tags {
		tagByID[t.ID] = t
	}

	views := make([]models.ProductView, 0, len(products))
	for _, p := range products {
		category, ok := catByID[p.Category]
		if !ok {
			category = models.Category{ID: p.Category}
		}
		resolvedTags := make([]models.Tag, 0, len(p.Tags))
		for _, id := range p.Tags {
			tag, ok := tagByID[id]
			if !ok {
				tag = models.Tag{ID: id}
			}
			resolvedTags = append(resolvedTags, tag)
		}
		images := p.Images
		if images == nil {
			images = []string{}
		}

		views = append(views, models.ProductView{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Category:    category,
			Tags:        resolvedTags,
			Images:      images,
			Stock:       p.Stock,
			Color:       p.Color,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		})
	}
	return views, nil
}

// publish sends a catalog event. Failures are logged and never surface to
// the caller.
func (s *ProductService) publish(ctx context.Context, eventType string, id primitive.ObjectID, name string) {
	if s.publisher == nil || s.topicArn == "" {
		return
	}

	body, err := json.Marshal(models.CatalogEvent{
		EventType: eventType,
		ProductID: id.Hex(),
		Name:      name,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		s.log.Warn("failed to marshal catalog event", zap.Error(err))
		return
	}

	if err := s.publisher.Publish(context.WithoutCancel(ctx), s.topicArn, body, map[string]string{"event_type": eventType}); err != nil {
		s.log.Warn("failed to publish catalog event",
			zap.String("event_type", eventType),
			zap.String("product_id", id.Hex()),
			zap.Error(err))
	}
}
