package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	apperrors "furniture-service/common/errors"
	"furniture-service/models"
	"furniture-service/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ptr[T any](v T) *T { return &v }

func assertAppError(t *testing.T, err error, code int, message string) {
	t.Helper()
	appErr, ok := apperrors.As(err)
	require.True(t, ok, "expected *errors.Error, got %v", err)
	assert.Equal(t, code, appErr.Code)
	assert.Equal(t, message, appErr.Message)
}

func TestCategoryService_CRUD(t *testing.T) {
	ctx := context.Background()
	svc := services.NewCategoryService(&mockCategoryRepo{})

	created, err := svc.CreateCategory(ctx, models.CategoryRequest{Name: "  Oturma Odası ", Description: " salon "})
	require.NoError(t, err)
	assert.Equal(t, "Oturma Odası", created.Name)
	assert.Equal(t, "salon", created.Description)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := svc.GetCategory(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)

	updated, err := svc.UpdateCategory(ctx, created.ID.Hex(), models.CategoryUpdateRequest{Description: ptr("yaşam alanı")})
	require.NoError(t, err)
	assert.Equal(t, "Oturma Odası", updated.Name)
	assert.Equal(t, "yaşam alanı", updated.Description)

	all, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.DeleteCategory(ctx, created.ID.Hex()))
	assertAppError(t, svc.DeleteCategory(ctx, created.ID.Hex()), http.StatusNotFound, services.MsgCategoryNotFound)
}

func TestCategoryService_Errors(t *testing.T) {
	ctx := context.Background()
	svc := services.NewCategoryService(&mockCategoryRepo{})

	_, err := svc.CreateCategory(ctx, models.CategoryRequest{Name: "   "})
	assertAppError(t, err, http.StatusBadRequest, services.MsgCategoryNameMissing)

	_, err = svc.CreateCategory(ctx, models.CategoryRequest{Name: "Mutfak"})
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, models.CategoryRequest{Name: "Mutfak"})
	assertAppError(t, err, http.StatusConflict, services.MsgCategoryDuplicate)

	_, err = svc.GetCategory(ctx, "not-an-id")
	assertAppError(t, err, http.StatusBadRequest, services.MsgInvalidID)

	_, err = svc.GetCategory(ctx, primitive.NewObjectID().Hex())
	assertAppError(t, err, http.StatusNotFound, services.MsgCategoryNotFound)
}

func TestTagService_CRUD(t *testing.T) {
	ctx := context.Background()
	svc := services.NewTagService(&mockTagRepo{})

	tag, err := svc.CreateTag(ctx, models.TagRequest{Name: " Modern "})
	require.NoError(t, err)
	assert.Equal(t, "Modern", tag.Name)

	_, err = svc.CreateTag(ctx, models.TagRequest{Name: "Modern"})
	assertAppError(t, err, http.StatusConflict, services.MsgTagDuplicate)

	renamed, err := svc.UpdateTag(ctx, tag.ID.Hex(), models.TagRequest{Name: "Minimalist"})
	require.NoError(t, err)
	assert.Equal(t, "Minimalist", renamed.Name)

	_, err = svc.UpdateTag(ctx, tag.ID.Hex(), models.TagRequest{Name: ""})
	assertAppError(t, err, http.StatusBadRequest, services.MsgTagNameMissing)

	require.NoError(t, svc.DeleteTag(ctx, tag.ID.Hex()))
	_, err = svc.GetTag(ctx, tag.ID.Hex())
	assertAppError(t, err, http.StatusNotFound, services.MsgTagNotFound)
}

type catalogFixture struct {
	categories *mockCategoryRepo
	tags       *mockTagRepo
	products   *mockProductRepo
	category   models.Category
	tag        models.Tag
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()
	f := &catalogFixture{
		categories: &mockCategoryRepo{},
		tags:       &mockTagRepo{},
		products:   &mockProductRepo{},
		category:   models.Category{Name: "Oturma Odası"},
		tag:        models.Tag{Name: "Modern"},
	}
	require.NoError(t, f.categories.Create(context.Background(), &f.category))
	require.NoError(t, f.tags.Create(context.Background(), &f.tag))
	return f
}

func (f *catalogFixture) service(opts ...services.ProductServiceOption) *services.ProductService {
	return services.NewProductService(f.products, f.categories, f.tags, opts...)
}

func (f *catalogFixture) request() models.ProductRequest {
	return models.ProductRequest{
		Name:        " Beyaz Koltuk ",
		Description: "Rahat üçlü koltuk",
		Price:       ptr(1500.0),
		Category:    f.category.ID.Hex(),
		Tags:        []string{f.tag.ID.Hex()},
	}
}

func TestProductService_CreateThenGetResolvesReferences(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(t)
	svc := f.service()

	created, err := svc.CreateProduct(ctx, f.request())
	require.NoError(t, err)
	assert.Equal(t, "Beyaz Koltuk", created.Name)
	assert.Equal(t, 0, created.Stock)
	assert.Equal(t, []string{}, created.Images)

	got, err := svc.GetProduct(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Oturma Odası", got.Category.Name)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "Modern", got.Tags[0].Name)
	assert.Nil(t, got.IsRecommended)
}

func TestProductService_OrphanedTagStaysVisible(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(t)
	svc := f.service()

	created, err := svc.CreateProduct(ctx, f.request())
	require.NoError(t, err)
	require.NoError(t, services.NewTagService(f.tags).DeleteTag(ctx, f.tag.ID.Hex()))

	got, err := svc.GetProduct(ctx, created.ID.Hex())
	require.NoError(t, err)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, f.tag.ID, got.Tags[0].ID)
	assert.Empty(t, got.Tags[0].Name)

	body, err := json.Marshal(got.Tags[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":"`+f.tag.ID.Hex()+`"}`, string(body))
}

func TestProductService_DeletedCategoryLeavesBareReference(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(t)
	svc := f.service()

	created, err := svc.CreateProduct(ctx, f.request())
	require.NoError(t, err)
	require.NoError(t, services.NewCategoryService(f.categories).DeleteCategory(ctx, f.category.ID.Hex()))

	all, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, created.ID, all[0].ID)
	assert.Equal(t, f.category.ID, all[0].Category.ID)
	assert.Empty(t, all[0].Category.Name)
}

func TestProductService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(t)
	svc := f.service()

	req := f.request()
	req.Category = primitive.NewObjectID().Hex()
	_, err := svc.CreateProduct(ctx, req)
	assertAppError(t, err, http.StatusBadRequest, services.MsgCategoryNotFound)

	req = f.request()
	req.Category = "xyz"
	_, err = svc.CreateProduct(ctx, req)
	assertAppError(t, err, http.StatusBadRequest, services.MsgInvalidID)

	req = f.request()
	req.Tags = []string{"bad"}
	_, err = svc.CreateProduct(ctx, req)
	assertAppError(t, err, http.StatusBadRequest, services.MsgInvalidTagID)

	req = f.request()
	req.Name = " "
	_, err = svc.CreateProduct(ctx, req)
	assertAppError(t, err, http.StatusBadRequest, services.MsgProductNameMissing)

	assert.Empty(t, f.products.items)
}

func TestProductService_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(t)
	svc := f.service()

	created, err := svc.CreateProduct(ctx, f.request())
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(ctx, created.ID.Hex(), models.ProductUpdateRequest{Price: ptr(999.0), Stock: ptr(4)})
	require.NoError(t, err)
	assert.Equal(t, "Beyaz Koltuk", updated.Name)
	assert.Equal(t, 999.0, updated.Price)
	assert.Equal(t, 4, updated.Stock)
	assert.Equal(t, "Modern", updated.Tags[0].Name)

	_, err = svc.UpdateProduct(ctx, created.ID.Hex(), models.ProductUpdateRequest{Category: ptr(primitive.NewObjectID().Hex())})
	assertAppError(t, err, http.StatusBadRequest, services.MsgCategoryNotFound)

	_, err = svc.UpdateProduct(ctx, primitive.NewObjectID().Hex(), models.ProductUpdateRequest{Price: ptr(1.0)})
	assertAppError(t, err, http.StatusNotFound, services.MsgProductNotFound)
}

func TestProductService_ListByCategoryAndTag(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(t)
	svc := f.service()

	_, err := svc.ListByCategory(ctx, f.category.ID.Hex())
	assertAppError(t, err, http.StatusNotFound, services.MsgNoProductsInCat)
	_, err = svc.ListByTag(ctx, f.tag.ID.Hex())
	assertAppError(t, err, http.StatusNotFound, services.MsgNoProductsWithTag)

	_, err = svc.CreateProduct(ctx, f.request())
	require.NoError(t, err)

	byCategory, err := svc.ListByCategory(ctx, f.category.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, byCategory, 1)

	byTag, err := svc.ListByTag(ctx, f.tag.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, byTag, 1)
}

func TestProductService_PublishesCatalogEvents(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(t)
	pub := &mockSNSPublisher{}
	svc := f.service(services.WithEventPublisher(pub, "arn:aws:sns:us-east-1:000000000000:catalog"))

	created, err := svc.CreateProduct(ctx, f.request())
	require.NoError(t, err)
	_, err = svc.UpdateProduct(ctx, created.ID.Hex(), models.ProductUpdateRequest{Stock: ptr(2)})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteProduct(ctx, created.ID.Hex()))

	require.Len(t, pub.messages, 3)
	var types []string
	for i, m := range pub.messages {
		var ev models.CatalogEvent
		require.NoError(t, json.Unmarshal(m, &ev))
		assert.Equal(t, created.ID.Hex(), ev.ProductID)
		assert.Equal(t, ev.EventType, pub.attributes[i]["event_type"])
		types = append(types, ev.EventType)
	}
	assert.Equal(t, []string{services.EventProductCreated, services.EventProductUpdated, services.EventProductDeleted}, types)
}

func TestProductService_PublishFailureDoesNotFailWrite(t *testing.T) {
	f := newCatalogFixture(t)
	pub := &mockSNSPublisher{err: assert.AnError}
	svc := f.service(services.WithEventPublisher(pub, "arn:topic"))

	_, err := svc.CreateProduct(context.Background(), f.request())
	require.NoError(t, err)
	assert.Len(t, pub.messages, 1)
}

func TestProductService_NoTopicNoEvents(t *testing.T) {
	f := newCatalogFixture(t)
	pub := &mockSNSPublisher{}
	svc := f.service(services.WithEventPublisher(pub, ""))

	_, err := svc.CreateProduct(context.Background(), f.request())
	require.NoError(t, err)
	assert.Empty(t, pub.messages)
}

func TestProductService_PresignImageUpload(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture(t)
	presigner := &mockPresigner{}
	svc := f.service(services.WithImageStorage(presigner, services.ImageStorageConfig{
		Bucket:        "furniture-images",
		Prefix:        "products/",
		PublicBaseURL: "cdn.example.com",
	}))

	created, err := svc.CreateProduct(ctx, f.request())
	require.NoError(t, err)

	upload, err := svc.PresignImageUpload(ctx, created.ID.Hex(), "koltuk.PNG", "image/png", 99999)
	require.NoError(t, err)
	assert.Equal(t, "PUT", upload.Method)
	assert.Equal(t, int64(3600), upload.ExpiresIn)
	assert.Equal(t, time.Hour, presigner.expires)
	assert.Equal(t, "furniture-images", presigner.bucket)
	assert.True(t, strings.HasPrefix(upload.Key, "products/"+created.ID.Hex()+"/"))
	assert.True(t, strings.HasSuffix(upload.Key, ".png"))
	assert.Equal(t, "https://cdn.example.com/"+upload.Key, upload.PublicURL)

	upload, err = svc.PresignImageUpload(ctx, created.ID.Hex(), "", "image/jpeg", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(900), upload.ExpiresIn)

	_, err = svc.PresignImageUpload(ctx, created.ID.Hex(), "a.pdf", "application/pdf", 0)
	assertAppError(t, err, http.StatusBadRequest, services.MsgImageTypeInvalid)

	_, err = svc.PresignImageUpload(ctx, primitive.NewObjectID().Hex(), "a.png", "image/png", 0)
	assertAppError(t, err, http.StatusNotFound, services.MsgProductNotFound)
}

func TestProductService_PresignDisabledWithoutBucket(t *testing.T) {
	f := newCatalogFixture(t)
	svc := f.service()

	_, err := svc.PresignImageUpload(context.Background(), primitive.NewObjectID().Hex(), "a.png", "image/png", 0)
	assertAppError(t, err, http.StatusServiceUnavailable, services.MsgUploadsDisabled)
}
