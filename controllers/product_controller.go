package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"furniture-service/models"
	"furniture-service/services"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	service ProductServiceAPI
	cache   *CacheManager
}

func NewProductController(s ProductServiceAPI, cache *CacheManager) *ProductController {
	return &ProductController{service: s, cache: cache}
}

// GetProducts returns every product with category and tags resolved.
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	ctrl.cachedList(c, "all", func() ([]models.ProductView, error) {
		ctx, cancel := requestContext(c)
		defer cancel()
		return ctrl.service.ListProducts(ctx)
	})
}

func (ctrl *ProductController) GetProductsByCategory(c *gin.Context) {
	id := c.Param("categoryId")
	ctrl.cachedList(c, "category:"+id, func() ([]models.ProductView, error) {
		ctx, cancel := requestContext(c)
		defer cancel()
		return ctrl.service.ListByCategory(ctx, id)
	})
}

func (ctrl *ProductController) GetProductsByTag(c *gin.Context) {
	id := c.Param("tagId")
	ctrl.cachedList(c, "tag:"+id, func() ([]models.ProductView, error) {
		ctx, cancel := requestContext(c)
		defer cancel()
		return ctrl.service.ListByTag(ctx, id)
	})
}

func (ctrl *ProductController) cachedList(c *gin.Context, key string, load func() ([]models.ProductView, error)) {
	products, version, ok := ctrl.cache.GetProductList(c.Request.Context(), key)
	if ok {
		c.Header("X-Cache", "HIT")
		c.JSON(http.StatusOK, products)
		return
	}

	products, err := load()
	if err != nil {
		_ = c.Error(err)
		return
	}
	ctrl.cache.SetProductListAsync(version, key, products)
	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, products)
}

func (ctrl *ProductController) GetProduct(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	product, err := ctrl.service.GetProduct(ctx, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.ProductRequest
	if err := bindJSON(c, &req, productMessages); err != nil {
		_ = c.Error(err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	product, err := ctrl.service.CreateProduct(ctx, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ctrl.cache.Invalidate(ctx)
	c.JSON(http.StatusCreated, product)
}

func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	var req models.ProductUpdateRequest
	if err := bindJSON(c, &req, productMessages); err != nil {
		_ = c.Error(err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	product, err := ctrl.service.UpdateProduct(ctx, c.Param("id"), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ctrl.cache.Invalidate(ctx)
	c.JSON(http.StatusOK, product)
}

func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := ctrl.service.DeleteProduct(ctx, c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	ctrl.cache.Invalidate(ctx)
	c.JSON(http.StatusOK, gin.H{"message": services.MsgProductDeleted})
}

// PostPresignUpload returns a presigned PUT URL for a new product image.
// Query: filename, content_type (default image/jpeg), expires in seconds.
func (ctrl *ProductController) PostPresignUpload(c *gin.Context) {
	filename := strings.TrimSpace(c.DefaultQuery("filename", "upload"))
	contentType := strings.TrimSpace(c.DefaultQuery("content_type", "image/jpeg"))
	expires, err := strconv.ParseInt(c.DefaultQuery("expires", "0"), 10, 64)
	if err != nil {
		expires = 0
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	upload, err := ctrl.service.PresignImageUpload(ctx, c.Param("id"), filename, contentType, expires)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, upload)
}
