package controllers

import (
	"net/http"

	"furniture-service/models"
	"furniture-service/services"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	service CategoryServiceAPI
	cache   *CacheManager
}

func NewCategoryController(s CategoryServiceAPI, cache *CacheManager) *CategoryController {
	return &CategoryController{service: s, cache: cache}
}

func (ctrl *CategoryController) GetCategories(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	categories, err := ctrl.service.ListCategories(ctx)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (ctrl *CategoryController) GetCategory(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	category, err := ctrl.service.GetCategory(ctx, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	var req models.CategoryRequest
	if err := bindJSON(c, &req, categoryMessages); err != nil {
		_ = c.Error(err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	category, err := ctrl.service.CreateCategory(ctx, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ctrl.cache.Invalidate(ctx)
	c.JSON(http.StatusCreated, category)
}

func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	var req models.CategoryUpdateRequest
	if err := bindJSON(c, &req, categoryMessages); err != nil {
		_ = c.Error(err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	category, err := ctrl.service.UpdateCategory(ctx, c.Param("id"), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	// resolved product lists embed the category
	ctrl.cache.Invalidate(ctx)
	c.JSON(http.StatusOK, category)
}

func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := ctrl.service.DeleteCategory(ctx, c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	ctrl.cache.Invalidate(ctx)
	c.JSON(http.StatusOK, gin.H{"message": services.MsgCategoryDeleted})
}
