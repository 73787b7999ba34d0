package controllers

import (
	"net/http"

	"furniture-service/models"
	"furniture-service/services"

	"github.com/gin-gonic/gin"
)

type TagController struct {
	service TagServiceAPI
	cache   *CacheManager
}

func NewTagController(s TagServiceAPI, cache *CacheManager) *TagController {
	return &TagController{service: s, cache: cache}
}

func (ctrl *TagController) GetTags(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	tags, err := ctrl.service.ListTags(ctx)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (ctrl *TagController) GetTag(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	tag, err := ctrl.service.GetTag(ctx, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (ctrl *TagController) CreateTag(c *gin.Context) {
	var req models.TagRequest
	if err := bindJSON(c, &req, tagMessages); err != nil {
		_ = c.Error(err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	tag, err := ctrl.service.CreateTag(ctx, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ctrl.cache.Invalidate(ctx)
	c.JSON(http.StatusCreated, tag)
}

func (ctrl *TagController) UpdateTag(c *gin.Context) {
	var req models.TagRequest
	if err := bindJSON(c, &req, tagMessages); err != nil {
		_ = c.Error(err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	tag, err := ctrl.service.UpdateTag(ctx, c.Param("id"), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	// resolved product lists embed the tag
	ctrl.cache.Invalidate(ctx)
	c.JSON(http.StatusOK, tag)
}

func (ctrl *TagController) DeleteTag(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := ctrl.service.DeleteTag(ctx, c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	ctrl.cache.Invalidate(ctx)
	c.JSON(http.StatusOK, gin.H{"message": services.MsgTagDeleted})
}
