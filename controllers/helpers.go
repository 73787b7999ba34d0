package controllers

import (
	"context"

	"github.com/gin-gonic/gin"
)

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), DefaultContextTimeout)
}
