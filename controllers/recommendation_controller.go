package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type RecommendationController struct {
	service RecommendationServiceAPI
}

func NewRecommendationController(s RecommendationServiceAPI) *RecommendationController {
	return &RecommendationController{service: s}
}

// GetRecommendations handles GET /api/recommendations?query=...
func (ctrl *RecommendationController) GetRecommendations(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := ctrl.service.Recommend(ctx, c.Query("query"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
