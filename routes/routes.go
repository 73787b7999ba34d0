package routes

import (
	"net/http"

	"furniture-service/controllers"
	"furniture-service/web"

	"github.com/gin-gonic/gin"
)

// Controllers bundles the handlers mounted under /api.
type Controllers struct {
	Category       *controllers.CategoryController
	Tag            *controllers.TagController
	Product        *controllers.ProductController
	Recommendation *controllers.RecommendationController
}

// RegisterRoutes mounts the catalog API, the recommendation endpoint, the
// health probe and the storefront page. recommendLimit guards the endpoint
// that calls the generative API; it may be nil.
func RegisterRoutes(r *gin.Engine, ctrl Controllers, recommendLimit gin.HandlerFunc) {
	api := r.Group("/api")

	categories := api.Group("/categories")
	categories.GET("", ctrl.Category.GetCategories)
	categories.GET("/:id", ctrl.Category.GetCategory)
	categories.POST("", ctrl.Category.CreateCategory)
	categories.PUT("/:id", ctrl.Category.UpdateCategory)
	categories.DELETE("/:id", ctrl.Category.DeleteCategory)

	tags := api.Group("/tags")
	tags.GET("", ctrl.Tag.GetTags)
	tags.GET("/:id", ctrl.Tag.GetTag)
	tags.POST("", ctrl.Tag.CreateTag)
	tags.PUT("/:id", ctrl.Tag.UpdateTag)
	tags.DELETE("/:id", ctrl.Tag.DeleteTag)

	products := api.Group("/products")
	products.GET("", ctrl.Product.GetProducts)
	products.GET("/category/:categoryId", ctrl.Product.GetProductsByCategory)
	products.GET("/tag/:tagId", ctrl.Product.GetProductsByTag)
	products.GET("/:id", ctrl.Product.GetProduct)
	products.POST("", ctrl.Product.CreateProduct)
	products.PUT("/:id", ctrl.Product.UpdateProduct)
	products.DELETE("/:id", ctrl.Product.DeleteProduct)
	products.POST("/:id/images/presign", ctrl.Product.PostPresignUpload)

	recommendations := api.Group("/recommendations")
	if recommendLimit != nil {
		recommendations.Use(recommendLimit)
	}
	recommendations.GET("", ctrl.Recommendation.GetRecommendations)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	r.GET("/", web.Index)
}
