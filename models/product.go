package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is the stored document. Category and Tags hold references only.
type Product struct {
	ID          primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	Name        string               `json:"name" bson:"name"`
	Description string               `json:"description" bson:"description"`
	Price       float64              `json:"price" bson:"price"`
	Category    primitive.ObjectID   `json:"category" bson:"category"`
	Tags        []primitive.ObjectID `json:"tags" bson:"tags"`
	Images      []string             `json:"images" bson:"images"`
	Stock       int                  `json:"stock" bson:"stock"`
	Color       string               `json:"color,omitempty" bson:"color,omitempty"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// ProductView is a Product with its category and tags resolved into full
// objects. A reference whose target no longer exists resolves to an object
// carrying only its id.
type ProductView struct {
	ID            primitive.ObjectID `json:"_id"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Price         float64            `json:"price"`
	Category      Category           `json:"category"`
	Tags          []Tag              `json:"tags"`
	Images        []string           `json:"images"`
	Stock         int                `json:"stock"`
	Color         string             `json:"color,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	IsRecommended *bool              `json:"isRecommended,omitempty"`
}

// ProductRequest is the payload for creating a product.
type ProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Category    string   `json:"category" binding:"required"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images" binding:"omitempty,dive,required"`
	Stock       *int     `json:"stock" binding:"omitempty,gte=0"`
	Color       string   `json:"color"`
}

// ProductUpdateRequest is the payload for a partial product update. Nil
// fields are left untouched.
type ProductUpdateRequest struct {
	Name        *string   `json:"name" binding:"omitempty,min=1"`
	Description *string   `json:"description" binding:"omitempty,min=1"`
	Price       *float64  `json:"price" binding:"omitempty,gte=0"`
	Category    *string   `json:"category" binding:"omitempty,min=1"`
	Tags        *[]string `json:"tags"`
	Images      *[]string `json:"images"`
	Stock       *int      `json:"stock" binding:"omitempty,gte=0"`
	Color       *string   `json:"color"`
}
