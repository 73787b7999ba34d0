package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Tag struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name,omitempty" bson:"name"`
	CreatedAt time.Time          `json:"createdAt,omitzero" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt,omitzero" bson:"updatedAt"`
}

// TagRequest is the payload for creating or renaming a tag.
type TagRequest struct {
	Name string `json:"name" binding:"required"`
}
