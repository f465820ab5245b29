package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recipe represents a shared recipe stored in MongoDB
type Recipe struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID          string             `json:"user_id" bson:"user_id"` // numeric user ID stored as string
	Title           string             `json:"title" bson:"title"`
	Description     string             `json:"description,omitempty" bson:"description,omitempty"`
	Ingredients     []string           `json:"ingredients" bson:"ingredients"`
	Steps           []string           `json:"steps" bson:"steps"`
	ImageURLs       []string           `json:"image_urls,omitempty" bson:"image_urls,omitempty"`
	CookTimeMinutes int                `json:"cook_time_minutes,omitempty" bson:"cook_time_minutes,omitempty"`
	Servings        int                `json:"servings,omitempty" bson:"servings,omitempty"`
	LikesCount      int                `json:"likes_count" bson:"likes_count"`
	CommentsCount   int                `json:"comments_count" bson:"comments_count"`
	FavoritesCount  int                `json:"favorites_count" bson:"favorites_count"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreateRecipeRequest defines the request body for creating a new recipe
type CreateRecipeRequest struct {
	Title           string   `json:"title" validate:"required,min=1,max=120"`
	Description     string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	Ingredients     []string `json:"ingredients" validate:"required,min=1,dive,min=1,max=200"`
	Steps           []string `json:"steps" validate:"required,min=1,dive,min=1,max=1000"`
	ImageURLs       []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
	CookTimeMinutes int      `json:"cook_time_minutes,omitempty" validate:"omitempty,min=1,max=2880"`
	Servings        int      `json:"servings,omitempty" validate:"omitempty,min=1,max=100"`
}

// UpdateRecipeRequest defines the request body for updating an existing recipe
type UpdateRecipeRequest struct {
	Title           string   `json:"title,omitempty" validate:"omitempty,min=1,max=120"`
	Description     string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	Ingredients     []string `json:"ingredients,omitempty" validate:"omitempty,min=1,dive,min=1,max=200"`
	Steps           []string `json:"steps,omitempty" validate:"omitempty,min=1,dive,min=1,max=1000"`
	ImageURLs       []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
	CookTimeMinutes int      `json:"cook_time_minutes,omitempty" validate:"omitempty,min=1,max=2880"`
	Servings        int      `json:"servings,omitempty" validate:"omitempty,min=1,max=100"`
}
