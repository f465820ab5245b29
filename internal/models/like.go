package models

import "gorm.io/gorm"

// Like represents a like on a recipe
type Like struct {
	gorm.Model
	RecipeID string `json:"recipe_id" gorm:"index;uniqueIndex:idx_recipe_user_like"` // ID of the liked recipe (MongoDB ObjectID as string)
	UserID   uint   `json:"user_id" gorm:"index;uniqueIndex:idx_recipe_user_like"`   // ID of the user who liked the recipe
}
