package models

import "time"

// Favorite represents a recipe saved to a user's cookbook
type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_recipe_fav"`
	RecipeID  string    `json:"recipe_id" gorm:"index;uniqueIndex:idx_user_recipe_fav"`
	CreatedAt time.Time `json:"created_at"`
}
