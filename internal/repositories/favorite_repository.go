package repositories

import (
	"fmt"

	"github.com/monngon/backend/internal/models"
	"gorm.io/gorm"
)

// FavoriteRepository defines the interface for saved recipe operations
type FavoriteRepository interface {
	SaveRecipe(favorite *models.Favorite) error
	UnsaveRecipe(userID uint, recipeID string) error
	IsRecipeSaved(userID uint, recipeID string) (bool, error)
	GetFavoritesByUser(userID uint) ([]models.Favorite, error)
	GetSavedRecipeIDs(userID uint, recipeIDs []string) (map[string]bool, error)
}

// PostgresFavoriteRepository implements FavoriteRepository
type PostgresFavoriteRepository struct {
	db *gorm.DB
}

func NewPostgresFavoriteRepository(db *gorm.DB) *PostgresFavoriteRepository {
	return &PostgresFavoriteRepository{db: db}
}

func (r *PostgresFavoriteRepository) SaveRecipe(favorite *models.Favorite) error {
	return r.db.Create(favorite).Error
}

func (r *PostgresFavoriteRepository) UnsaveRecipe(userID uint, recipeID string) error {
	res := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("favorite not found")
	}
	return nil
}

func (r *PostgresFavoriteRepository) IsRecipeSaved(userID uint, recipeID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Favorite{}).Where("user_id = ? AND recipe_id = ?", userID, recipeID).Count(&count).Error
	return count > 0, err
}

func (r *PostgresFavoriteRepository) GetFavoritesByUser(userID uint) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&favorites).Error
	return favorites, err
}

func (r *PostgresFavoriteRepository) GetSavedRecipeIDs(userID uint, recipeIDs []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(recipeIDs) == 0 {
		return result, nil
	}
	var favorites []models.Favorite
	err := r.db.Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).Find(&favorites).Error
	if err != nil {
		return nil, err
	}
	for _, f := range favorites {
		result[f.RecipeID] = true
	}
	return result, nil
}
