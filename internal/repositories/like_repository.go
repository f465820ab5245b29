package repositories

import (
	"fmt"

	"github.com/monngon/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(recipeID string, userID uint) error
	GetLikesCountByRecipeID(recipeID string) (int64, error)
	HasUserLikedRecipe(recipeID string, userID uint) (bool, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike creates a new like in PostgreSQL
func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

// DeleteLike deletes a like from PostgreSQL
func (r *PostgresLikeRepository) DeleteLike(recipeID string, userID uint) error {
	res := r.db.Where("recipe_id = ? AND user_id = ?", recipeID, userID).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("like not found")
	}
	return nil
}

// GetLikesCountByRecipeID retrieves the count of likes for a specific recipe
func (r *PostgresLikeRepository) GetLikesCountByRecipeID(recipeID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("recipe_id = ?", recipeID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// HasUserLikedRecipe checks if a user has liked a specific recipe
func (r *PostgresLikeRepository) HasUserLikedRecipe(recipeID string, userID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("recipe_id = ? AND user_id = ?", recipeID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
