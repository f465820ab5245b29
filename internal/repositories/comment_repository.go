package repositories

import (
	"github.com/monngon/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetCommentsByRecipeID(recipeID string) ([]models.Comment, error)
	GetCommentsCountByRecipeID(recipeID string) (int64, error)
	UpdateComment(comment *models.Comment) error
	DeleteComment(id uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment in PostgreSQL
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentByID retrieves a comment by ID from PostgreSQL
func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByRecipeID retrieves all comments for a specific recipe from PostgreSQL
func (r *PostgresCommentRepository) GetCommentsByRecipeID(recipeID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("recipe_id = ?", recipeID).Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// GetCommentsCountByRecipeID retrieves the count of comments for a specific recipe
func (r *PostgresCommentRepository) GetCommentsCountByRecipeID(recipeID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Comment{}).Where("recipe_id = ?", recipeID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateComment updates an existing comment in PostgreSQL
func (r *PostgresCommentRepository) UpdateComment(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// DeleteComment deletes a comment by ID from PostgreSQL
func (r *PostgresCommentRepository) DeleteComment(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}
