package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/monngon/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RecipeRepository defines the interface for recipe data operations
type RecipeRepository interface {
	CreateRecipe(ctx context.Context, recipe *models.Recipe) error
	GetRecipeByID(ctx context.Context, id string) (*models.Recipe, error)
	GetRecipesByUserID(ctx context.Context, userID string, skip, limit int64) ([]models.Recipe, error)
	GetAllRecipes(ctx context.Context, skip, limit int64) ([]models.Recipe, error)
	CountRecipes(ctx context.Context) (int64, error)
	UpdateRecipe(ctx context.Context, id string, recipe *models.Recipe) error
	DeleteRecipe(ctx context.Context, id string) error
	IncrementLikesCount(ctx context.Context, recipeID string) error
	DecrementLikesCount(ctx context.Context, recipeID string) error
	IncrementCommentsCount(ctx context.Context, recipeID string) error
	DecrementCommentsCount(ctx context.Context, recipeID string) error
	IncrementFavoritesCount(ctx context.Context, recipeID string) error
	DecrementFavoritesCount(ctx context.Context, recipeID string) error
}

// MongoRecipeRepository implements RecipeRepository for MongoDB
type MongoRecipeRepository struct {
	collection *mongo.Collection
}

// NewMongoRecipeRepository creates a new MongoRecipeRepository
func NewMongoRecipeRepository(db *mongo.Database) *MongoRecipeRepository {
	return &MongoRecipeRepository{collection: db.Collection("recipes")}
}

// CreateRecipe creates a new recipe in MongoDB
func (r *MongoRecipeRepository) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	recipe.ID = primitive.NewObjectID()
	recipe.CreatedAt = time.Now()
	recipe.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, recipe)
	return err
}

// GetRecipeByID retrieves a recipe by ID from MongoDB
func (r *MongoRecipeRepository) GetRecipeByID(ctx context.Context, id string) (*models.Recipe, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid recipe ID format: %w", err)
	}

	var recipe models.Recipe
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&recipe)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("recipe not found")
		}
		return nil, err
	}
	return &recipe, nil
}

// GetRecipesByUserID retrieves recipes by a specific user from MongoDB
func (r *MongoRecipeRepository) GetRecipesByUserID(ctx context.Context, userID string, skip, limit int64) ([]models.Recipe, error) {
	var recipes []models.Recipe
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetAllRecipes retrieves all recipes from MongoDB with pagination
func (r *MongoRecipeRepository) GetAllRecipes(ctx context.Context, skip, limit int64) ([]models.Recipe, error) {
	var recipes []models.Recipe
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// CountRecipes returns the total number of recipes
func (r *MongoRecipeRepository) CountRecipes(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.D{})
}

// UpdateRecipe updates an existing recipe in MongoDB
func (r *MongoRecipeRepository) UpdateRecipe(ctx context.Context, id string, recipe *models.Recipe) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid recipe ID format: %w", err)
	}

	recipe.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"title":             recipe.Title,
			"description":       recipe.Description,
			"ingredients":       recipe.Ingredients,
			"steps":             recipe.Steps,
			"image_urls":        recipe.ImageURLs,
			"cook_time_minutes": recipe.CookTimeMinutes,
			"servings":          recipe.Servings,
			"updated_at":        recipe.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return fmt.Errorf("recipe not found or not modified")
	}
	return nil
}

// DeleteRecipe deletes a recipe by ID from MongoDB
func (r *MongoRecipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid recipe ID format: %w", err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("recipe not found")
	}
	return nil
}

func (r *MongoRecipeRepository) incCounter(ctx context.Context, recipeID, field string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(recipeID)
	if err != nil {
		return fmt.Errorf("invalid recipe ID format: %w", err)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{field: delta}})
	return err
}

// IncrementLikesCount increments the likes count of a recipe
func (r *MongoRecipeRepository) IncrementLikesCount(ctx context.Context, recipeID string) error {
	return r.incCounter(ctx, recipeID, "likes_count", 1)
}

// DecrementLikesCount decrements the likes count of a recipe
func (r *MongoRecipeRepository) DecrementLikesCount(ctx context.Context, recipeID string) error {
	return r.incCounter(ctx, recipeID, "likes_count", -1)
}

// IncrementCommentsCount increments the comments count of a recipe
func (r *MongoRecipeRepository) IncrementCommentsCount(ctx context.Context, recipeID string) error {
	return r.incCounter(ctx, recipeID, "comments_count", 1)
}

// DecrementCommentsCount decrements the comments count of a recipe
func (r *MongoRecipeRepository) DecrementCommentsCount(ctx context.Context, recipeID string) error {
	return r.incCounter(ctx, recipeID, "comments_count", -1)
}

// IncrementFavoritesCount increments the favorites count of a recipe
func (r *MongoRecipeRepository) IncrementFavoritesCount(ctx context.Context, recipeID string) error {
	return r.incCounter(ctx, recipeID, "favorites_count", 1)
}

// DecrementFavoritesCount decrements the favorites count of a recipe
func (r *MongoRecipeRepository) DecrementFavoritesCount(ctx context.Context, recipeID string) error {
	return r.incCounter(ctx, recipeID, "favorites_count", -1)
}
