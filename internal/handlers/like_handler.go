package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/monngon/backend/internal/models"
	"github.com/monngon/backend/internal/notify"
	"github.com/monngon/backend/internal/repositories"
)

// LikeHandler handles HTTP requests related to recipe likes
type LikeHandler struct {
	likeRepository   repositories.LikeRepository
	recipeRepository repositories.RecipeRepository // To update like counts in recipes
	userRepository   repositories.UserRepository   // To fetch actor details for notifications
	notifier         *notify.Aggregator
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, recipeRepo repositories.RecipeRepository, userRepo repositories.UserRepository, notifier *notify.Aggregator) *LikeHandler {
	return &LikeHandler{
		likeRepository:   likeRepo,
		recipeRepository: recipeRepo,
		userRepository:   userRepo,
		notifier:         notifier,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/recipes/:recipe_id/likes", h.LikeRecipe)
	g.DELETE("/recipes/:recipe_id/likes", h.UnlikeRecipe)
	g.GET("/recipes/:recipe_id/likes/count", h.GetLikesCountForRecipe)
	g.GET("/recipes/:recipe_id/likes/status", h.GetUserLikeStatusForRecipe)
}

// LikeRecipe handles liking a recipe
func (h *LikeHandler) LikeRecipe(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	recipeID := c.Param("recipe_id")

	// Verify recipe exists
	recipe, err := h.recipeRepository.GetRecipeByID(c.Request().Context(), recipeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Recipe not found")
	}

	// Check if user has already liked the recipe
	hasLiked, err := h.likeRepository.HasUserLikedRecipe(recipeID, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if hasLiked {
		return echo.NewHTTPError(http.StatusConflict, "Recipe already liked by this user")
	}

	like := &models.Like{
		RecipeID: recipeID,
		UserID:   currentUserID,
	}

	if err := h.likeRepository.CreateLike(like); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Increment likes count in the recipe
	go h.recipeRepository.IncrementLikesCount(c.Request().Context(), recipeID)

	// Notify the recipe owner (skip self-likes)
	ownerID := parseOwnerID(recipe.UserID)
	if ownerID != 0 && ownerID != currentUserID {
		if actor, err := h.userRepository.GetUserByID(currentUserID); err == nil {
			count, _ := h.likeRepository.GetLikesCountByRecipeID(recipeID)
			others := count - 1
			if others < 0 {
				others = 0
			}
			recordNotification(h.notifier, notify.Event{
				RecipientID:    ownerID,
				Kind:           notify.KindNewPostLike,
				RelatedID:      recipeID,
				ActorID:        actor.ID,
				ActorName:      actor.Name,
				ActorAvatarURL: actor.AvatarURL,
				OthersCount:    strconv.FormatInt(others, 10),
				Title:          recipe.Title,
			})
		}
	}

	return c.JSON(http.StatusCreated, like)
}

// UnlikeRecipe handles unliking a recipe
func (h *LikeHandler) UnlikeRecipe(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	recipeID := c.Param("recipe_id")

	// Verify recipe exists
	_, err := h.recipeRepository.GetRecipeByID(c.Request().Context(), recipeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Recipe not found")
	}

	if err := h.likeRepository.DeleteLike(recipeID, currentUserID); err != nil {
		if err.Error() == "like not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Like not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Decrement likes count in the recipe
	go h.recipeRepository.DecrementLikesCount(c.Request().Context(), recipeID)

	return c.NoContent(http.StatusNoContent)
}

// GetLikesCountForRecipe retrieves the total number of likes for a specific recipe
func (h *LikeHandler) GetLikesCountForRecipe(c echo.Context) error {
	recipeID := c.Param("recipe_id")

	count, err := h.likeRepository.GetLikesCountByRecipeID(recipeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"recipe_id": recipeID, "likes_count": count})
}

// GetUserLikeStatusForRecipe checks if the authenticated user has liked a specific recipe
func (h *LikeHandler) GetUserLikeStatusForRecipe(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	recipeID := c.Param("recipe_id")

	hasLiked, err := h.likeRepository.HasUserLikedRecipe(recipeID, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"recipe_id": recipeID, "user_id": currentUserID, "has_liked": hasLiked})
}
