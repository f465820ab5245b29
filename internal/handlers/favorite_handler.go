package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/monngon/backend/internal/models"
	"github.com/monngon/backend/internal/repositories"
)

// FavoriteHandler handles saved recipe HTTP requests
type FavoriteHandler struct {
	favoriteRepository repositories.FavoriteRepository
	recipeRepository   repositories.RecipeRepository
}

// NewFavoriteHandler creates a new FavoriteHandler
func NewFavoriteHandler(favoriteRepo repositories.FavoriteRepository, recipeRepo repositories.RecipeRepository) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteRepository: favoriteRepo,
		recipeRepository:   recipeRepo,
	}
}

// RegisterFavoriteRoutes registers favorite routes
func (h *FavoriteHandler) RegisterFavoriteRoutes(g *echo.Group) {
	g.POST("/recipes/:id/save", h.SaveRecipe)
	g.DELETE("/recipes/:id/save", h.UnsaveRecipe)
	g.GET("/favorites", h.GetFavorites)
}

// SaveRecipe bookmarks a recipe into the user's cookbook
func (h *FavoriteHandler) SaveRecipe(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	recipeID := c.Param("id")

	// Verify recipe exists
	_, err := h.recipeRepository.GetRecipeByID(c.Request().Context(), recipeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Recipe not found")
	}

	// Check if already saved
	isSaved, _ := h.favoriteRepository.IsRecipeSaved(currentUserID, recipeID)
	if isSaved {
		return echo.NewHTTPError(http.StatusConflict, "Recipe already saved")
	}

	favorite := &models.Favorite{
		UserID:   currentUserID,
		RecipeID: recipeID,
	}

	if err := h.favoriteRepository.SaveRecipe(favorite); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	go h.recipeRepository.IncrementFavoritesCount(context.Background(), recipeID)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"saved": true}})
}

// UnsaveRecipe removes a recipe from the user's cookbook
func (h *FavoriteHandler) UnsaveRecipe(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	recipeID := c.Param("id")

	if err := h.favoriteRepository.UnsaveRecipe(currentUserID, recipeID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	go h.recipeRepository.DecrementFavoritesCount(context.Background(), recipeID)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"saved": false}})
}

// GetFavorites lists the user's saved recipes
func (h *FavoriteHandler) GetFavorites(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	favorites, err := h.favoriteRepository.GetFavoritesByUser(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	recipes := make([]models.Recipe, 0, len(favorites))
	for _, f := range favorites {
		recipe, err := h.recipeRepository.GetRecipeByID(c.Request().Context(), f.RecipeID)
		if err != nil {
			continue // recipe removed since it was saved
		}
		recipes = append(recipes, *recipe)
	}

	return c.JSON(http.StatusOK, recipes)
}
