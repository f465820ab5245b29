package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/monngon/backend/internal/models"
	"github.com/monngon/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
)

// RecipeHandler handles HTTP requests related to recipes
type RecipeHandler struct {
	recipeRepository repositories.RecipeRepository
	userRepository   repositories.UserRepository // To fetch author details for recipe responses
}

// NewRecipeHandler creates a new RecipeHandler
func NewRecipeHandler(recipeRepo repositories.RecipeRepository, userRepo repositories.UserRepository) *RecipeHandler {
	return &RecipeHandler{
		recipeRepository: recipeRepo,
		userRepository:   userRepo,
	}
}

// RegisterRecipeRoutes registers recipe-related routes
func (h *RecipeHandler) RegisterRecipeRoutes(g *echo.Group) {
	g.POST("/recipes", h.CreateRecipe)
	g.GET("/recipes/:id", h.GetRecipe)
	g.GET("/recipes", h.GetRecipes) // Get all recipes or recipes by user (with query param)
	g.PUT("/recipes/:id", h.UpdateRecipe)
	g.DELETE("/recipes/:id", h.DeleteRecipe)
}

// CreateRecipe creates a new recipe
func (h *RecipeHandler) CreateRecipe(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	recipe := &models.Recipe{
		UserID:          strconv.FormatUint(uint64(currentUserID), 10),
		Title:           req.Title,
		Description:     req.Description,
		Ingredients:     req.Ingredients,
		Steps:           req.Steps,
		ImageURLs:       req.ImageURLs,
		CookTimeMinutes: req.CookTimeMinutes,
		Servings:        req.Servings,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := h.recipeRepository.CreateRecipe(c.Request().Context(), recipe); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, recipe)
}

// GetRecipe retrieves a recipe by ID
func (h *RecipeHandler) GetRecipe(c echo.Context) error {
	recipeID := c.Param("id")

	recipe, err := h.recipeRepository.GetRecipeByID(c.Request().Context(), recipeID)
	if err != nil {
		if err.Error() == "recipe not found" || err == mongo.ErrNoDocuments {
			return echo.NewHTTPError(http.StatusNotFound, "Recipe not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, recipe)
}

// GetRecipes retrieves multiple recipes
func (h *RecipeHandler) GetRecipes(c echo.Context) error {
	userID := c.QueryParam("user_id")
	skip, _ := strconv.ParseInt(c.QueryParam("skip"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if limit == 0 {
		limit = 10 // Default limit
	}

	var recipes []models.Recipe
	var err error

	if userID != "" {
		recipes, err = h.recipeRepository.GetRecipesByUserID(c.Request().Context(), userID, skip, limit)
	} else {
		recipes, err = h.recipeRepository.GetAllRecipes(c.Request().Context(), skip, limit)
	}

	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, recipes)
}

// UpdateRecipe updates an existing recipe
func (h *RecipeHandler) UpdateRecipe(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	recipeID := c.Param("id")

	var req models.UpdateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	existingRecipe, err := h.recipeRepository.GetRecipeByID(c.Request().Context(), recipeID)
	if err != nil {
		if err.Error() == "recipe not found" || err == mongo.ErrNoDocuments {
			return echo.NewHTTPError(http.StatusNotFound, "Recipe not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Ensure the user updating the recipe is the owner
	if existingRecipe.UserID != strconv.FormatUint(uint64(currentUserID), 10) {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to update this recipe")
	}

	if req.Title != "" {
		existingRecipe.Title = req.Title
	}
	if req.Description != "" {
		existingRecipe.Description = req.Description
	}
	if req.Ingredients != nil {
		existingRecipe.Ingredients = req.Ingredients
	}
	if req.Steps != nil {
		existingRecipe.Steps = req.Steps
	}
	if req.ImageURLs != nil {
		existingRecipe.ImageURLs = req.ImageURLs
	}
	if req.CookTimeMinutes != 0 {
		existingRecipe.CookTimeMinutes = req.CookTimeMinutes
	}
	if req.Servings != 0 {
		existingRecipe.Servings = req.Servings
	}
	existingRecipe.UpdatedAt = time.Now()

	if err := h.recipeRepository.UpdateRecipe(c.Request().Context(), recipeID, existingRecipe); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, existingRecipe)
}

// DeleteRecipe deletes a recipe
func (h *RecipeHandler) DeleteRecipe(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	recipeID := c.Param("id")

	existingRecipe, err := h.recipeRepository.GetRecipeByID(c.Request().Context(), recipeID)
	if err != nil {
		if err.Error() == "recipe not found" || err == mongo.ErrNoDocuments {
			return echo.NewHTTPError(http.StatusNotFound, "Recipe not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Ensure the user deleting the recipe is the owner
	if existingRecipe.UserID != strconv.FormatUint(uint64(currentUserID), 10) {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this recipe")
	}

	if err := h.recipeRepository.DeleteRecipe(c.Request().Context(), recipeID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
