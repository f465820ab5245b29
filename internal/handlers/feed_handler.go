package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/monngon/backend/internal/models"
	"github.com/monngon/backend/internal/repositories"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	recipeRepository   repositories.RecipeRepository
	userRepository     repositories.UserRepository
	likeRepository     repositories.LikeRepository
	favoriteRepository repositories.FavoriteRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	recipeRepo repositories.RecipeRepository,
	userRepo repositories.UserRepository,
	likeRepo repositories.LikeRepository,
	favoriteRepo repositories.FavoriteRepository,
) *FeedHandler {
	return &FeedHandler{
		recipeRepository:   recipeRepo,
		userRepository:     userRepo,
		likeRepository:     likeRepo,
		favoriteRepository: favoriteRepo,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// EnrichedRecipe is a recipe with author info and user-specific flags
type EnrichedRecipe struct {
	models.Recipe
	Author  models.UserCompact `json:"author"`
	IsLiked bool               `json:"is_liked"`
	IsSaved bool               `json:"is_saved"`
}

// GetFeed returns enriched feed recipes for the current user
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	skip := int64((page - 1) * limit)

	recipes, err := h.recipeRepository.GetAllRecipes(c.Request().Context(), skip, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	totalItems, err := h.recipeRepository.CountRecipes(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Collect unique author IDs and recipe IDs
	authorIDs := make(map[string]bool)
	recipeIDs := make([]string, len(recipes))
	for i, r := range recipes {
		authorIDs[r.UserID] = true
		recipeIDs[i] = r.ID.Hex()
	}

	// Build author map
	userMap := make(map[string]models.UserCompact)
	for uid := range authorIDs {
		id := parseOwnerID(uid)
		if id == 0 {
			continue
		}
		user, err := h.userRepository.GetUserByID(id)
		if err == nil {
			userMap[uid] = user.ToCompact()
		}
	}

	// Per-user saved flags in a single query
	savedMap, err := h.favoriteRepository.GetSavedRecipeIDs(currentUserID, recipeIDs)
	if err != nil {
		savedMap = map[string]bool{}
	}

	enriched := make([]EnrichedRecipe, len(recipes))
	for i, r := range recipes {
		isLiked, _ := h.likeRepository.HasUserLikedRecipe(r.ID.Hex(), currentUserID)
		enriched[i] = EnrichedRecipe{
			Recipe:  r,
			Author:  userMap[r.UserID],
			IsLiked: isLiked,
			IsSaved: savedMap[r.ID.Hex()],
		}
	}

	totalPages := int(math.Ceil(float64(totalItems) / float64(limit)))

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"recipes": enriched,
		},
		"meta": echo.Map{
			"currentPage":     page,
			"totalPages":      totalPages,
			"totalItems":      totalItems,
			"itemsPerPage":    limit,
			"hasNextPage":     page < totalPages,
			"hasPreviousPage": page > 1,
		},
	})
}
