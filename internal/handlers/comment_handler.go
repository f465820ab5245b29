package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/monngon/backend/internal/models"
	"github.com/monngon/backend/internal/notify"
	"github.com/monngon/backend/internal/repositories"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository     repositories.CommentRepository
	recipeRepository      repositories.RecipeRepository // To update comment counts in recipes
	userRepository        repositories.UserRepository   // To fetch actor details for notifications
	commentLikeRepository repositories.CommentLikeRepository
	notifier              *notify.Aggregator
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	commentRepo repositories.CommentRepository,
	recipeRepo repositories.RecipeRepository,
	userRepo repositories.UserRepository,
	commentLikeRepo repositories.CommentLikeRepository,
	notifier *notify.Aggregator,
) *CommentHandler {
	return &CommentHandler{
		commentRepository:     commentRepo,
		recipeRepository:      recipeRepo,
		userRepository:        userRepo,
		commentLikeRepository: commentLikeRepo,
		notifier:              notifier,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/recipes/:recipe_id/comments", h.CreateComment)
	g.GET("/recipes/:recipe_id/comments", h.GetCommentsByRecipeID)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
	g.POST("/comments/:id/likes", h.LikeComment)
	g.DELETE("/comments/:id/likes", h.UnlikeComment)
}

// CreateComment creates a new comment on a recipe
func (h *CommentHandler) CreateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	recipeID := c.Param("recipe_id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Verify recipe exists
	recipe, err := h.recipeRepository.GetRecipeByID(c.Request().Context(), recipeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Recipe not found")
	}

	comment := &models.Comment{
		RecipeID: recipeID,
		UserID:   currentUserID,
		Content:  req.Content,
	}

	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Increment comments count in the recipe
	go h.recipeRepository.IncrementCommentsCount(context.Background(), recipeID)

	// Notify the recipe owner (skip self-comments)
	ownerID := parseOwnerID(recipe.UserID)
	if ownerID != 0 && ownerID != currentUserID {
		if actor, err := h.userRepository.GetUserByID(currentUserID); err == nil {
			count, _ := h.commentRepository.GetCommentsCountByRecipeID(recipeID)
			others := count - 1
			if others < 0 {
				others = 0
			}
			recordNotification(h.notifier, notify.Event{
				RecipientID:    ownerID,
				Kind:           notify.KindNewPostComment,
				RelatedID:      recipeID,
				ActorID:        actor.ID,
				ActorName:      actor.Name,
				ActorAvatarURL: actor.AvatarURL,
				OthersCount:    strconv.FormatInt(others, 10),
				Title:          recipe.Title,
			})
		}
	}

	return c.JSON(http.StatusCreated, comment)
}

// GetCommentsByRecipeID retrieves all comments for a specific recipe
func (h *CommentHandler) GetCommentsByRecipeID(c echo.Context) error {
	recipeID := c.Param("recipe_id")

	// Verify recipe exists
	_, err := h.recipeRepository.GetRecipeByID(c.Request().Context(), recipeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Recipe not found")
	}

	comments, err := h.commentRepository.GetCommentsByRecipeID(recipeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, comments)
}

// UpdateComment updates an existing comment
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}

	if comment.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to update this comment")
	}

	comment.Content = req.Content
	if err := h.commentRepository.UpdateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, comment)
}

// DeleteComment deletes a comment
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	comment, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}

	if comment.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this comment")
	}

	if err := h.commentRepository.DeleteComment(uint(commentID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Decrement comments count in the recipe
	go h.recipeRepository.DecrementCommentsCount(context.Background(), comment.RecipeID)

	return c.NoContent(http.StatusNoContent)
}

// LikeComment handles liking a comment
func (h *CommentHandler) LikeComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	comment, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}

	hasLiked, err := h.commentLikeRepository.HasUserLikedComment(uint(commentID), currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if hasLiked {
		return echo.NewHTTPError(http.StatusConflict, "Comment already liked by this user")
	}

	like := &models.CommentLike{
		CommentID: uint(commentID),
		UserID:    currentUserID,
	}

	if err := h.commentLikeRepository.CreateCommentLike(like); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Notify the comment owner (skip self-likes)
	if comment.UserID != currentUserID {
		if actor, err := h.userRepository.GetUserByID(currentUserID); err == nil {
			count, _ := h.commentLikeRepository.GetLikesCount(uint(commentID))
			others := count - 1
			if others < 0 {
				others = 0
			}
			recordNotification(h.notifier, notify.Event{
				RecipientID:    comment.UserID,
				Kind:           notify.KindNewCommentLike,
				RelatedID:      strconv.FormatUint(commentID, 10),
				ActorID:        actor.ID,
				ActorName:      actor.Name,
				ActorAvatarURL: actor.AvatarURL,
				OthersCount:    strconv.FormatInt(others, 10),
				Title:          snippet(comment.Content, 40),
			})
		}
	}

	return c.JSON(http.StatusCreated, like)
}

// UnlikeComment handles unliking a comment
func (h *CommentHandler) UnlikeComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	if err := h.commentLikeRepository.DeleteCommentLike(uint(commentID), currentUserID); err != nil {
		if err.Error() == "comment like not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Comment like not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// snippet truncates s to at most n runes for use in notification text
func snippet(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
