package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	bookmodel "bookreview-backend/internal/domains/book/model"
	"bookreview-backend/internal/domains/review/model"
	"bookreview-backend/internal/domains/review/service"
	"bookreview-backend/internal/shared/middleware"
	"bookreview-backend/internal/shared/response"
	"bookreview-backend/pkg/logger"
)

// ReviewHandler handles HTTP requests for reviews.
type ReviewHandler struct {
	service service.ServiceInterface
}

func NewReviewHandler(service service.ServiceInterface) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// GetBookReviews handles GET /reviews/:bookId (public)
func (h *ReviewHandler) GetBookReviews(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("bookId"))
	if err != nil {
		response.BadRequest(c, "invalid book ID format")
		return
	}

	reviews, err := h.service.ListForBook(c.Request.Context(), bookID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, reviews)
}

// SubmitReview handles POST /reviews (authenticated)
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	userID, ok := middleware.AbortIfUnauthenticated(c)
	if !ok {
		return
	}

	var req model.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// handleError maps domain errors to HTTP status codes.
func (h *ReviewHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", vErrs)
	case errors.Is(err, model.ErrAlreadyReviewed):
		response.Conflict(c, model.ErrAlreadyReviewed.Error())
	case errors.Is(err, bookmodel.ErrBookNotFound):
		response.NotFound(c, bookmodel.ErrBookNotFound.Error())
	case errors.Is(err, model.ErrReviewNotFound):
		response.NotFound(c, model.ErrReviewNotFound.Error())
	default:
		logger.Error("review handler error", err)
		response.InternalServerError(c, "something went wrong")
	}
}
