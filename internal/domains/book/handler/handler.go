package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"bookreview-backend/internal/domains/book/model"
	"bookreview-backend/internal/domains/book/service"
	"bookreview-backend/internal/shared/response"
	"bookreview-backend/pkg/logger"
)

// BookHandler handles HTTP requests for the catalog.
type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(service service.ServiceInterface) *BookHandler {
	return &BookHandler{service: service}
}

// ========================================
// PUBLIC ENDPOINTS
// ========================================

// ListBooks handles GET /books
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req model.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	resp, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// GetBook handles GET /books/:id
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book ID format")
		return
	}

	resp, err := h.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ========================================
// ADMIN ENDPOINTS
// ========================================

// CreateBook handles POST /books (multipart, admin only)
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	cover, err := readCoverFile(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	b, err := h.service.Create(c.Request.Context(), req, cover)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/books/"+b.ID.String())
	response.Success(c, http.StatusCreated, b)
}

// UpdateBook handles PUT /books/:id (multipart, admin only)
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book ID format")
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	cover, err := readCoverFile(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, req, cover)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

// DeleteBook handles DELETE /books/:id (admin only)
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

// readCoverFile pulls the optional "cover" file out of the multipart
// form. Returns nil when the field is absent.
func readCoverFile(c *gin.Context) (*service.CoverUpload, error) {
	fileHeader, err := c.FormFile("cover")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, errors.New("invalid cover upload")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, errors.New("cannot read cover upload")
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.New("cannot read cover upload")
	}

	return &service.CoverUpload{
		Data:        data,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}, nil
}

// ========================================
// ERROR MAPPING
// ========================================

func (h *BookHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", vErrs)
	case errors.Is(err, model.ErrInvalidSortField):
		response.BadRequest(c, model.ErrInvalidSortField.Error())
	case errors.Is(err, model.ErrBookNotFound):
		response.NotFound(c, model.ErrBookNotFound.Error())
	default:
		logger.Error("book handler error", err)
		response.InternalServerError(c, "something went wrong")
	}
}
