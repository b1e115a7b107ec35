package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// SubmitReviewRequest is the body of POST /reviews. The reviewer comes
// from the auth token, never from the body.
type SubmitReviewRequest struct {
	BookID  uuid.UUID `json:"book_id"`
	Rating  float64   `json:"rating"`
	Comment string    `json:"comment"`
}

func (r SubmitReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required),
		validation.Field(&r.Rating, validation.Required, validation.Min(1.0), validation.Max(5.0)),
		validation.Field(&r.Comment, validation.Length(0, 2000)),
	)
}

// UserInfo is the reviewer's public subset embedded in review responses.
type UserInfo struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar *string   `json:"avatar,omitempty"`
}

// ReviewResponse is the API shape of a review.
type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	BookID    uuid.UUID `json:"book_id"`
	Rating    float64   `json:"rating"`
	Comment   string    `json:"comment"`
	User      UserInfo  `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts a joined row into the API shape.
func (r ReviewWithUser) ToResponse() ReviewResponse {
	return ReviewResponse{
		ID:      r.ID,
		BookID:  r.BookID,
		Rating:  r.Rating,
		Comment: r.Comment,
		User: UserInfo{
			ID:     r.UserID,
			Name:   r.UserName,
			Avatar: r.UserAvatar,
		},
		CreatedAt: r.CreatedAt,
	}
}
