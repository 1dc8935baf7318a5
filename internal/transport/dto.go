package transport

import (
	"time"

	"github.com/Skotchmaster/epicbeats/internal/domain"
)

type CreateInstrumentalRequest struct {
	Title     string  `json:"title"     validate:"required,max=255"`
	Genre     string  `json:"genre"     validate:"required,max=64"`
	BPM       int     `json:"bpm"       validate:"gt=0,lte=999"`
	CoverPath string  `json:"coverPath" validate:"max=512"`
	AudioPath string  `json:"audioPath" validate:"max=512"`
	Price     float64 `json:"price"     validate:"gte=0"`
}

// PatchInstrumentalRequest only changes the fields that are present.
type PatchInstrumentalRequest struct {
	Title     *string  `json:"title"`
	Genre     *string  `json:"genre"`
	BPM       *int     `json:"bpm"`
	CoverPath *string  `json:"coverPath"`
	AudioPath *string  `json:"audioPath"`
	Price     *float64 `json:"price"`
}

type RegisterRequest struct {
	UserName string `json:"userName" validate:"required,min=3,max=64"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ChangeEmailRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

type LoginResult struct {
	Token     string
	CSRFToken string
	ExpiresAt time.Time
	User      domain.UserSummary
}

type LoginResponse struct {
	CSRFToken string             `json:"csrfToken"`
	ExpiresAt time.Time          `json:"expiresAt"`
	User      domain.UserSummary `json:"user"`
}

type SearchResponse struct {
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Size  int                   `json:"size"`
	Items []domain.Instrumental `json:"items"`
}

type IDResponse struct {
	ID uint `json:"id"`
}
