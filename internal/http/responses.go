package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/estantedigital/plataforma/internal/auth"
	"github.com/estantedigital/plataforma/internal/config"
	"github.com/estantedigital/plataforma/internal/database/pessoas"
	"github.com/estantedigital/plataforma/internal/docstore/books"
	"github.com/estantedigital/plataforma/internal/sync"
)

// Envelope is the uniform response shape: a success flag, a human
// message, and a machine-readable error code on failure.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondOK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

func respondFail(c *gin.Context, status int, message, code string) {
	c.JSON(status, Envelope{Success: false, Message: message, Error: code})
}

// respondError maps service and synchronizer errors onto the envelope.
// Store diagnostics are only attached outside production.
func respondError(c *gin.Context, env config.Environment, err error) {
	if se, ok := sync.AsSyncError(err); ok {
		body := Envelope{
			Success: false,
			Message: se.Message,
			Error:   string(se.Code),
			Field:   se.Field,
		}
		if env != config.EnvProduction {
			body.Details = se.Detail
		}
		c.JSON(se.Code.HTTPStatus(), body)
		return
	}

	switch {
	case errors.Is(err, auth.ErrMissingFields):
		respondFail(c, http.StatusBadRequest, "campos obrigatórios não fornecidos", "MISSING_REQUIRED_FIELDS")
	case errors.Is(err, auth.ErrInvalidRole), errors.Is(err, auth.ErrInvalidTipo):
		respondFail(c, http.StatusBadRequest, "role ou tipo inválido", "INVALID_ROLE_OR_TIPO")
	case errors.Is(err, pessoas.ErrNotFound):
		respondFail(c, http.StatusNotFound, "usuário não encontrado", "USER_NOT_FOUND")
	case errors.Is(err, auth.ErrInvalidPassword):
		respondFail(c, http.StatusUnauthorized, "senha incorreta", "INVALID_PASSWORD")
	case errors.Is(err, auth.ErrInvalidDocument):
		respondFail(c, http.StatusUnauthorized, "documento oficial incorreto", "INVALID_DOCUMENT")
	case errors.Is(err, books.ErrNotFound):
		respondFail(c, http.StatusNotFound, "livro não encontrado", "BOOK_NOT_FOUND")
	case errors.Is(err, books.ErrDuplicateCode):
		respondFail(c, http.StatusConflict, "código de livro já cadastrado", "DUPLICATE_CODE")
	case errors.Is(err, books.ErrInvalidRating):
		respondFail(c, http.StatusBadRequest, "avaliação deve estar entre 1 e 5", "INVALID_RATING")
	default:
		body := Envelope{
			Success: false,
			Message: "erro interno do servidor",
			Error:   "INTERNAL_ERROR",
		}
		if env != config.EnvProduction {
			body.Details = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}
