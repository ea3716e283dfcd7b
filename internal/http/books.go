package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/estantedigital/plataforma/internal/auth"
	"github.com/estantedigital/plataforma/internal/config"
	"github.com/estantedigital/plataforma/internal/documents"
	"github.com/estantedigital/plataforma/internal/docstore/books"
)

// BooksController serves the book catalog endpoints.
type BooksController struct {
	repo *books.Repository
	env  config.Environment
}

func NewBooksController(repo *books.Repository, env config.Environment) *BooksController {
	return &BooksController{repo: repo, env: env}
}

type createBookRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Author        string   `json:"author"`
	Code          string   `json:"code"`
	PublishedYear int      `json:"publishedYear"`
	Theme         string   `json:"theme"`
	Pages         int      `json:"pages"`
	Language      string   `json:"language"`
	Sinopsis      *string  `json:"sinopsis"`
	URL           *string  `json:"url"`
	Repository    *string  `json:"repository"`
	Tags          []string `json:"tags"`
}

type updateBookRequest struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	Author        *string  `json:"author"`
	PublishedYear *int     `json:"publishedYear"`
	Theme         *string  `json:"theme"`
	Pages         *int     `json:"pages"`
	Language      *string  `json:"language"`
	Sinopsis      *string  `json:"sinopsis"`
	URL           *string  `json:"url"`
	Repository    *string  `json:"repository"`
	Tags          []string `json:"tags"`
}

type commentRequest struct {
	Comment string `json:"comment"`
}

type ratingRequest struct {
	Rating int `json:"rating"`
}

func (ct *BooksController) List(c *gin.Context) {
	list, err := ct.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, ct.env, err)
		return
	}
	respondOK(c, http.StatusOK, "livros listados com sucesso", gin.H{
		"books": list,
		"count": len(list),
	})
}

func (ct *BooksController) Get(c *gin.Context) {
	id, ok := ct.bookID(c)
	if !ok {
		return
	}

	book, err := ct.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, ct.env, err)
		return
	}
	respondOK(c, http.StatusOK, "livro encontrado", book)
}

func (ct *BooksController) Create(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" || req.Description == "" || req.Author == "" {
		respondFail(c, http.StatusBadRequest, "title, description e author são obrigatórios", "MISSING_REQUIRED_FIELDS")
		return
	}

	book := &documents.Book{
		Title:         req.Title,
		Description:   req.Description,
		Author:        req.Author,
		Code:          req.Code,
		PublishedYear: req.PublishedYear,
		Theme:         req.Theme,
		Pages:         req.Pages,
		Language:      req.Language,
		Sinopsis:      req.Sinopsis,
		URL:           req.URL,
		Repository:    req.Repository,
		Tags:          req.Tags,
	}
	if claims := auth.ClaimsFromContext(c); claims != nil && claims.ProfileID != "" {
		if creator, err := primitive.ObjectIDFromHex(claims.ProfileID); err == nil {
			book.CreatedBy = &creator
		}
	}

	if err := ct.repo.Create(c.Request.Context(), book); err != nil {
		respondError(c, ct.env, err)
		return
	}
	respondOK(c, http.StatusCreated, "livro criado com sucesso", book)
}

func (ct *BooksController) Update(c *gin.Context) {
	id, ok := ct.bookID(c)
	if !ok {
		return
	}

	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "dados inválidos", "INVALID_BODY")
		return
	}

	changes := bson.M{}
	setIf := func(key string, v any, present bool) {
		if present {
			changes[key] = v
		}
	}
	setIf("title", req.Title, req.Title != nil)
	setIf("description", req.Description, req.Description != nil)
	setIf("author", req.Author, req.Author != nil)
	setIf("publishedYear", req.PublishedYear, req.PublishedYear != nil)
	setIf("theme", req.Theme, req.Theme != nil)
	setIf("pages", req.Pages, req.Pages != nil)
	setIf("language", req.Language, req.Language != nil)
	setIf("sinopsis", req.Sinopsis, req.Sinopsis != nil)
	setIf("url", req.URL, req.URL != nil)
	setIf("repository", req.Repository, req.Repository != nil)
	setIf("tags", req.Tags, req.Tags != nil)

	if len(changes) == 0 {
		respondFail(c, http.StatusBadRequest, "nenhum campo para atualizar", "EMPTY_UPDATE")
		return
	}

	book, err := ct.repo.Update(c.Request.Context(), id, changes)
	if err != nil {
		respondError(c, ct.env, err)
		return
	}
	respondOK(c, http.StatusOK, "livro atualizado com sucesso", book)
}

func (ct *BooksController) Delete(c *gin.Context) {
	id, ok := ct.bookID(c)
	if !ok {
		return
	}

	if err := ct.repo.SoftDelete(c.Request.Context(), id); err != nil {
		respondError(c, ct.env, err)
		return
	}
	respondOK(c, http.StatusOK, "livro removido com sucesso", nil)
}

func (ct *BooksController) AddComment(c *gin.Context) {
	id, ok := ct.bookID(c)
	if !ok {
		return
	}
	userID, ok := ct.documentUserID(c)
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Comment == "" {
		respondFail(c, http.StatusBadRequest, "comentário é obrigatório", "MISSING_COMMENT")
		return
	}

	if err := ct.repo.AddComment(c.Request.Context(), id, userID, req.Comment); err != nil {
		respondError(c, ct.env, err)
		return
	}
	respondOK(c, http.StatusCreated, "comentário adicionado", nil)
}

func (ct *BooksController) AddRating(c *gin.Context) {
	id, ok := ct.bookID(c)
	if !ok {
		return
	}
	userID, ok := ct.documentUserID(c)
	if !ok {
		return
	}

	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "avaliação é obrigatória", "MISSING_RATING")
		return
	}

	if err := ct.repo.AddRating(c.Request.Context(), id, userID, req.Rating); err != nil {
		respondError(c, ct.env, err)
		return
	}
	respondOK(c, http.StatusCreated, "avaliação registrada", nil)
}

func (ct *BooksController) bookID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondFail(c, http.StatusBadRequest, "identificador de livro inválido", "INVALID_ID")
		return primitive.NilObjectID, false
	}
	return id, true
}

// documentUserID resolves the acting user's profile reference from the
// token claims for comment/rating attribution.
func (ct *BooksController) documentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	claims := auth.ClaimsFromContext(c)
	if claims == nil || claims.ProfileID == "" {
		respondFail(c, http.StatusForbidden, "perfil não vinculado ao token", "MISSING_PROFILE")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(claims.ProfileID)
	if err != nil {
		respondFail(c, http.StatusForbidden, "perfil inválido no token", "INVALID_PROFILE")
		return primitive.NilObjectID, false
	}
	return id, true
}
