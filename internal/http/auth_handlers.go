package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/estantedigital/plataforma/internal/auth"
	"github.com/estantedigital/plataforma/internal/config"
	"github.com/estantedigital/plataforma/internal/database/pessoas"
	"github.com/estantedigital/plataforma/internal/entities"
	"github.com/estantedigital/plataforma/internal/sync"
)

// AuthController serves signup, signin, password recovery and the
// Pessoa listing endpoints.
type AuthController struct {
	service *auth.Service
	repo    *pessoas.Repository
	env     config.Environment
}

func NewAuthController(service *auth.Service, repo *pessoas.Repository, env config.Environment) *AuthController {
	return &AuthController{service: service, repo: repo, env: env}
}

type signInRequest struct {
	Identify   string `json:"identify"`
	Identifier string `json:"identifier"` // accepted as an alias of identify
	Password   string `json:"password"`
}

type recoverPasswordRequest struct {
	Identify         string `json:"identify"`
	DocumentoOficial string `json:"documentoOficial"`
	NewPassword      string `json:"newPassword"`
}

func (ct *AuthController) PostSignUp(c *gin.Context) {
	var in auth.SignUpInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondFail(c, http.StatusBadRequest, "dados não fornecidos", "MISSING_REQUIRED_FIELDS")
		return
	}

	triple, err := ct.service.SignUp(c.Request.Context(), in)
	if err != nil {
		respondError(c, ct.env, err)
		return
	}

	respondOK(c, http.StatusCreated, "usuário e perfil criados com sucesso", signUpPayload(triple))
}

// signUpPayload mirrors the combined state of both stores.
func signUpPayload(triple *sync.Triple) gin.H {
	return gin.H{
		"sql": gin.H{
			"pessoa":  triple.Pessoa,
			"account": triple.Account,
		},
		"mongodb": gin.H{
			"profile": gin.H{
				"id":                 triple.Profile.ID,
				"nomeReferencial":    triple.Profile.NomeReferencial,
				"username":           triple.Profile.Username,
				"emailInstitucional": triple.Profile.EmailInstitucional,
			},
			"user": gin.H{
				"id":       triple.User.ID,
				"username": triple.User.Username,
				"role":     triple.User.Role,
				"tipo":     triple.User.Tipo,
				"isActive": triple.User.IsActive,
			},
		},
	}
}

func (ct *AuthController) PostSignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "email/username e senha são obrigatórios", "MISSING_REQUIRED_FIELDS")
		return
	}
	identifier := req.Identify
	if identifier == "" {
		identifier = req.Identifier
	}

	result, err := ct.service.SignIn(c.Request.Context(), identifier, req.Password)
	if err != nil {
		respondError(c, ct.env, err)
		return
	}

	respondOK(c, http.StatusOK, "login realizado com sucesso", gin.H{
		"user": gin.H{
			"id":       result.Pessoa.IDPessoa,
			"nome":     result.Pessoa.NomeReferencial,
			"username": result.Pessoa.Username,
			"email":    result.Pessoa.EmailInstitucional,
			"role":     result.Pessoa.Role,
			"tipo":     result.Pessoa.Tipo,
		},
		"token": result.Token,
	})
}

func (ct *AuthController) PostRecoverPassword(c *gin.Context) {
	var req recoverPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "campos obrigatórios não fornecidos", "MISSING_FIELDS")
		return
	}

	err := ct.service.RecoverPassword(c.Request.Context(), req.Identify, req.DocumentoOficial, req.NewPassword)
	if err != nil {
		respondError(c, ct.env, err)
		return
	}

	respondOK(c, http.StatusOK, "senha atualizada com sucesso", nil)
}

func (ct *AuthController) GetUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	list, total, err := ct.repo.ListPage(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, ct.env, err)
		return
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "usuários listados com sucesso",
		"data":    summarizePessoas(list),
		"pagination": gin.H{
			"total":      total,
			"page":       page,
			"limit":      limit,
			"totalPages": totalPages,
		},
	})
}

func (ct *AuthController) GetUserByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondFail(c, http.StatusBadRequest, "identificador inválido", "INVALID_ID")
		return
	}

	pessoa, err := ct.repo.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, ct.env, err)
		return
	}

	respondOK(c, http.StatusOK, "usuário encontrado", pessoa)
}

// summarizePessoas strips credential hashes from the listing payload.
func summarizePessoas(list []entities.Pessoa) []gin.H {
	out := make([]gin.H, 0, len(list))
	for _, p := range list {
		out = append(out, gin.H{
			"idPessoa":            p.IDPessoa,
			"nome_referencial":    p.NomeReferencial,
			"username":            p.Username,
			"email_institucional": p.EmailInstitucional,
			"role":                p.Role,
			"tipo":                p.Tipo,
			"created_at":          p.CreatedAt,
		})
	}
	return out
}
