package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/estantedigital/plataforma/internal/config"
	"github.com/estantedigital/plataforma/internal/sync"
)

// SyncController exposes the administrative repair endpoints: re-derive
// document-store state for one identity or for all of them.
type SyncController struct {
	sync *sync.Synchronizer
	env  config.Environment
}

func NewSyncController(s *sync.Synchronizer, env config.Environment) *SyncController {
	return &SyncController{sync: s, env: env}
}

// SyncUser handles GET /auth/sync/:email.
func (ct *SyncController) SyncUser(c *gin.Context) {
	email := c.Param("email")
	if email == "" {
		respondFail(c, http.StatusBadRequest, "email é obrigatório", "MISSING_EMAIL")
		return
	}

	result, err := ct.sync.SyncOne(c.Request.Context(), email)
	if err != nil {
		respondError(c, ct.env, err)
		return
	}

	respondOK(c, http.StatusOK, "usuário sincronizado com sucesso", result)
}

// MigrateAll handles POST /auth/migrate-all.
func (ct *SyncController) MigrateAll(c *gin.Context) {
	outcomes, err := ct.sync.SyncAll(c.Request.Context())
	if err != nil {
		respondError(c, ct.env, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "migração concluída",
		"summary": sync.Summarize(outcomes),
		"details": outcomes,
	})
}
