package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/estantedigital/plataforma/internal/database"
	"github.com/estantedigital/plataforma/internal/docstore"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	db      *database.Database
	store   *docstore.Store
	version string
}

func NewHealthController(db *database.Database, store *docstore.Store, version string) *HealthController {
	return &HealthController{db: db, store: store, version: version}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.db != nil {
		sqlDB, err := h.db.DB.DB()
		if err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else if err := sqlDB.Ping(); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	if h.store != nil {
		if err := h.store.Ping(c.Request.Context()); err != nil {
			checks["docstore"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["docstore"] = "ok"
		}
	} else {
		checks["docstore"] = "not configured"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
