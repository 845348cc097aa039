package handlers

import (
	"net/http"
	"time"

	"github.com/strscout/backend/src/utils"
)

type HealthHandler struct {
	ping    func() error
	dialect string
}

// NewHealthHandler reports on the store reachable through ping. A nil ping
// means the server runs without a database.
func NewHealthHandler(ping func() error, dialect string) *HealthHandler {
	return &HealthHandler{ping: ping, dialect: dialect}
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
	Database  bool   `json:"database"`
	DBType    string `json:"db_type"`
}

func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UnixMilli(),
		DBType:    "none",
	}
	if h.ping != nil && h.ping() == nil {
		resp.Database = true
		resp.DBType = h.dialect
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}
