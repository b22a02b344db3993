package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/orderdesk/emailer/internal/config"
	"github.com/orderdesk/emailer/internal/database"
	"github.com/orderdesk/emailer/internal/logger"
	"github.com/orderdesk/emailer/internal/service"
)

// Handler holds all HTTP handlers
type Handler struct {
	db       *database.Postgres
	rdb      *database.Redis
	log      *logger.Logger
	cfg      *config.Config
	notifier *service.OrderConfirmationNotifier
}

// New creates a new Handler instance
func New(db *database.Postgres, rdb *database.Redis, log *logger.Logger, cfg *config.Config, notifier *service.OrderConfirmationNotifier) *Handler {
	return &Handler{
		db:       db,
		rdb:      rdb,
		log:      log,
		cfg:      cfg,
		notifier: notifier,
	}
}

// JSON helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	})
}

func readJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("request body is empty")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}
