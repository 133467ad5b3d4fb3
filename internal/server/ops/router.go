// Package ops serves the operational HTTP endpoints of the server: health,
// prometheus metrics and the email verification link.
package ops

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/couplediaries/couplediaries/internal/common"
	"github.com/couplediaries/couplediaries/internal/logging"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Verifier consumes an email verification token.
type Verifier interface {
	VerifyEmail(ctx context.Context, token string) error
}

const healthCheckTimeout = 2 * time.Second

type handlers struct {
	db       Pinger
	verifier Verifier
	logger   logging.Logger
}

// NewRouter wires the ops routes.
func NewRouter(db Pinger, verifier Verifier, l logging.Logger) *mux.Router {
	h := &handlers{db: db, verifier: verifier, logger: l}

	root := mux.NewRouter()
	root.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	root.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	root.HandleFunc("/verify", h.verify).Methods(http.MethodGet)
	return root
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn(ctx, "Health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = fmt.Fprint(w, "ok")
}

func (h *handlers) verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := r.URL.Query().Get("token")
	if token == "" {
		verifyRequestsTotal.WithLabelValues("missing").Inc()
		http.Error(w, "missing token", http.StatusBadRequest)
		return
	}

	err := h.verifier.VerifyEmail(ctx, token)
	switch {
	case err == nil:
		verifyRequestsTotal.WithLabelValues("verified").Inc()
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = fmt.Fprint(w, "Your email is verified. You can return to the app.")
	case errors.Is(err, common.ErrVerificationTokenExpired):
		verifyRequestsTotal.WithLabelValues("expired").Inc()
		http.Error(w, "This link has expired. Request a new one from the app.", http.StatusGone)
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrorNotFound):
		verifyRequestsTotal.WithLabelValues("invalid").Inc()
		http.Error(w, "This link is not valid.", http.StatusNotFound)
	default:
		verifyRequestsTotal.WithLabelValues("error").Inc()
		h.logger.Error(ctx, "Email verification failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
