package server

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	arcerrors "github.com/status-im/arcadia/errors"
	"github.com/status-im/arcadia/gallery"
	"github.com/status-im/arcadia/params"
)

const (
	indexPath      = "/"
	connectPath    = "/connect"
	initializePath = "/initialize"
	submitPath     = "/submit"
	dismissPath    = "/dismiss"
	healthPath     = "/health"
	metricsPath    = "/metrics"
)

const actionFlashKey = "action"

type HandlerPatternMap map[string]http.HandlerFunc

type pageData struct {
	gallery.Snapshot
	Connected    bool
	NeedsInit    bool
	Flashes      []string
	FooterHandle string
	FooterLink   string
}

func newPageData(snapshot gallery.Snapshot, footer params.FooterConfig) pageData {
	return pageData{
		Snapshot:     snapshot,
		Connected:    snapshot.State != gallery.StateDisconnected,
		NeedsInit:    snapshot.State == gallery.StateUninitialized,
		FooterHandle: footer.Handle,
		FooterLink:   footer.Link(),
	}
}

func handleIndex(sm *SessionManager, footer params.FooterConfig, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, id, err := sm.Session(w, r)
		if err != nil {
			logger.Error("failed to start session", zap.Error(err))
			http.Error(w, "session error", http.StatusInternalServerError)
			return
		}

		controller, created := sm.Controller(id)
		redirected := len(session.Flashes(actionFlashKey)) > 0
		if created || !redirected {
			loadPage(r.Context(), controller, logger.With(zap.String("session", id)))
		}

		data := newPageData(controller.Snapshot(), footer)
		for _, f := range session.Flashes() {
			if msg, ok := f.(string); ok {
				data.Flashes = append(data.Flashes, msg)
			}
		}
		if redirected || len(data.Flashes) > 0 {
			if err := session.Save(r, w); err != nil {
				logger.Error("failed to save session", zap.Error(err))
			}
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		if err := indexTemplate.Execute(w, data); err != nil {
			logger.Error("failed to render index", zap.Error(err))
		}
	}
}

// loadPage does what every page load does. A disconnected session looks for
// a trusted connection without prompting, and a connected one refetches an
// absent collection.
func loadPage(ctx context.Context, controller *gallery.Controller, logger *zap.Logger) {
	switch controller.State() {
	case gallery.StateDisconnected:
		if err := controller.ProbeExistingConnection(ctx); err != nil {
			logger.Debug("probe finished without connection", zap.Error(err))
		}
	case gallery.StateUninitialized:
		if err := controller.FetchItems(ctx); err != nil {
			logger.Debug("collection still absent", zap.Error(err))
		}
	}
}

// actionFunc runs one user action against the session controller.
type actionFunc func(ctx context.Context, r *http.Request, controller *gallery.Controller) error

// handleAction runs action and redirects back to the index. Rejected actions
// are kept as flash messages.
func handleAction(sm *SessionManager, action actionFunc, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, id, err := sm.Session(w, r)
		if err != nil {
			logger.Error("failed to start session", zap.Error(err))
			http.Error(w, "session error", http.StatusInternalServerError)
			return
		}
		controller, _ := sm.Controller(id)

		if err := action(r.Context(), r, controller); err != nil && gallery.IsRejection(err) {
			session.AddFlash(arcerrors.DetailsOf(err))
		}
		// The redirected page shows the action result and is not a page load.
		session.AddFlash(true, actionFlashKey)
		if err := session.Save(r, w); err != nil {
			logger.Error("failed to save session", zap.Error(err))
		}
		http.Redirect(w, r, indexPath, http.StatusSeeOther)
	}
}

func connectAction(ctx context.Context, _ *http.Request, controller *gallery.Controller) error {
	return controller.Connect(ctx)
}

func initializeAction(ctx context.Context, _ *http.Request, controller *gallery.Controller) error {
	return controller.InitializeStore(ctx).Err()
}

func submitAction(ctx context.Context, r *http.Request, controller *gallery.Controller) error {
	controller.SetDraft(r.PostFormValue("link"))
	return controller.SubmitItem(ctx).Err()
}

func dismissAction(_ context.Context, _ *http.Request, controller *gallery.Controller) error {
	controller.DismissWarning()
	return nil
}
