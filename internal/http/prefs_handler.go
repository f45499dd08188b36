package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/MasuRii/Luv-Charms-E-commerce/internal/prefs"
)

// PrefsStorageFactory builds the preference storage for one session.
type PrefsStorageFactory func(sessionKey string) (prefs.Storage, error)

type PrefsHandler struct {
	factory PrefsStorageFactory
	log     *logrus.Logger
}

func NewPrefsHandler(factory PrefsStorageFactory, logger *logrus.Logger) *PrefsHandler {
	if factory == nil {
		panic("http: NewPrefsHandler called with nil storage factory")
	}
	return &PrefsHandler{factory: factory, log: logger}
}

func (h *PrefsHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing sessionId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	storage, err := h.factory(sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to open preferences")
		return
	}

	p, ok, err := storage.Load(ctx)
	if err != nil {
		h.log.WithError(err).Warn("loading preferences failed, using defaults")
		ok = false
	}
	if !ok {
		p = prefs.Defaults()
	}
	writeJSON(w, http.StatusOK, prefs.Sanitize(p))
}

func (h *PrefsHandler) PutPreferences(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing sessionId")
		return
	}

	var p prefs.Preferences
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if p != prefs.Sanitize(p) {
		writeError(w, http.StatusBadRequest, "unknown colorTheme or mode")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	storage, err := h.factory(sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to open preferences")
		return
	}

	if err := storage.Save(ctx, p); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save preferences")
		return
	}
	writeJSON(w, http.StatusOK, p)
}
