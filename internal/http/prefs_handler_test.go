package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httphandler "github.com/MasuRii/Luv-Charms-E-commerce/internal/http"
	"github.com/MasuRii/Luv-Charms-E-commerce/internal/prefs"
)

type memoryPrefs struct {
	p  prefs.Preferences
	ok bool
}

func (m *memoryPrefs) Load(context.Context) (prefs.Preferences, bool, error) {
	return m.p, m.ok, nil
}

func (m *memoryPrefs) Save(_ context.Context, p prefs.Preferences) error {
	m.p = p
	m.ok = true
	return nil
}

func prefsMemoryStorage() prefs.Storage {
	return &memoryPrefs{}
}

func newPrefsHandler(storage prefs.Storage) *httphandler.PrefsHandler {
	return httphandler.NewPrefsHandler(func(string) (prefs.Storage, error) {
		return storage, nil
	}, testLogger())
}

func TestGetPreferencesDefaults(t *testing.T) {
	handler := newPrefsHandler(prefsMemoryStorage())

	r := httptest.NewRequest(http.MethodGet, "/api/preferences/s1", nil)
	r.SetPathValue("sessionId", "s1")
	w := httptest.NewRecorder()
	handler.GetPreferences(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var p prefs.Preferences
	require.NoError(t, json.NewDecoder(w.Body).Decode(&p))
	assert.Equal(t, prefs.Defaults(), p)
}

func TestGetPreferencesSanitizesPersistedValues(t *testing.T) {
	handler := newPrefsHandler(&memoryPrefs{
		p:  prefs.Preferences{ColorTheme: "neon", Mode: prefs.ModeDark},
		ok: true,
	})

	r := httptest.NewRequest(http.MethodGet, "/api/preferences/s1", nil)
	r.SetPathValue("sessionId", "s1")
	w := httptest.NewRecorder()
	handler.GetPreferences(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var p prefs.Preferences
	require.NoError(t, json.NewDecoder(w.Body).Decode(&p))
	assert.Equal(t, prefs.ThemeDefault, p.ColorTheme)
	assert.Equal(t, prefs.ModeDark, p.Mode)
}

func TestPutPreferences(t *testing.T) {
	storage := &memoryPrefs{}
	handler := newPrefsHandler(storage)

	payload := []byte(`{"colorTheme":"sage","mode":"dark"}`)
	r := httptest.NewRequest(http.MethodPut, "/api/preferences/s1", bytes.NewReader(payload))
	r.SetPathValue("sessionId", "s1")
	w := httptest.NewRecorder()
	handler.PutPreferences(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, prefs.Preferences{ColorTheme: prefs.ThemeSage, Mode: prefs.ModeDark}, storage.p)
}

func TestPutPreferencesRejectsUnknownValues(t *testing.T) {
	storage := &memoryPrefs{}
	handler := newPrefsHandler(storage)

	payload := []byte(`{"colorTheme":"neon","mode":"dark"}`)
	r := httptest.NewRequest(http.MethodPut, "/api/preferences/s1", bytes.NewReader(payload))
	r.SetPathValue("sessionId", "s1")
	w := httptest.NewRecorder()
	handler.PutPreferences(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, storage.ok)
}
