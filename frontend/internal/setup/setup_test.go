package setup

import (
	"bytes"
	"testing"
	"testing/fstest"
	"time"

	"github.com/aribt/hackathon-cms/frontend/internal/session"
	"github.com/aribt/hackathon-cms/frontend/templates"
	"github.com/aribt/hackathon-cms/shared/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTemplates_Embedded(t *testing.T) {
	tmpls, err := LoadTemplates(templates.FS)
	require.NoError(t, err)

	for _, page := range []string{
		"login.html", "dashboard.html", "about.html", "sponsors.html", "partners.html",
		"hackers.html", "team_members.html", "registrations.html", "registration.html",
	} {
		assert.Contains(t, tmpls, page)
	}
	assert.NotContains(t, tmpls, baseTemplate)
	assert.NotContains(t, tmpls, partialsTemplate)
}

func TestLoadTemplates_LayoutAndFuncs(t *testing.T) {
	fsys := fstest.MapFS{
		baseTemplate:     {Data: []byte(`<main>{{block "content" .}}{{end}}</main>`)},
		partialsTemplate: {Data: []byte(`{{define "hint"}}{{acceptList .Types}} {{bytesToMB .Max}}{{end}}`)},
		"page.html":      {Data: []byte(`{{define "content"}}{{template "hint" dict "Types" .Types "Max" .Max}} {{formatDate .At}}{{end}}`)},
	}
	tmpls, err := LoadTemplates(fsys)
	require.NoError(t, err)
	require.Len(t, tmpls, 1)

	var out bytes.Buffer
	err = tmpls["page.html"].Execute(&out, map[string]any{
		"Types": []string{"image/png", "image/jpeg"},
		"Max":   int64(5 << 20),
		"At":    time.Date(2024, 3, 9, 12, 0, 0, 0, time.Local),
	})
	require.NoError(t, err)
	assert.Equal(t, "<main>image/png,image/jpeg 5 2024-03-09</main>", out.String())
}

func TestLoadTemplates_BrokenPage(t *testing.T) {
	fsys := fstest.MapFS{
		baseTemplate:     {Data: []byte(`{{block "content" .}}{{end}}`)},
		partialsTemplate: {Data: []byte(``)},
		"broken.html":    {Data: []byte(`{{define "content"}}{{if}}{{end}}`)},
	}
	_, err := LoadTemplates(fsys)
	assert.ErrorContains(t, err, "broken.html")
}

func TestDict(t *testing.T) {
	m, err := dict("a", 1, "b", "two")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1, "b": "two"}, m)

	_, err = dict("odd")
	assert.Error(t, err)
	_, err = dict(1, 2)
	assert.Error(t, err)
}

func TestFormatDates(t *testing.T) {
	assert.Empty(t, formatDate(time.Time{}))
	assert.Empty(t, formatDateTime(time.Time{}))

	at := time.Date(2024, 12, 31, 23, 5, 0, 0, time.Local)
	assert.Equal(t, "2024-12-31", formatDate(at))
	assert.Equal(t, "2024-12-31 23:05", formatDateTime(at))
}

func TestSetupWithStore_RestoresSession(t *testing.T) {
	cfg := config.Default()
	cfg.API.BaseURL = "http://backend.invalid"
	cfg.API.TokenField = "jwt"

	store := &session.MemoryStore{}
	require.NoError(t, store.Save("persisted"))

	deps, err := SetupWithStore(cfg, store)
	require.NoError(t, err)

	assert.True(t, deps.Hooks.Auth.Authenticated())
	assert.Equal(t, "persisted", deps.Hooks.Client.Session().Token())
	assert.Equal(t, []string{"jwt"}, deps.Hooks.Client.TokenFields)
	assert.Same(t, deps.Notifications, deps.Handler.Notifications)
}
