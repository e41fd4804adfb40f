package setup

import (
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/aribt/hackathon-cms/frontend/internal/apiclient"
	"github.com/aribt/hackathon-cms/frontend/internal/handler"
	"github.com/aribt/hackathon-cms/frontend/internal/markdown"
	"github.com/aribt/hackathon-cms/frontend/internal/notify"
	"github.com/aribt/hackathon-cms/frontend/internal/query"
	"github.com/aribt/hackathon-cms/frontend/internal/session"
	"github.com/aribt/hackathon-cms/frontend/templates"
	"github.com/aribt/hackathon-cms/shared/config"
	"github.com/aribt/hackathon-cms/shared/logger"
)

const (
	baseTemplate     = "base.html"
	partialsTemplate = "partials.html"
)

type Dependencies struct {
	Config        *config.Config
	Handler       *handler.Handler
	Hooks         *query.Hooks
	Notifications *notify.Queue
}

// SetupDependencies wires the session, transport, cache and handlers. The
// session is restored from cfg.Session.TokenPath.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	return SetupWithStore(cfg, session.NewFileStore(cfg.Session.TokenPath))
}

// SetupWithStore is SetupDependencies with the session kept in store.
func SetupWithStore(cfg *config.Config, store session.Store) (*Dependencies, error) {
	sess, err := session.New(store)
	if err != nil {
		return nil, err
	}

	queue := notify.NewQueue(0)
	client := apiclient.New(cfg.API.BaseURL, sess, queue)
	if cfg.API.TokenField != "" {
		client.TokenFields = []string{cfg.API.TokenField}
	}
	hooks := query.New(client, queue, query.Options{StatusField: cfg.API.StatusField})

	tmpls, err := LoadTemplates(templates.FS)
	if err != nil {
		return nil, err
	}
	h := handler.New(tmpls, hooks, queue, markdown.New(), cfg.Uploads)

	logger.Log.Info("dependencies ready", "backend", cfg.API.BaseURL, "templates", len(tmpls), "authenticated", sess.Authenticated())
	return &Dependencies{
		Config:        cfg,
		Handler:       h,
		Hooks:         hooks,
		Notifications: queue,
	}, nil
}

var funcs = template.FuncMap{
	"dict":           dict,
	"bytesToMB":      bytesToMB,
	"acceptList":     acceptList,
	"formatDate":     formatDate,
	"formatDateTime": formatDateTime,
}

// LoadTemplates parses every page in fsys together with the base layout and
// the shared partials, keyed by file name.
func LoadTemplates(fsys fs.FS) (map[string]*template.Template, error) {
	pages, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, err
	}

	tmpls := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		if page == baseTemplate || page == partialsTemplate {
			continue
		}
		t, err := template.New(baseTemplate).Funcs(funcs).ParseFS(fsys, baseTemplate, page, partialsTemplate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		tmpls[path.Base(page)] = t
	}
	return tmpls, nil
}

func dict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("invalid dict call: number of arguments must be even")
	}
	m := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict keys must be strings")
		}
		m[key] = values[i+1]
	}
	return m, nil
}

func bytesToMB(bytes int64) int64 {
	return bytes / (1024 * 1024)
}

// acceptList renders MIME types for an <input accept> attribute.
func acceptList(mimeTypes []string) string {
	return strings.Join(mimeTypes, ",")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04")
}
