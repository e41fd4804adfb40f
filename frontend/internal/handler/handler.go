package handler

import (
	"html/template"
	"log/slog"

	"github.com/aribt/hackathon-cms/frontend/internal/markdown"
	"github.com/aribt/hackathon-cms/frontend/internal/notify"
	"github.com/aribt/hackathon-cms/frontend/internal/query"
	"github.com/aribt/hackathon-cms/shared/config"
	"github.com/aribt/hackathon-cms/shared/logger"
)

type Handler struct {
	Templates     map[string]*template.Template
	Hooks         *query.Hooks
	Notifications *notify.Queue
	Markdown      *markdown.Renderer
	Uploads       config.Uploads

	log *slog.Logger
}

func New(templates map[string]*template.Template, hooks *query.Hooks, notifications *notify.Queue, md *markdown.Renderer, uploads config.Uploads) *Handler {
	return &Handler{
		Templates:     templates,
		Hooks:         hooks,
		Notifications: notifications,
		Markdown:      md,
		Uploads:       uploads,
		log:           logger.Component("handler"),
	}
}
