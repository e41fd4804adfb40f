package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	mw "github.com/aribt/hackathon-cms/frontend/internal/middleware"
	"github.com/aribt/hackathon-cms/frontend/internal/setup"
	"github.com/aribt/hackathon-cms/shared/middleware/metrics"
)

// loginBurst is the number of back-to-back login attempts allowed per IP.
const loginBurst = 5

// New creates the console router. Everything except /login and /metrics
// requires a stored session.
func New(deps *setup.Dependencies) chi.Router {
	cfg := deps.Config
	h := deps.Handler
	sess := deps.Hooks.Client.Session()

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(chimw.Compress(5))
	r.Use(mw.SecurityHeaders(cfg.Server.HTTPS, mw.DefaultCSP))

	csrf := mw.CSRFConfig{SecureCookies: cfg.Server.HTTPS, MaxFormSize: cfg.Uploads.MaxSize}
	r.Use(mw.GenerateCSRFToken(csrf))
	r.Use(mw.ValidateCSRFToken(csrf))

	r.Handle("/metrics", metrics.Handler())

	r.Route(mw.LoginPath, func(r chi.Router) {
		r.Use(mw.RedirectAuthenticated(sess, "/"))
		r.Get("/", h.LoginGetHandler)
		if n := cfg.Server.LoginAttemptsPerMinute; n > 0 {
			throttle := mw.NewThrottle(n, loginBurst)
			r.With(throttle.Limit(deps.Notifications, mw.LoginPath)).Post("/", h.LoginPostHandler)
		} else {
			r.Post("/", h.LoginPostHandler)
		}
	})

	r.Group(func(r chi.Router) {
		r.Use(mw.RequireSession(sess, deps.Notifications))

		r.Get("/", h.DashboardGetHandler)
		r.Post("/logout", h.LogoutHandler)

		crud(r, "/sponsors", h.SponsorsGetHandler, h.SponsorCreateHandler, h.SponsorUpdateHandler, h.SponsorDeleteHandler)
		crud(r, "/partners", h.PartnersGetHandler, h.PartnerCreateHandler, h.PartnerUpdateHandler, h.PartnerDeleteHandler)
		crud(r, "/hackers", h.HackersGetHandler, h.HackerCreateHandler, h.HackerUpdateHandler, h.HackerDeleteHandler)
		crud(r, "/team-members", h.TeamMembersGetHandler, h.TeamMemberCreateHandler, h.TeamMemberUpdateHandler, h.TeamMemberDeleteHandler)

		r.Route("/registrations", func(r chi.Router) {
			r.Get("/", h.RegistrationsGetHandler)
			r.Post("/", h.RegistrationCreateHandler)
			r.Get("/export", h.RegistrationsExportHandler)
			r.Get("/{id}", h.RegistrationGetHandler)
			r.Post("/{id}/status", h.RegistrationStatusHandler)
			r.Post("/{id}/delete", h.RegistrationDeleteHandler)
		})

		r.Get("/about", h.AboutGetHandler)
		r.Post("/about", h.AboutPostHandler)
	})

	return r
}

func crud(r chi.Router, prefix string, list, create, update, remove http.HandlerFunc) {
	r.Route(prefix, func(r chi.Router) {
		r.Get("/", list)
		r.Post("/", create)
		r.Post("/{id}", update)
		r.Post("/{id}/delete", remove)
	})
}
