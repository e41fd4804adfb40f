// Package testbackend is an in-memory stand-in for the CMS backend: the same
// paths, the same answer shapes, records kept in maps. Tests drive the real
// client against it through httptest.
package testbackend

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/aribt/hackathon-cms/shared/logger"
	"github.com/aribt/hackathon-cms/shared/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Endpoints served, in the backend's spelling.
var Endpoints = []string{
	"sponsers",
	"abouthackerthon",
	"registrationformhacker",
	"supportingpartners",
	"teamsmemberhacker",
	"hackers",
}

type Options struct {
	Email    string // organizer login, "admin@example.com" by default
	Password string // "secret" by default
	// TokenField is the login response field carrying the token ("token" by default).
	TokenField string
	// FixedToken, when set, is handed out instead of a signed JWT.
	FixedToken string
	// RequireAuth rejects resource requests without a valid bearer token.
	RequireAuth bool
	// InfoAsObject makes abouthackerthon answer with a bare object when it
	// holds exactly one record.
	InfoAsObject bool
}

// Recorded is one request as the backend saw it.
type Recorded struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	Fields        map[string]string
	Files         map[string]File
}

type File struct {
	Filename    string
	ContentType string
	Size        int
}

type failure struct {
	status int
	body   any
}

type Backend struct {
	opts     Options
	passHash []byte
	secret   []byte
	log      *slog.Logger

	mu          sync.Mutex
	collections map[string]*collection
	requests    []Recorded
	failures    []failure
}

func New(opts Options) *Backend {
	if opts.Email == "" {
		opts.Email = "admin@example.com"
	}
	if opts.Password == "" {
		opts.Password = "secret"
	}
	if opts.TokenField == "" {
		opts.TokenField = "token"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	b := &Backend{
		opts:        opts,
		passHash:    hash,
		secret:      []byte("testbackend-signing-key"),
		log:         logger.Component("testbackend"),
		collections: make(map[string]*collection, len(Endpoints)),
	}
	for _, ep := range Endpoints {
		b.collections[ep] = newCollection()
	}
	return b
}

func (b *Backend) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	r.Use(b.record)
	r.Use(b.injectFailures)

	r.Post("/auth/login", b.login)

	r.Group(func(r chi.Router) {
		if b.opts.RequireAuth {
			r.Use(b.needAuth)
		}
		r.Get("/{resource}", b.list)
		r.Post("/{resource}", b.create)
		r.Get("/{resource}/{id}", b.get)
		r.Patch("/{resource}/{id}", b.update)
		r.Delete("/{resource}/{id}", b.remove)
	})
	return r
}

// Fail queues an answer for the next request, whatever it is. A nil body
// sends no body at all.
func (b *Backend) Fail(status int, body any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = append(b.failures, failure{status, body})
}

func (b *Backend) Requests() []Recorded {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Recorded(nil), b.requests...)
}

// LastRequest returns the most recent request, zero when there was none.
func (b *Backend) LastRequest() Recorded {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) == 0 {
		return Recorded{}
	}
	return b.requests[len(b.requests)-1]
}

// Seed stores records under endpoint and returns their ids.
func (b *Backend) Seed(endpoint string, records ...map[string]any) []string {
	c := b.collection(endpoint)
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, c.insert(rec)["id"].(string))
	}
	return ids
}

// Records returns a copy of what endpoint holds, oldest first.
func (b *Backend) Records(endpoint string) []map[string]any {
	return b.collection(endpoint).all()
}

func (b *Backend) collection(endpoint string) *collection {
	c, ok := b.collections[endpoint]
	if !ok {
		panic("testbackend: unknown endpoint " + endpoint)
	}
	return c
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := Recorded{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
		}
		if r.Body != nil && (r.Method == http.MethodPost || r.Method == http.MethodPatch) {
			body, err := io.ReadAll(r.Body)
			if err == nil {
				r.Body = io.NopCloser(bytes.NewReader(body))
				rec.Fields, rec.Files = parseBody(rec.ContentType, body)
			}
		}
		b.mu.Lock()
		b.requests = append(b.requests, rec)
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		var f *failure
		if len(b.failures) > 0 {
			f = &b.failures[0]
			b.failures = b.failures[1:]
		}
		b.mu.Unlock()

		if f == nil {
			next.ServeHTTP(w, r)
			return
		}
		if f.body == nil {
			w.WriteHeader(f.status)
			return
		}
		utils.WriteJSON(w, f.status, f.body)
	})
}

func (b *Backend) needAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || !b.validToken(token) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) issueToken() (string, error) {
	if b.opts.FixedToken != "" {
		return b.opts.FixedToken, nil
	}
	claims := jwt.MapClaims{
		"sub": b.opts.Email,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(b.secret)
}

func (b *Backend) validToken(token string) bool {
	if b.opts.FixedToken != "" {
		return token == b.opts.FixedToken
	}
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return b.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	return err == nil && parsed.Valid
}

func parseBody(contentType string, body []byte) (map[string]string, map[string]File) {
	fields := map[string]string{}
	files := map[string]File{}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return fields, files
	}
	switch {
	case strings.HasPrefix(mediaType, "multipart/"):
		mr := multipart.NewReader(bytes.NewReader(body), params["boundary"])
		for {
			part, err := mr.NextPart()
			if err != nil {
				break
			}
			data, _ := io.ReadAll(part)
			if part.FileName() != "" {
				files[part.FormName()] = File{
					Filename:    part.FileName(),
					ContentType: part.Header.Get("Content-Type"),
					Size:        len(data),
				}
			} else {
				fields[part.FormName()] = string(data)
			}
		}
	case mediaType == "application/json":
		var m map[string]any
		if json.Unmarshal(body, &m) == nil {
			for k, v := range m {
				if s, ok := v.(string); ok {
					fields[k] = s
				} else {
					enc, _ := json.Marshal(v)
					fields[k] = string(enc)
				}
			}
		}
	}
	return fields, files
}
