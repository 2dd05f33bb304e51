package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	orchestratorx "github.com/tanpawarit/simrs-agent/agent/agents/orchestrator"
	recordsx "github.com/tanpawarit/simrs-agent/agent/records"
	statex "github.com/tanpawarit/simrs-agent/agent/state"
)

type Config struct {
	Addr           string        `envconfig:"HTTP_ADDR" split_words:"true" default:":8080"`
	MaxRequests    int           `envconfig:"MAX_REQUESTS" split_words:"true" default:"20"`
	AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS" split_words:"true" default:"*"`
	ChatTimeout    time.Duration `envconfig:"CHAT_TIMEOUT" split_words:"true" default:"5m"`
}

// ChatService runs conversation turns.
type ChatService interface {
	HandleMessage(ctx context.Context, text string, opts ...orchestratorx.TurnOption) (orchestratorx.Reply, error)
}

type Deps struct {
	Chat    ChatService
	Session *statex.Session
	Store   *recordsx.Store
	Catalog []*schema.ToolInfo
	Metrics http.Handler
	Now     func() time.Time
}

type Handler struct {
	chat        ChatService
	session     *statex.Session
	store       *recordsx.Store
	catalog     []*schema.ToolInfo
	now         func() time.Time
	chatTimeout time.Duration
}

func NewRouter(cfg Config, deps Deps) http.Handler {
	h := &Handler{
		chat:        deps.Chat,
		session:     deps.Session,
		store:       deps.Store,
		catalog:     deps.Catalog,
		now:         deps.Now,
		chatTimeout: cfg.ChatTimeout,
	}
	if h.now == nil {
		h.now = time.Now
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(RequestLogger)
	router.Use(middleware.Recoverer)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	if cfg.MaxRequests > 0 {
		router.Use(httprate.LimitByIP(cfg.MaxRequests, time.Second))
	}

	if deps.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", deps.Metrics)
	}
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeSuccess(w, http.StatusOK, "ok", nil)
	})

	router.Route("/v1", func(r chi.Router) {
		r.Post("/chat", h.Chat)
		r.Get("/messages", h.Messages)
		r.Get("/tools", h.Tools)

		r.Route("/patients", func(r chi.Router) {
			r.Get("/", h.ListPatients)
			r.Post("/", h.CreatePatient)
			r.Get("/{id}", h.GetPatient)
		})

		r.Route("/doctors", func(r chi.Router) {
			r.Get("/", h.ListDoctors)
			r.Post("/", h.CreateDoctor)
		})
	})

	return router
}

func (h *Handler) today() string {
	return h.now().Format("2006-01-02")
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
