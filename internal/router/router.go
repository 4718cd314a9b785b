package router

import (
	"database/sql"
	"net/http"
	"time"

	_ "cattle-health-records/docs"
	mem "cattle-health-records/internal/adapters/storage/memory"
	pg "cattle-health-records/internal/adapters/storage/postgres"
	"cattle-health-records/internal/adapters/storage/supabase"
	"cattle-health-records/internal/config"
	"cattle-health-records/internal/domain/cows"
	"cattle-health-records/internal/domain/evaluations"
	"cattle-health-records/internal/middleware"
	"cattle-health-records/internal/platform/logger"
	"cattle-health-records/internal/platform/notify"
	"cattle-health-records/internal/web"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger logger.Logger // nil => Nop

	// Store. Prioridad: repos explícitos, Supabase, Postgres, memoria.
	CowRepo        cows.Repository
	EvaluationRepo evaluations.Repository
	Supabase       *supabase.Client
	DB             *sql.DB

	// Location para fechas en las páginas; nil => time.Local.
	Location *time.Location

	// Registry de Prometheus; nil => uno nuevo por router.
	Registry *prometheus.Registry
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	metrics, err := middleware.NewHTTPMetrics(reg)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))
	r.Use(metrics.Middleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		Registry:      reg,
		ErrorHandling: promhttp.HTTPErrorOnError,
	}))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	cowRepo, evalRepo, backend := stores(opts)
	log.Info("store selected", map[string]any{"backend": backend})

	// Services por módulo
	cowsSvc := cows.NewService(cowRepo)
	evalsSvc := evaluations.NewService(evalRepo)

	// API JSON
	r.Route("/api", func(api chi.Router) {
		cows.RegisterRoutes(api, cowsSvc, log)
		evaluations.RegisterRoutes(api, evalsSvc, cowsSvc, log)
	})

	// Páginas
	pages, err := web.NewHandler(web.Options{
		Cows:        cowsSvc,
		Evaluations: evalsSvc,
		Flash:       notify.NewFlash(),
		Logger:      log,
		Location:    opts.Location,
	})
	if err != nil {
		return nil, err
	}
	pages.RegisterRoutes(r)

	return r, nil
}

func stores(opts Options) (cows.Repository, evaluations.Repository, string) {
	switch {
	case opts.CowRepo != nil && opts.EvaluationRepo != nil:
		return opts.CowRepo, opts.EvaluationRepo, "custom"
	case opts.Supabase != nil:
		return supabase.NewCowsRepo(opts.Supabase), supabase.NewEvaluationsRepo(opts.Supabase), config.BackendSupabase
	case opts.DB != nil:
		return pg.NewCowsRepo(opts.DB), pg.NewEvaluationsRepo(opts.DB), config.BackendPostgres
	default:
		return mem.NewCowRepo(), mem.NewEvaluationRepo(), config.BackendMemory
	}
}
