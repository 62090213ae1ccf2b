package main

import (
	"context"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/guideshare/guideshare/modules/auth"
	"github.com/guideshare/guideshare/modules/guide"
	"github.com/guideshare/guideshare/pkg/authgate"
	"github.com/guideshare/guideshare/pkg/authz"
	"github.com/guideshare/guideshare/pkg/config"
	"github.com/guideshare/guideshare/pkg/cookie"
	"github.com/guideshare/guideshare/pkg/environment"
	"github.com/guideshare/guideshare/pkg/httpserver"
	"github.com/guideshare/guideshare/pkg/logger"
	"github.com/guideshare/guideshare/pkg/pg"
	"github.com/guideshare/guideshare/pkg/redis"
	"github.com/guideshare/guideshare/pkg/requestid"
	"github.com/guideshare/guideshare/pkg/session"
	"github.com/guideshare/guideshare/pkg/token"
)

type appConfig struct {
	Env    string `env:"APP_ENV" envDefault:"development"`
	Secret string `env:"APP_SECRET,required"`

	Server  httpserver.Config
	Session session.Config
	PG      pg.Config
	Redis   redis.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	env := environment.Parse(cfg.Env)
	log := logger.New(
		logger.WithEnvironment(env),
		logger.WithService("guideshare"),
	)
	logger.SetAsDefault(log)

	ctx := context.Background()

	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		log.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.PG, log); err != nil {
		log.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer func() { _ = redisClient.Close() }()

	codec, err := token.New(cfg.Secret, token.WithLogger(log))
	if err != nil {
		log.Error("failed to create token codec", "error", err)
		os.Exit(1)
	}

	cookies := cookie.New(cookie.WithSecure(env.IsProduction()))
	sessions := session.New(codec, cookies, cfg.Session, session.WithLogger(log))
	gate := authgate.New(codec, sessions, authgate.WithLogger(log))

	guides := guide.NewStore(pool)
	shares := guide.NewShareCache(guides, redisClient, log)
	authzSvc := authz.New(guides, shares, authz.WithLogger(log))

	authHandler := auth.NewHandler(
		auth.NewService(auth.NewStore(pool), codec, auth.WithLogger(log)),
		sessions,
		log,
	)
	guideHandler := guide.NewHandler(guides, authzSvc, log)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(environment.Middleware(env))
	r.Use(gate.Middleware)

	r.Get("/healthz", healthHandler(pg.Healthcheck(pool), redis.Healthcheck(redisClient)))
	r.Mount("/api/auth", authHandler.Router())
	r.Mount("/guides", guideHandler.Router())

	srv := httpserver.NewFromConfig(cfg.Server, httpserver.WithLogger(log))
	if err := srv.Run(ctx, r); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

// healthHandler reports 200 only when every probe passes.
func healthHandler(probes ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, probe := range probes {
			if err := probe(r.Context()); err != nil {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	}
}
