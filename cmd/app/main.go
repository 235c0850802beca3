package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"social-service/configs"
	"social-service/internal/events"
	"social-service/internal/graph"
	"social-service/internal/post"
	"social-service/internal/ratelimit"
	"social-service/internal/shared/httpx"
	"social-service/internal/shared/metrics"
	"social-service/internal/social"
	"social-service/internal/token"
	"social-service/internal/user"
)

func initOTEL(ctx context.Context) func(context.Context) error {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return func(context.Context) error { return nil }
	}
	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		log.Fatalf("otel exporter: %v", err)
	}
	res, _ := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("social-service"),
		attribute.String("deployment.environment", os.Getenv("ENV")),
	))
	ratio := 1.0
	if s := os.Getenv("OTEL_TRACES_SAMPLER_ARG"); s != "" {
		if f, e := strconv.ParseFloat(s, 64); e == nil && f >= 0 && f <= 1 {
			ratio = f
		}
	}
	tp := trace.NewTracerProvider(
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(ratio))),
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	return tp.Shutdown
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := configs.LoadConfig()

	shutdownTracing := initOTEL(ctx)
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(c)
	}()

	store, err := graph.NewStore(cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPass, cfg.Neo4jDB)
	if err != nil {
		log.Fatalf("neo4j driver: %v", err)
	}
	defer store.Close(context.Background())
	if err := store.Verify(ctx); err != nil {
		log.Fatalf("neo4j connectivity: %v", err)
	}
	if err := store.EnsureConstraints(ctx); err != nil {
		log.Fatalf("neo4j constraints: %v", err)
	}
	log.Printf("connected to neo4j at %s", cfg.Neo4jURI)

	publisher := events.NewNop()
	if cfg.KafkaBrokers != "" {
		publisher = events.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic)
		log.Printf("publishing activity events to %s (topic %s)", cfg.KafkaBrokers, cfg.KafkaTopic)
	}
	defer publisher.Close()

	issuer := token.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	userRepo := user.NewRepository(store)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc, issuer)

	postRepo := post.NewRepository(store)
	postSvc := post.NewService(postRepo, publisher)
	postHandler := post.NewHandler(postSvc)

	socialRepo := social.NewRepository(store)
	socialSvc := social.NewService(socialRepo, publisher)
	socialHandler := social.NewHandler(socialSvc)

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	})

	authEndpoint := func(h http.Handler) http.Handler { return h }
	if cfg.RedisAddr != "" {
		limiter := ratelimit.New(cfg.RedisAddr)
		defer limiter.Close()
		if err := limiter.Ping(ctx); err != nil {
			log.Fatalf("redis connectivity: %v", err)
		}
		authEndpoint = func(h http.Handler) http.Handler {
			return limiter.LimitByIP(cfg.AuthRateLimit, cfg.AuthRateWindow, h)
		}
		log.Printf("auth rate limiting via redis at %s", cfg.RedisAddr)
	}

	mux.Handle("POST /auth/signup", authEndpoint(httpx.Wrap(userHandler.Signup)))
	mux.Handle("POST /auth/login", authEndpoint(httpx.Wrap(userHandler.Login)))
	mux.Handle("POST /auth/refresh", authEndpoint(httpx.Wrap(userHandler.Refresh)))

	protect := func(pattern string, fn httpx.HandlerFunc) {
		mux.Handle(pattern, httpx.AuthMiddleware(issuer.ParseAccess, httpx.Wrap(fn)))
	}

	protect("GET /users/me", userHandler.Me)
	mux.Handle("GET /users/search", httpx.Wrap(userHandler.Search))
	mux.Handle("GET /users/{user_id}", httpx.Wrap(userHandler.GetProfile))

	protect("POST /posts/", postHandler.Create)
	mux.Handle("GET /posts/{post_id}", httpx.OptionalAuthMiddleware(issuer.ParseAccess, httpx.Wrap(postHandler.Get)))
	protect("POST /posts/{post_id}/like", postHandler.Like)
	protect("POST /posts/{post_id}/unlike", postHandler.Unlike)
	protect("POST /posts/{post_id}/comment", postHandler.Comment)
	mux.Handle("GET /posts/{post_id}/comments", httpx.Wrap(postHandler.ListComments))
	protect("DELETE /posts/{post_id}", postHandler.Delete)

	protect("POST /social/follow/{user_id}", socialHandler.Follow)
	protect("POST /social/unfollow/{user_id}", socialHandler.Unfollow)
	protect("GET /social/followers/{user_id}", socialHandler.Followers)
	protect("GET /social/following/{user_id}", socialHandler.Following)
	protect("GET /social/mutual-followers/{user_a}/{user_b}", socialHandler.MutualFollowers)
	protect("GET /social/feed", socialHandler.Feed)
	protect("GET /social/suggestions/{user_id}", socialHandler.Suggestions)

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           otelhttp.NewHandler(metrics.Middleware(mux), "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		log.Printf("social-service listening on %s", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Print("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
