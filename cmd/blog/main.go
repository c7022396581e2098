package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/dmikhr/blog-platform/backend/internal/auth/http"
	authservice "github.com/dmikhr/blog-platform/backend/internal/auth/service"
	"github.com/dmikhr/blog-platform/backend/internal/common/clock"
	"github.com/dmikhr/blog-platform/backend/internal/common/config"
	"github.com/dmikhr/blog-platform/backend/internal/common/constants"
	commoncrypto "github.com/dmikhr/blog-platform/backend/internal/common/crypto"
	"github.com/dmikhr/blog-platform/backend/internal/common/db"
	commonhttp "github.com/dmikhr/blog-platform/backend/internal/common/http"
	"github.com/dmikhr/blog-platform/backend/internal/common/jwtverify"
	"github.com/dmikhr/blog-platform/backend/internal/common/logger"
	srv "github.com/dmikhr/blog-platform/backend/internal/common/server"
	posthttp "github.com/dmikhr/blog-platform/backend/internal/post/http"
	postrepo "github.com/dmikhr/blog-platform/backend/internal/post/repository"
	postservice "github.com/dmikhr/blog-platform/backend/internal/post/service"
	userhttp "github.com/dmikhr/blog-platform/backend/internal/user/http"
	userrepo "github.com/dmikhr/blog-platform/backend/internal/user/repository"
	userservice "github.com/dmikhr/blog-platform/backend/internal/user/service"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "blog", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	db.StartPoolMetrics(pool, constants.DBPoolMetricsInterval)

	users := userrepo.NewPgRepository(pool)
	posts := postrepo.NewPgRepository(pool)

	hasher := &commoncrypto.BcryptHasher{}
	tokenIssuer := authservice.NewTokenIssuer(
		cfg.JWTSecret,
		commoncrypto.NewUUIDGenerator(),
		cfg.AccessTokenTTL,
		clock.NewRealClock(),
	)

	authSvc := authservice.NewAuthService(users, hasher, tokenIssuer, log)
	userSvc := userservice.NewUserService(users, posts, hasher, log)
	postSvc := postservice.NewPostService(posts, log)

	guard := jwtverify.Middleware(cfg.JWTSecret, log)

	userHandler := guard(userhttp.NewHandler(userSvc, cfg, log))
	postHandler := guard(posthttp.NewHandler(postSvc, cfg, log))

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/api/auth/", authhttp.NewHandler(authSvc, cfg, log))
	mux.Handle("/api/users", userHandler)
	mux.Handle("/api/users/", userHandler)
	mux.Handle("/api/posts", postHandler)
	mux.Handle("/api/posts/", postHandler)

	handler := commonhttp.BuildBaseHandler(log, mux)

	server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort), handler)

	shutdownHooks := []srv.ShutdownHook{
		func(ctx context.Context) error {
			log.Infof("blog service: closing database pool")
			pool.Close()
			return nil
		},
	}

	srv.StartWithGracefulShutdown(server, log, "blog", shutdownHooks)
}
