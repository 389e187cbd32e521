package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/basakrdnz/vibevault/internal/config"
	"github.com/basakrdnz/vibevault/internal/db"
	"github.com/basakrdnz/vibevault/internal/discovery"
	"github.com/basakrdnz/vibevault/internal/http/api"
	"github.com/basakrdnz/vibevault/internal/moods"
	"github.com/basakrdnz/vibevault/internal/movies"
	"github.com/basakrdnz/vibevault/internal/omdb"
	"github.com/basakrdnz/vibevault/internal/ratelimit"
	"github.com/basakrdnz/vibevault/internal/social"
	"github.com/basakrdnz/vibevault/internal/users"
	"github.com/basakrdnz/vibevault/internal/watchlist"
)

// Migrate opens the database and runs migrations.
func Migrate(ctx context.Context, cfg config.AppConfig) error {
	configPath := config.ResolveConfigPath(cfg.ConfigPath)
	dsn, err := config.LoadDatabaseDSN(configPath)
	if err != nil {
		return err
	}
	conn, err := db.Open(dsn)
	if err != nil {
		return err
	}
	return db.Migrate(conn)
}

// RunServer boots the API server with database-backed services.
func RunServer(ctx context.Context, cfg config.AppConfig, defaultPort int) error {
	configPath := config.ResolveConfigPath(cfg.ConfigPath)
	dsn, err := config.LoadDatabaseDSN(configPath)
	if err != nil {
		return err
	}
	conn, err := db.Open(dsn)
	if err != nil {
		return err
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}

	jwtConfig, errJWT := config.LoadJWTConfig(configPath)
	if errJWT != nil {
		return errJWT
	}
	omdbConfig, _ := config.LoadOMDBConfig(configPath)
	rateLimitConfig, _ := config.LoadRateLimitConfig(configPath)

	port, errPort := config.LoadServerPort(configPath)
	if errPort != nil || port <= 0 {
		port = defaultPort
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	api.RegisterRoutes(engine, api.Services{
		DB:        conn,
		JWT:       jwtConfig,
		Users:     users.NewService(conn, nil),
		Social:    social.NewService(conn, nil),
		Movies:    movies.NewService(conn, nil, nil),
		Watchlist: watchlist.NewService(conn, nil),
		Moods:     moods.NewService(conn, nil),
		Discovery: discovery.NewService(conn, nil),
		OMDB:      omdb.NewClient(omdbConfig.APIKey, omdbConfig.BaseURL, nil),
		Limiter:   ratelimit.NewManager(rateLimitConfig.RedisURL, nil, nil),
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if errShutdown := server.Shutdown(shutdownCtx); errShutdown != nil {
			return errShutdown
		}
		return nil
	case errServe := <-errCh:
		if errors.Is(errServe, http.ErrServerClosed) {
			return nil
		}
		return errServe
	}
}
