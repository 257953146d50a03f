package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/mroldan747/ai50/internal/config"
	"github.com/mroldan747/ai50/internal/database"
	"github.com/mroldan747/ai50/internal/middleware"
)

type App struct {
	logger     *slog.Logger
	router     *http.ServeMux
	db         *pgxpool.Pool
	cookies    *config.Cookies
	ws         *config.WebSocket
	migrations fs.FS
}

func New(logger *slog.Logger, migrations fs.FS) *App {
	return &App{
		logger:     logger,
		router:     http.NewServeMux(),
		migrations: migrations,
	}
}

// Start connects to the database, applies migrations and serves until ctx is
// canceled or the listener fails.
func (a *App) Start(ctx context.Context) error {
	db, _, err := database.ConnectAndMigrate(ctx, a.migrations)
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	defer db.Close()
	a.db = db

	jwt, err := config.NewJWT()
	if err != nil {
		return err
	}

	cookies, err := config.NewCookies(jwt)
	if err != nil {
		return err
	}
	a.cookies = cookies

	ws, err := config.NewWebSocket()
	if err != nil {
		return err
	}
	a.ws = ws

	if err := a.loadRoutes(); err != nil {
		return err
	}

	addr := config.Port()
	server := &http.Server{
		Addr: addr,
		// Wrap nests left to right, so the last middleware runs first.
		Handler: middleware.Wrap(
			a.router,
			middleware.Auth(cookies),
			middleware.RateLimit(50, 100),
			middleware.Logging(a.logger),
			middleware.RequestIds(),
			middleware.Cors(),
		),
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*30)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	a.logger.Info("server listening", slog.String("addr", addr))
	return g.Wait()
}
