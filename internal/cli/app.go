package cli

import (
	"database/sql"
	"io"
	"log/slog"

	"github.com/tengjizhang/trs/internal/config"
	"github.com/tengjizhang/trs/internal/fetch"
	"github.com/tengjizhang/trs/internal/ingest"
	"github.com/tengjizhang/trs/internal/logger"
	"github.com/tengjizhang/trs/internal/render"
	"github.com/tengjizhang/trs/internal/store"
)

type App struct {
	cfg      config.Config
	db       *sql.DB
	store    *store.Store
	fetcher  *fetch.Fetcher
	renderer *render.Renderer
	service  *ingest.Service
	logger   *slog.Logger
	logFile  io.Closer
}

// NewApp opens the instance database and wires the ingestion service. Logs go
// to logOut, or to the configured log file when interactive is set.
func NewApp(cfg config.Config, logOut io.Writer, interactive bool) (*App, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelWarn
	}

	var logFile io.Closer
	if interactive {
		f, err := logger.OpenFile(cfg.LogPath)
		if err != nil {
			return nil, err
		}
		logOut, logFile = f, f
	}
	log := logger.Setup(logOut, level)

	db, err := store.OpenDB(cfg.DatabasePath())
	if err != nil {
		if logFile != nil {
			_ = logFile.Close()
		}
		return nil, err
	}
	s := store.NewStore(db)
	fetcher := fetch.NewFetcher(cfg)

	style := render.StyleNoTTY
	if interactive {
		style = render.StyleDark
	}

	return &App{
		cfg:      cfg,
		db:       db,
		store:    s,
		fetcher:  fetcher,
		renderer: render.NewRenderer(style),
		service:  ingest.NewService(s, fetcher, log),
		logger:   log,
		logFile:  logFile,
	}, nil
}

func (a *App) Close() error {
	var err error
	if a.db != nil {
		err = a.db.Close()
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
	return err
}
