// Package app wires configuration, storage, the LLM backend and the
// domain services into one composition root for the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/vkiss/memoriter/internal/config"
	"github.com/vkiss/memoriter/internal/content"
	"github.com/vkiss/memoriter/internal/docimport"
	"github.com/vkiss/memoriter/internal/export"
	"github.com/vkiss/memoriter/internal/extract"
	"github.com/vkiss/memoriter/internal/identity"
	"github.com/vkiss/memoriter/internal/llm"
	"github.com/vkiss/memoriter/internal/logging"
	"github.com/vkiss/memoriter/internal/quiz"
	"github.com/vkiss/memoriter/internal/quizgen"
	"github.com/vkiss/memoriter/internal/store"
	"github.com/vkiss/memoriter/internal/streak"
	"github.com/vkiss/memoriter/internal/textchunk"
)

// App holds every service the commands need.
type App struct {
	Config  config.Config
	Log     *zap.Logger
	Store   *store.Store
	UserID  string
	Gateway *llm.Gateway

	Content *content.Service
	QuizGen *quizgen.Service
	Quiz    *quiz.Service
	Tracker *streak.Tracker
	Export  *export.Service
}

// ErrBackendInit marks failures of the optional LLM backend setup
// (missing API key, unreachable provider). Commands that can run
// offline retry without a backend only on this error; any other
// startup failure is real and must surface as-is.
var ErrBackendInit = errors.New("LLM backend unavailable")

// Options overrides parts of the wiring from command-line flags.
type Options struct {
	ConfigPath string
	DBPath     string
	// WithBackend controls whether an LLM provider is constructed.
	// Commands that never talk to the backend skip it so they work
	// without API keys.
	WithBackend bool
}

// New builds the application. Streak reconciliation for the current user
// runs as part of startup.
func New(ctx context.Context, opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	} else if err := store.EnsureDir(dbPath); err != nil {
		return nil, err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}

	userID, err := identity.FileProvider{
		Path: filepath.Join(filepath.Dir(dbPath), "identity"),
	}.CurrentUserID()
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	var gateway *llm.Gateway
	if opts.WithBackend {
		if err := cfg.LLM.Validate(); err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("%w: %w", ErrBackendInit, err)
		}
		provider, err := llm.NewProvider(ctx, cfg.LLM, log)
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("%w: %w", ErrBackendInit, err)
		}
		gateway = llm.NewGateway(provider, cfg.Gateway)
	}

	chunker := textchunk.New()
	tracker := streak.NewTracker(st, log)
	selector := quiz.NewSelector(st, nil)

	pipeline := docimport.NewPipeline(gateway, chunker, cfg.Import, log)

	a := &App{
		Config:  cfg,
		Log:     log,
		Store:   st,
		UserID:  userID,
		Gateway: gateway,
		Content: content.NewService(st, chunker, cfg.ChunkSize, extract.PlainText{}, pipeline, log),
		QuizGen: quizgen.NewService(st, gateway, log),
		Quiz:    quiz.NewService(st, selector, tracker, log),
		Tracker: tracker,
		Export:  export.NewService(st, chunker, cfg.ChunkSize),
	}

	if err := tracker.CheckStreaksOnLogin(ctx, userID, time.Now()); err != nil {
		log.Warn("streak reconciliation failed", zap.Error(err))
	}

	return a, nil
}

// Close releases the application's resources.
func (a *App) Close() {
	_ = a.Log.Sync()
	if err := a.Store.Close(); err != nil {
		a.Log.Warn("close store", zap.Error(err))
	}
}
