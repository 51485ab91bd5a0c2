package app

import (
	"context"

	"github.com/matheus3301/mockchat/internal/bus"
	"github.com/matheus3301/mockchat/internal/composer"
	"github.com/matheus3301/mockchat/internal/config"
	"github.com/matheus3301/mockchat/internal/index"
	"github.com/matheus3301/mockchat/internal/lock"
	"github.com/matheus3301/mockchat/internal/logging"
	"github.com/matheus3301/mockchat/internal/media"
	"github.com/matheus3301/mockchat/internal/recording"
	"github.com/matheus3301/mockchat/internal/session"
	"github.com/matheus3301/mockchat/internal/store"
	"github.com/matheus3301/mockchat/internal/tui"
	"github.com/matheus3301/mockchat/internal/tui/model"
	"github.com/samber/lo"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Params holds the resolved session configuration passed to the fx module.
type Params struct {
	SessionName string
	ConfigPath  string // optional override for testing; empty = use default
}

// Module returns the fx module for the client, composing all providers and lifecycle hooks.
func Module(p Params) fx.Option {
	if p.ConfigPath == "" {
		p.ConfigPath = session.ConfigPath()
	}
	return fx.Module("mockchat",
		fx.Supply(p),
		fx.Provide(
			provideConfig,
			provideLogger,
			provideBus,
			provideLock,
			provideStore,
			provideIndex,
			provideIndexer,
			provideBlobs,
			provideRecorder,
			provideComposer,
			provideViewModel,
			provideUI,
		),
		fx.Invoke(registerLifecycle),
	)
}

// Logger routes fx's own lifecycle events into the session log so nothing
// is written over the terminal UI.
func Logger() fx.Option {
	return fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: logger.Named("fx")}
	})
}

func provideConfig(p Params) (*config.Config, error) {
	return config.Resolve(p.ConfigPath)
}

func provideLogger(p Params, cfg *config.Config) (*zap.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(session.LogPath(p.SessionName), p.SessionName, level)
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	if err := session.EnsureDir(p.SessionName); err != nil {
		return nil, err
	}
	logger.Info("acquiring session lock", zap.String("session", p.SessionName))
	l, err := lock.Acquire(session.Dir(p.SessionName))
	if err != nil {
		return nil, err
	}
	logger.Info("session lock acquired", zap.String("path", l.Path()))
	return l, nil
}

func provideStore(b *bus.Bus, logger *zap.Logger) *store.Store {
	s := store.NewSeeded(store.WithBus(b))
	logger.Info("store seeded", zap.Int("chats", len(s.Chats())), zap.Int("contacts", len(s.Contacts())))
	return s
}

func provideIndex(s *store.Store, logger *zap.Logger) (*index.Index, error) {
	idx, err := index.Open()
	if err != nil {
		return nil, err
	}
	result, err := idx.Migrate()
	if err != nil {
		_ = idx.Close()
		return nil, err
	}
	if result.Changed {
		logger.Info("migrations applied", zap.Uint("version", result.Version))
	} else {
		logger.Info("migrations up to date", zap.Uint("version", result.Version))
	}
	n, err := idx.Rebuild(s.Chats())
	if err != nil {
		_ = idx.Close()
		return nil, err
	}
	logger.Info("search index built", zap.Int("messages", n))
	return idx, nil
}

func provideIndexer(idx *index.Index, s *store.Store, b *bus.Bus, logger *zap.Logger) *index.Indexer {
	return index.NewIndexer(idx, s, b, logger)
}

func provideBlobs(p Params) (*media.Blobs, error) {
	return media.NewBlobs(session.MediaDir(p.SessionName))
}

func provideRecorder(cfg *config.Config, blobs *media.Blobs, b *bus.Bus, logger *zap.Logger) *recording.Controller {
	return recording.NewController(captureDevice(cfg), blobs, b, logger, cfg.Recording.TickInterval)
}

// captureDevice falls back to the ffmpeg commands for anything left unset.
func captureDevice(cfg *config.Config) *recording.ExecDevice {
	audio := cfg.Recording.AudioCommand
	video := cfg.Recording.VideoCommand
	return &recording.ExecDevice{
		AudioCommand: lo.Ternary(len(audio) > 0, audio, recording.DefaultAudioCommand),
		VideoCommand: lo.Ternary(len(video) > 0, video, recording.DefaultVideoCommand),
	}
}

func provideComposer(s *store.Store, rec *recording.Controller, b *bus.Bus, logger *zap.Logger) *composer.Composer {
	return composer.New(s, rec, b, logger)
}

func provideViewModel(p Params, s *store.Store, c *composer.Composer, idx *index.Index) *model.ViewModel {
	return model.NewViewModel(s, c, idx, p.SessionName)
}

func provideUI(p Params, vm *model.ViewModel, b *bus.Bus, cfg *config.Config, logger *zap.Logger) *tui.App {
	return tui.NewApp(tui.Options{
		ViewModel:  vm,
		Bus:        b,
		Config:     cfg,
		ConfigPath: p.ConfigPath,
		Logger:     logger,
	})
}

func registerLifecycle(lc fx.Lifecycle, shutdowner fx.Shutdowner, ui *tui.App, indexer *index.Indexer, c *composer.Composer, blobs *media.Blobs, idx *index.Index, lk *lock.Lock, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			indexer.Start(context.Background())

			go func() {
				if err := ui.Run(); err != nil {
					logger.Error("ui exited with error", zap.Error(err))
				}
				if err := shutdowner.Shutdown(); err != nil {
					logger.Warn("shutdown request failed", zap.Error(err))
				}
			}()
			logger.Info("client started")
			return nil
		},
		OnStop: func(_ context.Context) error {
			ui.Stop()
			c.StopRecording()
			indexer.Stop()
			if err := blobs.RevokeAll(); err != nil {
				logger.Warn("error revoking blobs", zap.Error(err))
			}
			if err := idx.Close(); err != nil {
				logger.Warn("error closing index", zap.Error(err))
			}
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("client stopped")
			_ = logger.Sync()
			return nil
		},
	})
}
