package di

import (
	"context"
	"log/slog"
	"os"

	"kasubs/internal/adapter/amara"
	"kasubs/internal/adapter/khan"
	"kasubs/internal/adapter/logging"
	"kasubs/internal/adapter/notify"
	"kasubs/internal/adapter/prompt"
	"kasubs/internal/adapter/treestore"
	"kasubs/internal/app"
	"kasubs/internal/config"
	"kasubs/internal/domain/ports"
	"kasubs/internal/usecase"
)

// Logs go to stderr so stdout stays free for exported data.
func provideSlogLogger(cfg *config.Config) *slog.Logger {
	return slog.New(logging.NewHandler(os.Stderr, cfg.LogFormat, cfg.LogLevel))
}

// provideTreeStore stacks the configured backends: Redis, then SQLite, then
// the cache directory. An unreachable Redis is logged and left out.
func provideTreeStore(cfg *config.Config, logger ports.Logger) (ports.TreeStore, func(), error) {
	var stores []ports.TreeStore
	var closers []func() error

	if cfg.RedisURL != "" {
		rs, err := treestore.OpenRedis(context.Background(), cfg.RedisURL, cfg.TreeCacheTTL)
		if err != nil {
			logger.Warn(context.Background(), "redis tree store disabled", "error", err)
		} else {
			stores = append(stores, rs)
			closers = append(closers, rs.Close)
		}
	}

	if cfg.TreeCacheSQLite != "" {
		ss, err := treestore.OpenSQLite(cfg.TreeCacheSQLite)
		if err != nil {
			for _, c := range closers {
				c()
			}
			return nil, nil, err
		}
		stores = append(stores, ss)
		closers = append(closers, ss.Close)
	}

	stores = append(stores, treestore.NewFileStore(cfg.TreeCacheDir))

	cleanup := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Error(context.Background(), "close tree store", "error", err)
			}
		}
	}
	return treestore.NewTiered(logger, stores...), cleanup, nil
}

func provideTreeCatalog(cfg *config.Config, store ports.TreeStore) *usecase.TreeCatalog {
	return usecase.NewTreeCatalog(store, cfg.KhanLocale)
}

func provideContentSource(cfg *config.Config, logger ports.Logger) (ports.ContentSource, error) {
	client, err := khan.New(khan.Config{
		Locale:             cfg.KhanLocale,
		BaseURL:            cfg.KhanBaseURL,
		TolerateHTTPErrors: cfg.KhanTolerateHTTPErrors,
		Timeout:            cfg.RequestTimeout,
		RateLimit:          cfg.KhanRateLimit,
	}, logger)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func provideConfirmer() ports.Confirmer {
	return prompt.NewConsole(os.Stdin, os.Stderr)
}

func provideSubtitleHost(cfg *config.Config, confirm ports.Confirmer, logger ports.Logger) (ports.SubtitleHost, error) {
	client, err := amara.New(amara.Config{
		BaseURL:                cfg.AmaraBaseURL,
		Username:               cfg.AmaraUsername,
		APIKey:                 cfg.AmaraAPIKey,
		Timeout:                cfg.RequestTimeout,
		RateLimit:              cfg.AmaraRateLimit,
		ShortSubtitleThreshold: cfg.ShortSubtitleThreshold,
	}, confirm, logger)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func provideNotifier(cfg *config.Config, logger ports.Logger) ports.Notifier {
	if cfg.NotifyWebhookURL == "" {
		return nil
	}
	return notify.NewWebhook(cfg.NotifyWebhookURL, cfg.RequestTimeout, logger)
}

func provideRefreshConfig(cfg *config.Config) usecase.TreeRefreshConfig {
	return usecase.TreeRefreshConfig{ContentTypes: cfg.KhanContentTypes}
}

func provideExportConfig(cfg *config.Config) usecase.TreeExportConfig {
	return usecase.TreeExportConfig{TranslationLocale: cfg.TranslationLocale}
}

func provideSchedule(cfg *config.Config) app.Schedule {
	return app.Schedule(cfg.RefreshCron)
}
