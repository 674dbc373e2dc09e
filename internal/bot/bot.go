package bot

import (
	"context"
	"fmt"
	"time"

	"jobplanner/internal/bot/handlers"
	"jobplanner/internal/bot/middleware"
	"jobplanner/internal/catalog"
	"jobplanner/internal/config"
	"jobplanner/internal/storage/postgres"
	"jobplanner/internal/storage/redis"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Bot represents Telegram bot
type Bot struct {
	bot     *tele.Bot
	store   *postgres.Store
	cache   *redis.Cache
	catalog *catalog.Catalog
	config  *config.Config
	logger  *zap.Logger
}

func New(
	cfg *config.Config,
	store *postgres.Store,
	cache *redis.Cache,
	jobs *catalog.Catalog,
	logger *zap.Logger,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.TelegramToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			logger.Error("telegram error", zap.Error(err))
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		store:   store,
		cache:   cache,
		catalog: jobs,
		config:  cfg,
		logger:  logger,
	}

	bot.setupMiddleware()
	bot.registerHandlers()

	logger.Info("bot initialized successfully", zap.String("username", b.Me.Username))

	return bot, nil
}

func (b *Bot) setupMiddleware() {
	b.bot.Use(middleware.Recovery(b.logger))
	b.bot.Use(middleware.Logger(b.logger))
	b.bot.Use(middleware.RateLimit(b.cache, b.config.RateLimitPerMinute, b.logger))
}

func (b *Bot) registerHandlers() {
	ctx := &handlers.Context{
		Store:   b.store,
		Cache:   b.cache,
		Catalog: b.catalog,
		Config:  b.config,
		Logger:  b.logger,
	}

	b.bot.Handle("/start", handlers.HandleStart(ctx))
	b.bot.Handle("/help", handlers.HandleHelp(ctx))
	b.bot.Handle("/filters", handlers.HandleFilters(ctx))
	b.bot.Handle("/jobs", handlers.HandleJobs(ctx))
	b.bot.Handle("/saved", handlers.HandleSaved(ctx))
	b.bot.Handle("/export", handlers.HandleExport(ctx))

	b.bot.Handle(tele.OnText, handlers.HandleText(ctx))
	b.bot.Handle(tele.OnCallback, handlers.HandleCallback(ctx))

	b.logger.Info("handlers registered")
}

// Start polls for updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting bot...")

	go b.bot.Start()

	<-ctx.Done()

	b.logger.Info("stopping bot...")
	b.bot.Stop()

	return nil
}
