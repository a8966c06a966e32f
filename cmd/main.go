package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"marketingdigest/internal/config"
	"marketingdigest/internal/feed"
	"marketingdigest/internal/insight"
	"marketingdigest/internal/narrative"
	"marketingdigest/internal/notify"
	"marketingdigest/internal/pipeline"
	"marketingdigest/internal/scheduler"
	"marketingdigest/internal/site"

	"github.com/spf13/cobra"
)

const hoursPerDay = 24

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	rootCmd := &cobra.Command{
		Use:           "marketingdigest",
		Short:         "Weekly marketing digest generator",
		Long:          "Generates a weekly marketing digest from RSS feeds and API insights and publishes it to a static site.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), log)
		},
	}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate today's digest and update the site",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), log)
		},
	}

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the generator on a cron schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSchedule(cmd.Context(), log)
		},
	}

	rootCmd.AddCommand(generateCmd, scheduleCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func runGenerate(ctx context.Context, log *slog.Logger) error {
	p, _, err := buildPipeline(ctx, log)
	if err != nil {
		return err
	}

	if err = p.Run(ctx, time.Now()); err != nil {
		log.ErrorContext(ctx, "Digest generation failed",
			"error", err)

		return err
	}

	return nil
}

func runSchedule(ctx context.Context, log *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p, cfg, err := buildPipeline(ctx, log)
	if err != nil {
		return err
	}

	sched := scheduler.New(ctx, cfg.CronSpec, func(runCtx context.Context) error {
		return p.Run(runCtx, time.Now())
	}, log)

	if err = sched.Start(); err != nil {
		log.ErrorContext(ctx, "Failed to start scheduler",
			"error", err,
			"spec", cfg.CronSpec)

		return err
	}
	defer sched.Stop()
	log.InfoContext(ctx, "Scheduler is started",
		"spec", cfg.CronSpec)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	sig := <-c
	log.InfoContext(ctx, "Shutdown signal is received",
		"signal", sig.String())

	return nil
}

func buildPipeline(
	ctx context.Context,
	log *slog.Logger,
) (*pipeline.Pipeline, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		log.ErrorContext(ctx, "Failed to load config",
			"error", err)

		return nil, config.Config{}, err
	}

	if strings.TrimSpace(cfg.AnthropicAPIKey) == "" {
		log.ErrorContext(ctx, "ANTHROPIC_API_KEY is required",
			"envVar", "ANTHROPIC_API_KEY")

		return nil, config.Config{}, errors.New("ANTHROPIC_API_KEY is required")
	}

	collector := feed.NewCollector(log)
	generator := narrative.NewGenerator(cfg.AnthropicAPIKey)
	publisher := site.NewPublisher(cfg.DigestDir, cfg.MainIndexPath, log)

	var insightFetcher pipeline.InsightFetcher
	if key := strings.TrimSpace(cfg.PerplexityAPIKey); key != "" {
		insightFetcher = insight.NewFetcher(key)
	} else {
		log.WarnContext(ctx, "PERPLEXITY_API_KEY is missing so insights will be skipped",
			"envVar", "PERPLEXITY_API_KEY")
	}

	var notifier pipeline.Notifier
	if token := strings.TrimSpace(cfg.TelegramToken); token != "" && cfg.TelegramChatID != 0 {
		n, notifyErr := notify.NewNotifier(token, cfg.TelegramChatID, log)
		if notifyErr != nil {
			log.WarnContext(ctx, "Failed to create notifier so notifications will be skipped",
				"error", notifyErr)
		} else {
			notifier = n
		}
	}

	window := time.Duration(cfg.WindowDays) * hoursPerDay * time.Hour

	p := pipeline.New(
		cfg.Feeds,
		window,
		collector,
		insightFetcher,
		generator,
		publisher,
		notifier,
		log,
	)

	return p, cfg, nil
}
