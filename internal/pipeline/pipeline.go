package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"marketingdigest/internal/domain"
	"marketingdigest/internal/site"
)

const dateLayout = "2006-01-02"

// ArticleCollector gathers recent articles from the configured sources,
// using now as the run's clock for the recency window.
type ArticleCollector interface {
	Collect(ctx context.Context, feedURLs []string, window time.Duration, now time.Time) []domain.Article
}

// InsightFetcher asks the search API for recent topical highlights.
type InsightFetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// Generator turns collected material into the digest HTML fragment.
type Generator interface {
	Generate(ctx context.Context, articles []domain.Article, insight string) (string, error)
}

// Publisher writes the dated page, archive index and main-page patch.
type Publisher interface {
	WriteDigestPage(ctx context.Context, date time.Time, fragment string) (string, error)
	RebuildArchive(ctx context.Context) ([]domain.Digest, error)
	PatchMainIndex(ctx context.Context, digests []domain.Digest) error
}

// Notifier announces a published digest.
type Notifier interface {
	DigestPublished(ctx context.Context, displayDate string, path string) error
}

// Pipeline runs the four digest phases in order: collect, fetch insights,
// generate, publish. Insight and notification failures degrade the run;
// generation failure aborts it before anything is written.
type Pipeline struct {
	feeds     []string
	window    time.Duration
	collector ArticleCollector
	insight   InsightFetcher // nil when credentials are missing
	generator Generator
	publisher Publisher
	notifier  Notifier // nil when not configured
	log       *slog.Logger
}

func New(
	feeds []string,
	window time.Duration,
	collector ArticleCollector,
	insight InsightFetcher,
	generator Generator,
	publisher Publisher,
	notifier Notifier,
	log *slog.Logger,
) *Pipeline {
	return &Pipeline{
		feeds:     feeds,
		window:    window,
		collector: collector,
		insight:   insight,
		generator: generator,
		publisher: publisher,
		notifier:  notifier,
		log:       log,
	}
}

func (p *Pipeline) Run(ctx context.Context, now time.Time) error {
	date := now.UTC()

	p.log.InfoContext(ctx, "Digest generation is started",
		"date", date.Format(dateLayout),
		"sourceCount", len(p.feeds),
		"windowDays", int(p.window.Hours())/24)

	articles := p.collector.Collect(ctx, p.feeds, p.window, date)

	insight := p.fetchInsight(ctx)

	fragment, err := p.generator.Generate(ctx, articles, insight)
	if err != nil {
		return fmt.Errorf("generate digest: %w", err)
	}
	p.log.InfoContext(ctx, "Digest fragment is generated",
		"articleCount", len(articles),
		"fragmentLen", len(fragment))

	path, err := p.publisher.WriteDigestPage(ctx, date, fragment)
	if err != nil {
		return fmt.Errorf("write digest page: %w", err)
	}

	digests, err := p.publisher.RebuildArchive(ctx)
	if err != nil {
		return fmt.Errorf("rebuild archive: %w", err)
	}

	if err = p.publisher.PatchMainIndex(ctx, digests); err != nil {
		return fmt.Errorf("patch main index: %w", err)
	}

	p.notifyPublished(ctx, date, path)

	p.log.InfoContext(ctx, "Digest generation is finished",
		"date", date.Format(dateLayout),
		"path", path,
		"digestCount", len(digests))

	return nil
}

func (p *Pipeline) fetchInsight(ctx context.Context) string {
	if p.insight == nil {
		p.log.WarnContext(ctx, "Insight credentials are missing so insights are skipped")

		return ""
	}

	text, err := p.insight.Fetch(ctx)
	if err != nil {
		p.log.WarnContext(ctx, "Failed to fetch insights",
			"error", err)

		return ""
	}

	p.log.InfoContext(ctx, "Insights are fetched",
		"insightLen", len(text))

	return text
}

func (p *Pipeline) notifyPublished(ctx context.Context, date time.Time, path string) {
	if p.notifier == nil {
		return
	}

	displayDate := site.FormatCzechDate(date)
	if err := p.notifier.DigestPublished(ctx, displayDate, path); err != nil {
		p.log.WarnContext(ctx, "Failed to send publish notification",
			"error", err,
			"path", path)
	}
}
