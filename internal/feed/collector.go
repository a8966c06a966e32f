package feed

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"marketingdigest/internal/domain"

	"github.com/mmcdole/gofeed"
)

const (
	feedClientTimeout = 20 * time.Second
	summaryMaxChars   = 300

	dateLayout = "2006-01-02"
)

// Collector gathers recent articles from a list of RSS/Atom sources.
type Collector struct {
	parser *gofeed.Parser
	log    *slog.Logger
}

func NewCollector(log *slog.Logger) *Collector {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: feedClientTimeout}

	return &Collector{
		parser: parser,
		log:    log,
	}
}

// Collect fetches every source once and returns the articles published within
// the window ending at now, the run's clock. A source that fails to fetch or
// parse is logged and skipped; results from the remaining sources are always
// returned. Entries without a resolvable publication time are kept.
func (c *Collector) Collect(
	ctx context.Context,
	feedURLs []string,
	window time.Duration,
	now time.Time,
) []domain.Article {
	cutoff := now.UTC().Add(-window)

	var articles []domain.Article

	for _, feedURL := range feedURLs {
		parsed, err := c.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			c.log.WarnContext(ctx, "Skipping feed source",
				"error", err,
				"feedURL", feedURL)

			continue
		}

		count := 0
		for _, item := range parsed.Items {
			article, ok := collectItem(item, cutoff, parsed.Title, feedURL)
			if !ok {
				continue
			}

			articles = append(articles, article)
			count++
		}

		c.log.InfoContext(ctx, "Feed source is collected",
			"feedURL", feedURL,
			"articleCount", count)
	}

	c.log.InfoContext(ctx, "Feed collection is finished",
		"sourceCount", len(feedURLs),
		"articleCount", len(articles))

	return articles
}

func collectItem(
	item *gofeed.Item,
	cutoff time.Time,
	feedTitle string,
	feedURL string,
) (domain.Article, bool) {
	published, resolved := resolvePublished(item)
	if resolved && published.Before(cutoff) {
		return domain.Article{}, false
	}

	source := strings.TrimSpace(feedTitle)
	if source == "" {
		source = feedURL
	}

	date := ""
	if resolved {
		date = published.UTC().Format(dateLayout)
	}

	return domain.Article{
		Title:   strings.TrimSpace(item.Title),
		Link:    strings.TrimSpace(item.Link),
		Summary: extractSummary(item.Description),
		Source:  source,
		Date:    date,
	}, true
}

func resolvePublished(item *gofeed.Item) (time.Time, bool) {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed, true
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed, true
	}

	return time.Time{}, false
}
