package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"mvdan.cc/xurls/v2"
)

// defaultFeeds is the built-in source list, used when FEEDS is not set.
var defaultFeeds = []string{
	"https://www.adweek.com/feed/",
	"https://marketingland.com/feed",
	"https://www.businessoffashion.com/feed/",
	"http://feeds.harvardbusiness.org/harvardbusiness",
}

type Config struct {
	AnthropicAPIKey  string `env:"ANTHROPIC_API_KEY"`
	PerplexityAPIKey string `env:"PERPLEXITY_API_KEY"`
	DigestDir        string `env:"DIGEST_DIR"       envDefault:"marketing-digest"`
	MainIndexPath    string `env:"MAIN_INDEX"       envDefault:"index.html"`
	FeedsRaw         string `env:"FEEDS"`
	WindowDays       int    `env:"WINDOW_DAYS"      envDefault:"7"`
	TelegramToken    string `env:"TELEGRAM_TOKEN"`
	TelegramChatID   int64  `env:"TELEGRAM_CHAT_ID"`
	CronSpec         string `env:"CRON_SPEC"        envDefault:"0 8 * * 1"`

	// Feeds is resolved from FeedsRaw, falling back to defaultFeeds.
	Feeds []string `env:"-"`
}

func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	feeds, err := ExtractFeedURLs(cfg.FeedsRaw)
	if err != nil {
		return Config{}, fmt.Errorf("extract feed URLs: %w", err)
	}

	if len(feeds) == 0 {
		feeds = append(feeds, defaultFeeds...)
	}
	cfg.Feeds = feeds

	return cfg, nil
}

// ExtractFeedURLs pulls feed addresses out of a free-form FEEDS value, so the
// override can be a comma-, space- or newline-separated list. Duplicates are
// dropped, order of first appearance is kept.
func ExtractFeedURLs(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	urlRe, err := xurls.StrictMatchingScheme("https?://")
	if err != nil {
		return nil, fmt.Errorf("create regexp: %w", err)
	}

	matches := urlRe.FindAllString(text, -1)

	urls := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))

	for _, m := range matches {
		trimmed := strings.TrimSpace(m)
		if _, ok := seen[trimmed]; ok {
			continue
		}

		urls = append(urls, trimmed)
		seen[trimmed] = struct{}{}
	}

	return urls, nil
}
