package narrative

import (
	"fmt"
	"strings"

	"marketingdigest/internal/domain"
)

const (
	maxPromptArticles = 30

	noArticlesPlaceholder = "(žádné RSS články nebyly dostupné)"
	noInsightPlaceholder  = "(Perplexity nebyl dostupný)"
)

const promptTemplate = `Napiš weekly marketing digest v češtině, 800–1200 slov.

RSS ČLÁNKY Z TOHOTO TÝDNE:
%s

PERPLEXITY INSIGHTS (čerstvé marketingové dění):
%s

Výstup musí být čistý HTML fragment — BEZ tagů <html>, <head>, <body>.
Struktura: přesně 4 sekce s <h2> nadpisy:
  1. Top novinky týdne
  2. Virální reklamy & kampaně
  3. Trendy & insights
  4. Zajímavosti

Pro každou položku: <strong>název</strong>, 2–4 věty popis, zdroj/odkaz kde relevantní.
Piš přirozeně, osobně — jako UGC creatorka zaměřená na marketing.
Pouze HTML tagy: <h2>, <p>, <strong>, <em>, <ul>, <li>, <a href="...">.`

// BuildPrompt renders the fixed generation prompt over the first
// maxPromptArticles articles and the insight text, substituting placeholders
// when either input is empty.
func BuildPrompt(articles []domain.Article, insight string) string {
	articlesBlock := renderArticles(articles)
	if articlesBlock == "" {
		articlesBlock = noArticlesPlaceholder
	}

	insightBlock := strings.TrimSpace(insight)
	if insightBlock == "" {
		insightBlock = noInsightPlaceholder
	}

	return fmt.Sprintf(promptTemplate, articlesBlock, insightBlock)
}

func renderArticles(articles []domain.Article) string {
	if len(articles) > maxPromptArticles {
		articles = articles[:maxPromptArticles]
	}

	lines := make([]string, 0, len(articles))
	for _, a := range articles {
		lines = append(lines, fmt.Sprintf("- [%s] %s | %s\n  %s",
			a.Date, a.Title, a.Source, a.Summary))
	}

	return strings.Join(lines, "\n")
}
