package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
)

// Notifier announces a freshly published digest to a Telegram chat. It is
// optional wiring; publish failures here never fail the run.
type Notifier struct {
	bot    *bot.Bot
	chatID int64
	log    *slog.Logger
}

func NewNotifier(token string, chatID int64, log *slog.Logger) (*Notifier, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &Notifier{
		bot:    b,
		chatID: chatID,
		log:    log,
	}, nil
}

func (n *Notifier) DigestPublished(
	ctx context.Context,
	displayDate string,
	path string,
) error {
	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: n.chatID,
		Text:   fmt.Sprintf("Nový Marketing Digest (%s) je venku: %s", displayDate, path),
	})
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}
