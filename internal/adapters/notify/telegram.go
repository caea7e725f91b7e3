package notify

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tourneyslots/internal/domain"
)

type telegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier connects to the Telegram bot API. An empty token returns
// a no-op notifier so local setups work without a bot.
func NewTelegramNotifier(token string, chatID int64, logger *slog.Logger) (domain.Notifier, error) {
	if token == "" || chatID == 0 {
		logger.Info("telegram notifications disabled")
		return &noopNotifier{logger: logger}, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect telegram bot: %w", err)
	}
	logger.Info("telegram notifier ready", "bot", bot.Self.UserName)
	return &telegramNotifier{bot: bot, chatID: chatID}, nil
}

func (t *telegramNotifier) Notify(_ context.Context, message string) error {
	msg := tgbotapi.NewMessage(t.chatID, message)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

type noopNotifier struct {
	logger *slog.Logger
}

func (n *noopNotifier) Notify(_ context.Context, message string) error {
	n.logger.Debug("notification suppressed", "message", message)
	return nil
}
