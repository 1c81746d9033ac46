// Package notify implements the reminder channels the scheduler sends
// due-review notifications through.
package notify

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/qreview/internal/review"
	"github.com/example/qreview/pkg/models"
)

// TelegramNotifier sends due-review reminders to a single Telegram chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier creates a notifier for the given bot token and chat.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %v", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

// SendDueReminder sends a summary of due questions, broken down by subject.
func (n *TelegramNotifier) SendDueReminder(total int, bySubject map[models.Subject]int) error {
	var b strings.Builder
	fmt.Fprintf(&b, "You have %d question(s) due for review:\n", total)
	for _, subject := range models.Subjects {
		if count := bySubject[subject]; count > 0 {
			fmt.Fprintf(&b, "- %s: %d\n", review.SubjectTitle(subject), count)
		}
	}
	b.WriteString("\nRun `qreview review` to start a session.")

	msg := tgbotapi.NewMessage(n.chatID, b.String())
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send reminder: %v", err)
	}
	return nil
}
