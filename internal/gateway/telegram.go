package gateway

import (
	"context"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/meera/sahay/internal/agent"
)

// TelegramGateway exposes the same Brain over the Telegram bot API. Each chat
// is one conversation; requests are processed one at a time per update loop.
type TelegramGateway struct {
	Bot   *tgbotapi.BotAPI
	Brain agent.Brain
}

func NewTelegramGateway(token string, brain agent.Brain) (*TelegramGateway, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	return &TelegramGateway{
		Bot:   bot,
		Brain: brain,
	}, nil
}

func (tg *TelegramGateway) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := tg.Bot.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}

		log.Printf("[%s] %s", update.Message.From.UserName, update.Message.Text)

		text := strings.TrimSpace(update.Message.Text)
		if strings.EqualFold(text, "help") || text == "/help" || text == "/start" {
			tg.Bot.Send(tgbotapi.NewMessage(update.Message.Chat.ID, helpMessage()))
			continue
		}

		ctx := context.Background()
		chatID := fmt.Sprintf("%d", update.Message.Chat.ID)
		response, err := tg.Brain.Think(ctx, chatID, text)
		if err != nil {
			// Decomposition failures surface as one top-level message;
			// the chat stays usable.
			response = fmt.Sprintf("I couldn't plan that request: %v", err)
		}

		msg := tgbotapi.NewMessage(update.Message.Chat.ID, response)
		tg.Bot.Send(msg)
	}
	return nil
}

func helpMessage() string {
	var b strings.Builder
	b.WriteString("Send me a request and I'll break it into steps. Examples:\n")
	for _, example := range exampleInputs {
		b.WriteString("• ")
		b.WriteString(example)
		b.WriteString("\n")
	}
	return b.String()
}

func (tg *TelegramGateway) Send(chatID string, text string) error {
	id := 0
	fmt.Sscanf(chatID, "%d", &id)
	if id == 0 {
		return fmt.Errorf("invalid chat ID: %s", chatID)
	}

	msg := tgbotapi.NewMessage(int64(id), text)
	_, err := tg.Bot.Send(msg)
	return err
}

func (tg *TelegramGateway) Stop() error {
	tg.Bot.StopReceivingUpdates()
	return nil
}
