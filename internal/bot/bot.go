package bot

import (
	"context"
	"time"

	"fitscore/internal/config"
	"fitscore/internal/tracker"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// storeTimeout ограничение на один цикл чтения/записи хранилища
const storeTimeout = 30 * time.Second

// sender часть BotAPI, которой пользуется бот
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot представляет Telegram бота
type Bot struct {
	api           *tgbotapi.BotAPI
	out           sender
	tracker       *tracker.Service
	allowedChatID int64

	// черновики записей по чатам, обновления обрабатываются последовательно
	drafts map[int64]*draft
}

// New создаёт новый экземпляр бота
func New(api *tgbotapi.BotAPI, svc *tracker.Service, cfg *config.Config) *Bot {
	b := newBot(api, svc, cfg.AllowedChatID)
	b.api = api
	return b
}

func newBot(out sender, svc *tracker.Service, allowedChatID int64) *Bot {
	return &Bot{
		out:           out,
		tracker:       svc,
		allowedChatID: allowedChatID,
		drafts:        make(map[int64]*draft),
	}
}

// Start запускает бота и блокируется до закрытия канала обновлений
func (b *Bot) Start() error {
	updates := b.initUpdatesChannel()
	log.Infof("бот @%s запущен", b.api.Self.UserName)
	b.handleUpdates(updates)
	return nil
}

// Stop останавливает получение обновлений
func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
}

func (b *Bot) handleUpdates(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		if update.Message == nil {
			continue
		}
		b.handleMessage(update.Message)
	}
}

func (b *Bot) handleMessage(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	if !b.isAllowed(chatID) {
		log.Warnf("сообщение из чужого чата %d", chatID)
		b.sendMessage(chatID, "Доступ запрещён.")
		return
	}

	if message.IsCommand() {
		b.handleCommand(message)
		return
	}

	b.handleText(message)
}

func (b *Bot) initUpdatesChannel() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	return b.api.GetUpdatesChan(u)
}

func (b *Bot) isAllowed(chatID int64) bool {
	return b.allowedChatID == 0 || chatID == b.allowedChatID
}

func storeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}
