package bot

import (
	"fitscore/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

const (
	btnAdd     = "➕ Добавить"
	btnScore   = "📈 Очки"
	btnHistory = "📝 История"
	btnCancel  = "Отмена"
	btnToday   = "Сегодня"
	btnYest    = "Вчера"
	btnSkip    = "Пропустить"
)

// sendError sends error message to user and logs it
func (b *Bot) sendError(chatID int64, userMessage string, err error) {
	if err != nil {
		log.Errorf("ошибка [chat=%d]: %v", chatID, err)
	}
	b.sendMessageWithKeyboard(chatID, userMessage, mainKeyboard())
}

// sendMessage sends message to user with error logging
func (b *Bot) sendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.out.Send(msg)
	if err != nil {
		log.Errorf("не удалось отправить сообщение [chat=%d]: %v", chatID, err)
	}
	return err
}

// sendMessageWithKeyboard sends message with keyboard
func (b *Bot) sendMessageWithKeyboard(chatID int64, text string, keyboard interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	_, err := b.out.Send(msg)
	if err != nil {
		log.Errorf("не удалось отправить сообщение с клавиатурой [chat=%d]: %v", chatID, err)
	}
	return err
}

func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnAdd),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnScore),
			tgbotapi.NewKeyboardButton(btnHistory),
		),
	)
}

func dateKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnToday),
			tgbotapi.NewKeyboardButton(btnYest),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
}

func categoryKeyboard() tgbotapi.ReplyKeyboardMarkup {
	row := make([]tgbotapi.KeyboardButton, 0, len(models.Categories))
	for _, c := range models.Categories {
		row = append(row, tgbotapi.NewKeyboardButton(c.Label()))
	}
	return tgbotapi.NewReplyKeyboard(
		row,
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
}

// createCancelKeyboard creates a simple keyboard with just Cancel button
func createCancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
}

func commentKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSkip),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
}
