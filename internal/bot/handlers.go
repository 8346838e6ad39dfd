package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fitscore/internal/models"
	"fitscore/internal/tracker"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Шаги формы новой записи
const (
	stepDate = iota
	stepCategory
	stepValue
	stepComment
)

// draft запись, которую пользователь заполняет по шагам
type draft struct {
	step      int
	candidate models.Candidate
}

const helpText = `Фитнес-трекер: очки за последние 28 дней.

/add — новая запись по шагам
/add [ДД.ММ.ГГГГ] <категория> <значение> [комментарий] — в одну строку
/score — очки по категориям
/history [N] — последние записи
/cancel — отменить ввод

Выносливость: значение = очки интенсивности.
Сила и гибкость: минуты × 5.`

func (b *Bot) handleCommand(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	switch message.Command() {
	case "start", "help":
		delete(b.drafts, chatID)
		b.sendMessageWithKeyboard(chatID, helpText, mainKeyboard())
	case "add":
		args := strings.TrimSpace(message.CommandArguments())
		if args == "" {
			b.startDraft(chatID)
			return
		}
		candidate, err := parseAddArgs(args, b.tracker.Today())
		if err != nil {
			b.sendMessage(chatID, err.Error())
			return
		}
		b.submit(chatID, candidate)
	case "score":
		b.showScore(chatID)
	case "history":
		limit := defaultHistoryLimit
		if n, err := strconv.Atoi(strings.TrimSpace(message.CommandArguments())); err == nil && n > 0 {
			limit = n
		}
		b.showHistory(chatID, limit)
	case "cancel":
		delete(b.drafts, chatID)
		b.sendMessageWithKeyboard(chatID, "Ввод отменён.", mainKeyboard())
	default:
		b.sendMessage(chatID, "Неизвестная команда. /help — список команд.")
	}
}

func (b *Bot) handleText(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	if text == btnCancel {
		delete(b.drafts, chatID)
		b.sendMessageWithKeyboard(chatID, "Ввод отменён.", mainKeyboard())
		return
	}

	if d, ok := b.drafts[chatID]; ok {
		b.continueDraft(chatID, d, text)
		return
	}

	switch text {
	case btnAdd:
		b.startDraft(chatID)
	case btnScore:
		b.showScore(chatID)
	case btnHistory:
		b.showHistory(chatID, defaultHistoryLimit)
	default:
		b.sendMessageWithKeyboard(chatID, "Выберите действие или /help.", mainKeyboard())
	}
}

func (b *Bot) startDraft(chatID int64) {
	b.drafts[chatID] = &draft{step: stepDate}
	b.sendMessageWithKeyboard(chatID, "Дата тренировки (ДД.ММ.ГГГГ):", dateKeyboard())
}

func (b *Bot) continueDraft(chatID int64, d *draft, text string) {
	switch d.step {
	case stepDate:
		date, err := parseDateInput(text, b.tracker.Today())
		if err != nil {
			b.sendMessage(chatID, err.Error())
			return
		}
		d.candidate.Date = date
		d.step = stepCategory
		b.sendMessageWithKeyboard(chatID, "Категория:", categoryKeyboard())

	case stepCategory:
		category, err := parseCategoryInput(text)
		if err != nil {
			b.sendMessage(chatID, err.Error())
			return
		}
		d.candidate.Category = category
		d.step = stepValue
		b.sendMessageWithKeyboard(chatID, category.UnitPrompt()+":", createCancelKeyboard())

	case stepValue:
		value, err := parseRawValue(text)
		if err != nil {
			b.sendMessage(chatID, err.Error())
			return
		}
		d.candidate.RawValue = value
		d.step = stepComment
		b.sendMessageWithKeyboard(chatID, "Комментарий (необязательно):", commentKeyboard())

	case stepComment:
		if text != btnSkip && text != "-" {
			d.candidate.Comment = text
		}
		delete(b.drafts, chatID)
		b.submit(chatID, d.candidate)
	}
}

func (b *Bot) submit(chatID int64, candidate models.Candidate) {
	ctx, cancel := storeContext()
	defer cancel()

	res, err := b.tracker.Submit(ctx, candidate)
	if err != nil {
		if errors.Is(err, tracker.ErrInvalidCandidate) {
			b.sendError(chatID, err.Error(), nil)
			return
		}
		b.sendError(chatID, "Ошибка сохранения.", err)
		return
	}
	b.sendMessageWithKeyboard(chatID, formatSubmitResult(res), mainKeyboard())
}

func (b *Bot) showScore(chatID int64) {
	ctx, cancel := storeContext()
	defer cancel()

	b.sendMessageWithKeyboard(chatID, formatDashboard(b.tracker.Dashboard(ctx)), mainKeyboard())
}

func (b *Bot) showHistory(chatID int64, limit int) {
	ctx, cancel := storeContext()
	defer cancel()

	v := b.tracker.Dashboard(ctx)
	text := formatHistory(v, limit)
	if v.Degraded {
		text = fmt.Sprintf("⚠️ Хранилище недоступно.\n\n%s", text)
	}
	b.sendMessageWithKeyboard(chatID, text, mainKeyboard())
}
