package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/vkotelnikov/timetable-bot/internal/dialog"
)

// Handlers переводит обновления Telegram в события диалога
// и отрисовывает ответы диалога обратно в чат
type Handlers struct {
	engine *dialog.Engine
	logger *zap.Logger
}

// NewHandlers создаёт обработчики обновлений
func NewHandlers(engine *dialog.Engine, logger *zap.Logger) *Handlers {
	return &Handlers{
		engine: engine,
		logger: logger,
	}
}

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	firstName := ""
	if update.Message.From != nil {
		firstName = update.Message.From.FirstName
	}

	reply := h.engine.Start(ctx, update.Message.Chat.ID, firstName)
	h.render(ctx, b, update.Message.Chat.ID, reply)
}

// HandleCancel обрабатывает команду /cancel — безусловный сброс диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	reply := h.engine.Cancel(ctx, update.Message.Chat.ID)
	h.render(ctx, b, update.Message.Chat.ID, reply)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Бот собирает расписание занятий по группам.\n\n" +
		"/start - Начать ввод расписания\n" +
		"/cancel - Отменить текущий диалог\n" +
		"/help - Показать эту справку\n\n" +
		"Расписание вводится построчно, каждая строка вида:\n" +
		"9:00 - Математика"

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   helpText,
	})
	if err != nil {
		h.logger.Error("Failed to send help message",
			zap.Int64("chat_id", update.Message.Chat.ID),
			zap.Error(err))
	}
}

// HandleTextMessage передаёт текстовые сообщения активному диалогу.
// Вне диалога сообщения игнорируются.
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Команды обрабатываются своими handlers
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	chatID := update.Message.Chat.ID
	reply := h.engine.Handle(ctx, chatID, dialog.Input{
		Kind: dialog.KindText,
		Text: update.Message.Text,
	})
	h.render(ctx, b, chatID, reply)
}

// HandleGroupCallback обрабатывает нажатие inline-кнопки выбора группы
func (h *Handlers) HandleGroupCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	callback := update.CallbackQuery
	if callback == nil {
		return
	}

	// Убираем "часики" на кнопке
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callback.ID,
	})

	msg := callback.Message.Message
	if msg == nil {
		h.logger.Warn("Callback without accessible message",
			zap.String("data", callback.Data))
		return
	}

	chatID := msg.Chat.ID
	reply := h.engine.Handle(ctx, chatID, dialog.Input{
		Kind:      dialog.KindOption,
		Text:      callback.Data,
		MessageID: msg.ID,
	})
	h.render(ctx, b, chatID, reply)
}
