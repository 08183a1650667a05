package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/vkotelnikov/timetable-bot/internal/controller/handlers"
	"github.com/vkotelnikov/timetable-bot/internal/dialog"
)

type BotController struct {
	bot      *bot.Bot
	handlers *handlers.Handlers
	logger   *zap.Logger
}

func NewBotController(botInstance *bot.Bot, engine *dialog.Engine, logger *zap.Logger) *BotController {
	return &BotController{
		bot:      botInstance,
		handlers: handlers.NewHandlers(engine, logger),
		logger:   logger,
	}
}

// RegisterHandlers регистрирует все обработчики обновлений
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.recovered(c.handlers.HandleStart))
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.recovered(c.handlers.HandleCancel))
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.recovered(c.handlers.HandleHelp))

	// Обычный текст уходит в активный диалог
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.recovered(c.handlers.HandleTextMessage))

	// Inline-кнопки выбора группы
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.recovered(c.handlers.HandleGroupCallback))

	return c.setCommands(ctx)
}

// recovered изолирует обработку одного обновления: паника в диалоге
// одного чата логируется и не роняет цикл обработки остальных
func (c *BotController) recovered(h bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		defer func() {
			if r := recover(); r != nil {
				c.logger.Error("Panic in update handler",
					zap.Int64("update_id", update.ID),
					zap.Any("panic", r))
			}
		}()
		h(ctx, b, update)
	}
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать ввод расписания"},
		{Command: "cancel", Description: "❌ Отменить текущий диалог"},
		{Command: "help", Description: "❓ Справка"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("Bot commands menu set")
	return nil
}

// Start запускает long polling до отмены контекста
func (c *BotController) Start(ctx context.Context) {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
}
