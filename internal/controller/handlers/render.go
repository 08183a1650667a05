package handlers

import (
	"bytes"
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/vkotelnikov/timetable-bot/internal/controller/keyboard"
	"github.com/vkotelnikov/timetable-bot/internal/dialog"
)

// render отрисовывает ответ диалога: сообщения с клавиатурами,
// удаление отработавшего inline-меню, документ и картинку.
// Все отправки best-effort: ошибка логируется и не прерывает остальное.
func (h *Handlers) render(ctx context.Context, b *bot.Bot, chatID int64, reply *dialog.Reply) {
	if reply == nil {
		return
	}

	if reply.DeleteMessageID != 0 {
		_, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{
			ChatID:    chatID,
			MessageID: reply.DeleteMessageID,
		})
		if err != nil {
			h.logger.Warn("Failed to delete inline menu message",
				zap.Int64("chat_id", chatID),
				zap.Int("message_id", reply.DeleteMessageID),
				zap.Error(err))
		}
	}

	for _, msg := range reply.Messages {
		h.renderMessage(ctx, b, chatID, msg)
	}

	if reply.Photo != nil {
		_, err := b.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID:  chatID,
			Photo:   &models.InputFileUpload{Filename: reply.Photo.Name, Data: bytes.NewReader(reply.Photo.Data)},
			Caption: reply.Photo.Caption,
		})
		if err != nil {
			h.logger.Warn("Failed to send day preview",
				zap.Int64("chat_id", chatID),
				zap.Error(err))
		}
	}

	if reply.Document != nil {
		_, err := b.SendDocument(ctx, &bot.SendDocumentParams{
			ChatID:   chatID,
			Document: &models.InputFileUpload{Filename: reply.Document.Name, Data: reply.Document.Data},
			Caption:  reply.Document.Caption,
		})
		if err != nil {
			h.logger.Error("Failed to send export document",
				zap.Int64("chat_id", chatID),
				zap.String("filename", reply.Document.Name),
				zap.Error(err))
			h.sendText(ctx, b, chatID, "Произошла ошибка при отправке файла. Попробуйте позже.")
		}
	}
}

func (h *Handlers) renderMessage(ctx context.Context, b *bot.Bot, chatID int64, msg dialog.Message) {
	markup := buildMarkup(msg)

	// Inline-меню с якорем сперва пытаемся обновить на месте;
	// при неудаче просто шлём новое сообщение
	if msg.Keyboard == dialog.KeyboardInline && msg.AnchorID != 0 {
		inline, _ := markup.(*models.InlineKeyboardMarkup)
		_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:      chatID,
			MessageID:   msg.AnchorID,
			Text:        msg.Text,
			ReplyMarkup: inline,
		})
		if err == nil {
			h.engine.RememberAnchor(chatID, msg.AnchorID)
			return
		}
		h.logger.Warn("Failed to edit group menu, sending a new one",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", msg.AnchorID),
			zap.Error(err))
	}

	sent, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        msg.Text,
		ReplyMarkup: markup,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		return
	}

	if msg.TrackAnchor && sent != nil {
		h.engine.RememberAnchor(chatID, sent.ID)
	}
}

func (h *Handlers) sendText(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

func buildMarkup(msg dialog.Message) models.ReplyMarkup {
	switch msg.Keyboard {
	case dialog.KeyboardInline:
		// TODO: callback data ограничен 64 байтами, длинные кириллические
		// названия групп в лимит не влезают — нужен переход на индексы
		return keyboard.NewBuilder().Grid(msg.Options, msg.Columns).Build()

	case dialog.KeyboardReply:
		rb := keyboard.NewReplyBuilder(msg.Columns)
		if msg.Sticky {
			rb.Sticky()
		}
		rb.Buttons(msg.Options...)
		for _, extra := range msg.Extra {
			rb.Row(extra)
		}
		if msg.Back {
			rb.Row(dialog.BtnBack)
		}
		return rb.Build()

	case dialog.KeyboardRemove:
		return keyboard.Remove()

	default:
		return nil
	}
}
