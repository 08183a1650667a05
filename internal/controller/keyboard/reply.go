package keyboard

import "github.com/go-telegram/bot/models"

// ReplyBuilder собирает reply-клавиатуру с раскладкой по колонкам
type ReplyBuilder struct {
	rows    [][]models.KeyboardButton
	columns int
	oneTime bool
}

// NewReplyBuilder создаёт builder reply-клавиатуры. По умолчанию
// клавиатура одноразовая (прячется после первого нажатия).
func NewReplyBuilder(columns int) *ReplyBuilder {
	if columns < 1 {
		columns = 1
	}
	return &ReplyBuilder{
		columns: columns,
		oneTime: true,
	}
}

// Sticky оставляет клавиатуру на экране после нажатия
func (b *ReplyBuilder) Sticky() *ReplyBuilder {
	b.oneTime = false
	return b
}

// Buttons раскладывает кнопки рядами по columns штук
func (b *ReplyBuilder) Buttons(texts ...string) *ReplyBuilder {
	var row []models.KeyboardButton
	for _, text := range texts {
		row = append(row, models.KeyboardButton{Text: text})
		if len(row) == b.columns {
			b.rows = append(b.rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		b.rows = append(b.rows, row)
	}
	return b
}

// Row добавляет кнопки одним рядом, без раскладки по колонкам
func (b *ReplyBuilder) Row(texts ...string) *ReplyBuilder {
	if len(texts) == 0 {
		return b
	}
	row := make([]models.KeyboardButton, 0, len(texts))
	for _, text := range texts {
		row = append(row, models.KeyboardButton{Text: text})
	}
	b.rows = append(b.rows, row)
	return b
}

// Build создаёт финальную клавиатуру
func (b *ReplyBuilder) Build() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard:        b.rows,
		ResizeKeyboard:  true,
		OneTimeKeyboard: b.oneTime,
	}
}

// Remove возвращает разметку, убирающую reply-клавиатуру
func Remove() *models.ReplyKeyboardRemove {
	return &models.ReplyKeyboardRemove{RemoveKeyboard: true}
}
