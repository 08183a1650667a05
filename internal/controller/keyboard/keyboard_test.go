package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Grid(t *testing.T) {
	markup := NewBuilder().
		Grid([]string{"А-1", "Б-2", "В-3", "Г-4"}, 3).
		Build()

	require.Len(t, markup.InlineKeyboard, 2)
	assert.Len(t, markup.InlineKeyboard[0], 3)
	assert.Len(t, markup.InlineKeyboard[1], 1)

	// Callback data совпадает с текстом кнопки
	assert.Equal(t, "А-1", markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, "А-1", markup.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "Г-4", markup.InlineKeyboard[1][0].Text)
}

func TestBuilder_GridZeroColumns(t *testing.T) {
	markup := NewBuilder().Grid([]string{"А", "Б"}, 0).Build()

	require.Len(t, markup.InlineKeyboard, 2)
	assert.Len(t, markup.InlineKeyboard[0], 1)
}

func TestBuilder_Row(t *testing.T) {
	markup := NewBuilder().
		Row(Button("Да", "yes"), Button("Нет", "no")).
		Row().
		Build()

	require.Len(t, markup.InlineKeyboard, 1)
	assert.Equal(t, "yes", markup.InlineKeyboard[0][0].CallbackData)
}

func TestReplyBuilder_Layout(t *testing.T) {
	markup := NewReplyBuilder(2).
		Buttons("Понедельник", "Вторник", "Среда").
		Row("⬅️ Назад").
		Build()

	require.Len(t, markup.Keyboard, 3)
	assert.Len(t, markup.Keyboard[0], 2)
	assert.Len(t, markup.Keyboard[1], 1)
	assert.Equal(t, "⬅️ Назад", markup.Keyboard[2][0].Text)

	assert.True(t, markup.ResizeKeyboard)
	assert.True(t, markup.OneTimeKeyboard)
}

func TestReplyBuilder_Sticky(t *testing.T) {
	markup := NewReplyBuilder(1).Sticky().Buttons("Готово").Build()
	assert.False(t, markup.OneTimeKeyboard)
}

func TestRemove(t *testing.T) {
	assert.True(t, Remove().RemoveKeyboard)
}
