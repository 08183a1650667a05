package dialog

import (
	"bytes"
	"context"

	"github.com/vkotelnikov/timetable-bot/internal/model"
	"github.com/vkotelnikov/timetable-bot/internal/service"
)

// Kind вид входящего события от транспорта
type Kind int

const (
	// KindText обычное текстовое сообщение
	KindText Kind = iota
	// KindOption выбор одноразовой inline-кнопки
	KindOption
)

// Input одно входящее событие диалога
type Input struct {
	Kind Kind
	Text string
	// MessageID сообщение с inline-меню, на котором нажата кнопка
	// (заполняется только для KindOption)
	MessageID int
}

// KeyboardKind способ показа вариантов ответа
type KeyboardKind int

const (
	// KeyboardNone без клавиатуры
	KeyboardNone KeyboardKind = iota
	// KeyboardReply reply-меню с кнопками-подсказками
	KeyboardReply
	// KeyboardInline одноразовые inline-кнопки (убираются после выбора)
	KeyboardInline
	// KeyboardRemove убрать текущую reply-клавиатуру
	KeyboardRemove
)

// Message одно исходящее сообщение диалога
type Message struct {
	Text     string
	Keyboard KeyboardKind
	Options  []string
	Columns  int
	// Back добавить кнопку "Назад" отдельным рядом
	Back bool
	// Extra дополнительные кнопки, каждая отдельным рядом
	Extra []string
	// Sticky не прятать reply-клавиатуру после первого нажатия
	Sticky bool
	// TrackAnchor запомнить id отправленного сообщения как якорь
	// inline-меню (для последующего редактирования на месте)
	TrackAnchor bool
	// AnchorID сообщение, которое транспорт должен попытаться
	// отредактировать вместо отправки нового; при неудаче транспорт
	// просто шлёт новое сообщение
	AnchorID int
}

// Document выгружаемый в чат файл
type Document struct {
	Name    string
	Caption string
	Data    *bytes.Buffer
}

// Photo отправляемая в чат картинка
type Photo struct {
	Name    string
	Caption string
	Data    []byte
}

// Reply результат обработки одного события диалога
type Reply struct {
	Messages []Message
	Document *Document
	Photo    *Photo
	// DeleteMessageID сообщение inline-меню, которое надо убрать
	// после сделанного выбора (0 — нечего убирать)
	DeleteMessageID int
}

func (r *Reply) text(msg Message) {
	r.Messages = append(r.Messages, msg)
}

// ScheduleStore операции хранилища расписания, нужные диалогу
type ScheduleStore interface {
	AddGroup(ctx context.Context, faculty string, course int, name string) error
	ListGroups(ctx context.Context, faculty string, course int) ([]string, error)
	DaySchedule(ctx context.Context, key service.DayKey) ([]model.ScheduleEntry, error)
	ReplaceDay(ctx context.Context, key service.DayKey, items []service.DayItem) (saved, failed int, err error)
	ClearDay(ctx context.Context, key service.DayKey) error
}

// Exporter собирает расписание дня в выгружаемый файл
type Exporter interface {
	ExportDay(ctx context.Context, day string) (*bytes.Buffer, string, error)
}

// Previewer рисует карточку расписания дня
type Previewer interface {
	Enabled() bool
	RenderDay(key service.DayKey, entries []model.ScheduleEntry) ([]byte, error)
}
