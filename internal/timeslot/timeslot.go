package timeslot

import (
	"fmt"
	"strings"
)

// Границы каталога: первый слот начинается в 6:00,
// последний — в 20:00 (и заканчивается в 21:00).
const (
	FirstHour = 6
	LastHour  = 20
)

// Slot представляет канонический часовой слот расписания
type Slot struct {
	hour int
}

// FromHour нормализует час начала в канонический слот.
// Часы вне диапазона [6, 20] невалидны.
func FromHour(hour int) (Slot, bool) {
	if hour < FirstHour || hour > LastHour {
		return Slot{}, false
	}
	return Slot{hour: hour}, true
}

// Hour возвращает час начала слота
func (s Slot) Hour() int {
	return s.hour
}

// Label возвращает каноническую метку слота — в том виде,
// в котором она хранится в БД ("с 6:00 до 7:00")
func (s Slot) Label() string {
	return fmt.Sprintf("с %d:00 до %d:00", s.hour, s.hour+1)
}

// Start возвращает время начала слота ("6:00")
func (s Slot) Start() string {
	return fmt.Sprintf("%d:00", s.hour)
}

// All возвращает все слоты каталога в порядке следования
func All() []Slot {
	slots := make([]Slot, 0, LastHour-FirstHour+1)
	for h := FirstHour; h <= LastHour; h++ {
		slots = append(slots, Slot{hour: h})
	}
	return slots
}

// StartFromLabel извлекает время начала из канонической метки
// ("с 6:00 до 7:00" -> "6:00"). Используется при показе уже
// сохранённого расписания.
func StartFromLabel(label string) string {
	parts := strings.Fields(label)
	if len(parts) >= 2 {
		return parts[1]
	}
	return "?"
}
