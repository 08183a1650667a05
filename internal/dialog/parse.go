package dialog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vkotelnikov/timetable-bot/internal/service"
	"github.com/vkotelnikov/timetable-bot/internal/timeslot"
)

// parsedDay результат разбора многострочного текста расписания
type parsedDay struct {
	Items    []service.DayItem
	Warnings []string
}

// parseDaySchedule разбирает текст построчно. Строка имеет вид
// "ЧЧ:ММ - Предмет": часть до первого дефиса — время, минуты на
// бакетирование не влияют. Невалидная строка пропускается с
// предупреждением и не прерывает разбор остальных.
func parseDaySchedule(text string) parsedDay {
	var result parsedDay

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, "-", 2)
		if len(parts) != 2 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Неверный формат строки: %s. Пропускаю.", line))
			continue
		}

		timeStr := strings.TrimSpace(parts[0])
		subject := strings.TrimSpace(parts[1])

		colon := strings.Index(timeStr, ":")
		if colon < 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Неверный формат времени: %s. Пропускаю.", timeStr))
			continue
		}

		hour, err := strconv.Atoi(timeStr[:colon])
		if err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Неверный формат времени: %s. Пропускаю.", timeStr))
			continue
		}

		slot, ok := timeslot.FromHour(hour)
		if !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Неверное время: %s. Пропускаю.", timeStr))
			continue
		}

		result.Items = append(result.Items, service.DayItem{
			Slot:    slot,
			Subject: subject,
		})
	}

	return result
}
