package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/vkotelnikov/timetable-bot/internal/model"
	"github.com/vkotelnikov/timetable-bot/internal/service"
	"github.com/vkotelnikov/timetable-bot/internal/timeslot"
)

// Ручная проверка рендера карточки дня:
//
//	go run ./cmd/renderday /path/to/font.ttf day.png
func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: renderday <font.ttf> <out.png>")
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	preview := service.NewPreviewService(os.Args[1], logger)
	if !preview.Enabled() {
		fmt.Fprintln(os.Stderr, "preview is disabled, check the font path")
		os.Exit(1)
	}

	key := service.DayKey{
		Faculty: "ПИ",
		Course:  2,
		Group:   "ПИ-21",
		Day:     "Понедельник",
	}

	entries := make([]model.ScheduleEntry, 0, 4)
	for i, subject := range []string{"Математический анализ", "Физика", "Программирование", "Физкультура"} {
		slot, _ := timeslot.FromHour(9 + i)
		entries = append(entries, model.ScheduleEntry{
			Faculty:  key.Faculty,
			Course:   key.Course,
			Group:    key.Group,
			Day:      key.Day,
			TimeSlot: slot.Label(),
			Subject:  subject,
		})
	}

	png, err := preview.RenderDay(key, entries)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(os.Args[2], png, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("day preview written to %s (%d bytes)\n", os.Args[2], len(png))
}
