package service

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/fogleman/gg"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/vkotelnikov/timetable-bot/internal/model"
	"github.com/vkotelnikov/timetable-bot/internal/timeslot"
)

// ErrPreviewDisabled возвращается когда рендер выключен (нет шрифта)
var ErrPreviewDisabled = errors.New("day preview rendering is disabled")

// Размеры и отступы карточки дня
const (
	previewWidth   = 900
	previewPadding = 32.0
	previewTitleH  = 72.0
	previewRowH    = 48.0
	previewTimeW   = 130.0
)

// PreviewService рисует PNG-карточку расписания одной группы на день.
// Для кириллицы нужен внешний TTF/OTF шрифт: путь задаётся в конфиге,
// без него сервис работает как выключенный.
type PreviewService struct {
	titleFace font.Face
	rowFace   font.Face
	logger    *zap.Logger
}

func NewPreviewService(fontPath string, logger *zap.Logger) *PreviewService {
	s := &PreviewService{logger: logger}

	if fontPath == "" {
		logger.Info("Day preview disabled: PREVIEW_FONT_PATH not set")
		return s
	}

	data, err := os.ReadFile(fontPath)
	if err != nil {
		logger.Warn("Day preview disabled: failed to read font file",
			zap.String("path", fontPath), zap.Error(err))
		return s
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		logger.Warn("Day preview disabled: failed to parse font",
			zap.String("path", fontPath), zap.Error(err))
		return s
	}

	s.titleFace = newFace(parsed, 26, logger)
	s.rowFace = newFace(parsed, 20, logger)
	if s.titleFace == nil || s.rowFace == nil {
		s.titleFace, s.rowFace = nil, nil
		return s
	}

	logger.Info("Day preview enabled", zap.String("font", fontPath))
	return s
}

func newFace(fnt *opentype.Font, size float64, logger *zap.Logger) font.Face {
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		logger.Warn("Failed to create font face", zap.Float64("size", size), zap.Error(err))
		return nil
	}
	return face
}

// Enabled сообщает готов ли сервис рисовать карточки
func (s *PreviewService) Enabled() bool {
	return s.rowFace != nil
}

// RenderDay рисует карточку дня. Записи ожидаются уже
// отсортированными по слотам.
func (s *PreviewService) RenderDay(key DayKey, entries []model.ScheduleEntry) ([]byte, error) {
	if !s.Enabled() {
		return nil, ErrPreviewDisabled
	}

	height := int(previewTitleH + previewRowH*float64(len(entries)) + previewPadding)
	dc := gg.NewContext(previewWidth, height)

	// Фон
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Заголовок
	dc.SetFontFace(s.titleFace)
	dc.SetRGB(0.13, 0.13, 0.17)
	title := fmt.Sprintf("%s · курс %d · %s — %s", key.Faculty, key.Course, key.Group, key.Day)
	dc.DrawString(title, previewPadding, previewPadding+16)

	// Разделитель под заголовком
	dc.SetRGB(0.85, 0.85, 0.88)
	dc.SetLineWidth(2)
	dc.DrawLine(previewPadding, previewTitleH-12, previewWidth-previewPadding, previewTitleH-12)
	dc.Stroke()

	dc.SetFontFace(s.rowFace)
	for i, entry := range entries {
		y := previewTitleH + previewRowH*float64(i)

		// Полосатая заливка рядов
		if i%2 == 0 {
			dc.SetRGB(0.95, 0.96, 0.98)
			dc.DrawRectangle(previewPadding/2, y, previewWidth-previewPadding, previewRowH)
			dc.Fill()
		}

		baseline := y + previewRowH/2 + 7

		dc.SetRGB(0.35, 0.4, 0.55)
		dc.DrawString(timeslot.StartFromLabel(entry.TimeSlot), previewPadding, baseline)

		dc.SetRGB(0.13, 0.13, 0.17)
		dc.DrawString(entry.Subject, previewPadding+previewTimeW, baseline)
	}

	buf := new(bytes.Buffer)
	if err := dc.EncodePNG(buf); err != nil {
		return nil, fmt.Errorf("encode day preview: %w", err)
	}

	return buf.Bytes(), nil
}
