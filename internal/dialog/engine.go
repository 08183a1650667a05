package dialog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/vkotelnikov/timetable-bot/internal/model"
	"github.com/vkotelnikov/timetable-bot/internal/service"
	"github.com/vkotelnikov/timetable-bot/internal/timeslot"
)

const errGeneric = "❌ Произошла ошибка. Попробуйте позже."

// Engine пошаговый диалог сбора расписания. Держит сессии всех чатов,
// проверяет вход по алфавиту текущего шага, выполняет побочные эффекты
// и возвращает транспорту следующее приглашение. Невалидный вход не
// меняет шаг — возвращается повторное приглашение.
type Engine struct {
	sessions *Manager
	store    ScheduleStore
	exporter Exporter
	preview  Previewer
	logger   *zap.Logger
}

func NewEngine(store ScheduleStore, exporter Exporter, preview Previewer, logger *zap.Logger) *Engine {
	return &Engine{
		sessions: NewManager(),
		store:    store,
		exporter: exporter,
		preview:  preview,
		logger:   logger,
	}
}

// Start начинает диалог заново: выборы сбрасываются, первый шаг —
// выбор института. Повторный /start посреди диалога тоже сюда.
func (e *Engine) Start(ctx context.Context, chatID int64, firstName string) *Reply {
	sess := e.sessions.Get(chatID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.resetSelections()
	sess.Step = StepSelectFaculty

	e.logger.Info("Dialog started", zap.Int64("chat_id", chatID))

	greeting := "Привет! 👋"
	if firstName != "" {
		greeting = fmt.Sprintf("Привет, %s! 👋", firstName)
	}

	reply := &Reply{}
	reply.text(Message{
		Text: greeting + "\nЯ помогу тебе внести данные для расписания.\n\n" +
			"Выберите институт/факультет:",
		Keyboard: KeyboardReply,
		Options:  model.Faculties,
		Columns:  3,
	})
	return reply
}

// Cancel безусловно сбрасывает сессию из любого шага
func (e *Engine) Cancel(ctx context.Context, chatID int64) *Reply {
	sess := e.sessions.Get(chatID)
	sess.mu.Lock()
	e.sessions.Clear(chatID)
	sess.mu.Unlock()

	e.logger.Info("Dialog cancelled", zap.Int64("chat_id", chatID))

	reply := &Reply{}
	reply.text(Message{
		Text:     "Действие отменено. Чтобы начать заново, введите /start.",
		Keyboard: KeyboardRemove,
	})
	return reply
}

// Handle обрабатывает одно событие чата. Вне активного диалога события
// игнорируются (nil). События одного чата сериализуются мьютексом
// сессии, разные чаты независимы.
func (e *Engine) Handle(ctx context.Context, chatID int64, in Input) *Reply {
	sess, ok := e.sessions.Peek(chatID)
	if !ok {
		return nil
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.Step == StepNone {
		return nil
	}

	e.logger.Debug("Dialog input",
		zap.Int64("chat_id", chatID),
		zap.String("step", string(sess.Step)),
		zap.String("text", in.Text))

	switch sess.Step {
	case StepSelectFaculty:
		return e.handleSelectFaculty(sess, in.Text)
	case StepSelectCourse:
		return e.handleSelectCourse(ctx, sess, in.Text)
	case StepSelectGroup:
		return e.handleSelectGroup(ctx, sess, in)
	case StepAddGroup:
		return e.handleAddGroup(ctx, sess, in.Text)
	case StepSelectDay:
		return e.handleSelectDay(ctx, sess, in.Text)
	case StepEnterSchedule:
		return e.handleEnterSchedule(ctx, sess, in.Text)
	case StepPostSave:
		return e.handlePostSave(ctx, chatID, sess, in.Text)
	case StepExportDay:
		return e.handleExportDay(ctx, sess, in.Text)
	default:
		e.logger.Warn("Unknown dialog step",
			zap.Int64("chat_id", chatID),
			zap.String("step", string(sess.Step)))
		return nil
	}
}

// RememberAnchor сохраняет id отправленного inline-меню выбора группы.
// Вызывается транспортом после фактической отправки.
func (e *Engine) RememberAnchor(chatID int64, messageID int) {
	sess, ok := e.sessions.Peek(chatID)
	if !ok {
		return
	}
	sess.mu.Lock()
	sess.GroupMenuMessageID = messageID
	sess.mu.Unlock()
}

func (e *Engine) handleSelectFaculty(sess *Session, text string) *Reply {
	reply := &Reply{}

	if !model.IsFaculty(text) {
		reply.text(Message{Text: "Пожалуйста, выберите факультет из предложенных кнопок."})
		return reply
	}

	sess.Faculty = text
	sess.Step = StepSelectCourse

	reply.text(coursePrompt("Отлично! Теперь выберите курс:"))
	return reply
}

func (e *Engine) handleSelectCourse(ctx context.Context, sess *Session, text string) *Reply {
	if text == BtnBack {
		return e.back(ctx, sess)
	}

	reply := &Reply{}

	if !model.IsCourse(text) {
		reply.text(Message{Text: "Пожалуйста, выберите курс из предложенных кнопок."})
		return reply
	}

	course, _ := strconv.Atoi(text)
	sess.Course = course
	sess.Step = StepSelectGroup

	e.groupMenu(ctx, sess, reply)
	return reply
}

func (e *Engine) handleSelectGroup(ctx context.Context, sess *Session, in Input) *Reply {
	if in.Kind == KindOption {
		sess.Group = in.Text
		sess.Day = ""
		sess.Step = StepSelectDay

		reply := &Reply{DeleteMessageID: in.MessageID}
		reply.text(dayPrompt(fmt.Sprintf("Группа: %s. Выберите день недели:", sess.Group)))
		return reply
	}

	switch in.Text {
	case BtnBack:
		return e.back(ctx, sess)
	case BtnAddGroup:
		sess.Step = StepAddGroup
		reply := &Reply{}
		reply.text(Message{
			Text:     "Введите название новой группы:",
			Keyboard: KeyboardReply,
			Extra:    []string{BtnCancelAdd},
		})
		return reply
	default:
		reply := &Reply{}
		reply.text(Message{Text: "Используйте кнопки для выбора или добавления группы."})
		return reply
	}
}

func (e *Engine) handleAddGroup(ctx context.Context, sess *Session, text string) *Reply {
	reply := &Reply{}

	if text == BtnCancelAdd {
		sess.Step = StepSelectGroup
		reply.text(Message{Text: "Добавление группы отменено.", Keyboard: KeyboardRemove})
		e.groupMenu(ctx, sess, reply)
		return reply
	}

	name := strings.TrimSpace(text)
	if name == "" || utf8.RuneCountInString(name) > GroupNameMaxLength {
		reply.text(Message{
			Text: "Название группы не может быть пустым или слишком длинным. " +
				"Попробуйте еще раз или нажмите 'Отмена добавления'.",
		})
		return reply
	}

	err := e.store.AddGroup(ctx, sess.Faculty, sess.Course, name)
	switch {
	case err == nil:
		reply.text(Message{
			Text:     fmt.Sprintf("Группа '%s' успешно добавлена!", name),
			Keyboard: KeyboardRemove,
		})
	case errors.Is(err, service.ErrGroupExists):
		reply.text(Message{
			Text:     fmt.Sprintf("Группа '%s' уже существует для этого курса и факультета.", name),
			Keyboard: KeyboardRemove,
		})
	default:
		e.logger.Error("Failed to add group",
			zap.String("faculty", sess.Faculty),
			zap.Int("course", sess.Course),
			zap.String("name", name),
			zap.Error(err))
		reply.text(Message{Text: errGeneric})
		return reply
	}

	sess.Step = StepSelectGroup
	e.groupMenu(ctx, sess, reply)
	return reply
}

func (e *Engine) handleSelectDay(ctx context.Context, sess *Session, text string) *Reply {
	if text == BtnBack {
		return e.back(ctx, sess)
	}

	reply := &Reply{}

	if !model.IsDay(text) {
		reply.text(Message{Text: "Пожалуйста, выберите день недели из предложенных кнопок."})
		return reply
	}

	sess.Day = text
	sess.Step = StepEnterSchedule

	entries, err := e.store.DaySchedule(ctx, sess.dayKey())
	if err != nil {
		e.logger.Error("Failed to load day schedule",
			zap.String("group", sess.Group),
			zap.String("day", sess.Day),
			zap.Error(err))
		entries = nil
	}

	var prompt string
	if len(entries) > 0 {
		var sb strings.Builder
		fmt.Fprintf(&sb, "Текущее расписание для %s:\n", sess.Day)
		for _, entry := range entries {
			fmt.Fprintf(&sb, "%s - %s\n", timeslot.StartFromLabel(entry.TimeSlot), entry.Subject)
		}
		sb.WriteString("\nВведите новое расписание или 'нет' для удаления.")
		prompt = sb.String()
	} else {
		prompt = fmt.Sprintf("Расписание для %s отсутствует. Введите расписание или 'нет'.", sess.Day)
	}

	reply.text(Message{
		Text:     prompt,
		Keyboard: KeyboardReply,
		Back:     true,
	})
	return reply
}

func (e *Engine) handleEnterSchedule(ctx context.Context, sess *Session, text string) *Reply {
	if text == BtnBack {
		return e.back(ctx, sess)
	}

	reply := &Reply{}
	trimmed := strings.TrimSpace(text)

	if strings.EqualFold(trimmed, answerNo) {
		if err := e.store.ClearDay(ctx, sess.dayKey()); err != nil {
			e.logger.Error("Failed to clear day schedule",
				zap.String("group", sess.Group),
				zap.String("day", sess.Day),
				zap.Error(err))
			reply.text(Message{Text: errGeneric})
			return reply
		}
		reply.text(Message{Text: fmt.Sprintf("Расписание для %s удалено.", sess.Day)})
	} else {
		parsed := parseDaySchedule(trimmed)

		// Старое расписание дня стирается до вставки, даже если ни
		// одна строка не разобралась
		saved, _, err := e.store.ReplaceDay(ctx, sess.dayKey(), parsed.Items)
		if err != nil {
			e.logger.Error("Failed to replace day schedule",
				zap.String("group", sess.Group),
				zap.String("day", sess.Day),
				zap.Error(err))
			reply.text(Message{Text: "❌ Не удалось сохранить расписание. Попробуйте позже."})
			return reply
		}

		for _, warning := range parsed.Warnings {
			reply.text(Message{Text: warning})
		}
		reply.text(Message{Text: fmt.Sprintf("Расписание для %s сохранено.", sess.Day)})

		if saved > 0 {
			e.attachPreview(ctx, sess, reply)
		}
	}

	sess.Step = StepPostSave
	reply.text(postSaveMenu())
	return reply
}

func (e *Engine) handlePostSave(ctx context.Context, chatID int64, sess *Session, text string) *Reply {
	reply := &Reply{}

	switch text {
	case BtnAddMore:
		sess.Day = ""
		sess.Step = StepSelectDay
		reply.text(dayPrompt(fmt.Sprintf(
			"Добавляем еще запись для группы %s.\nВыберите день недели:", sess.Group)))

	case BtnChangeGroup:
		sess.Group = ""
		sess.Day = ""
		sess.Step = StepSelectGroup
		e.groupMenu(ctx, sess, reply)

	case BtnExportDay:
		sess.Step = StepExportDay
		reply.text(dayPrompt("Выберите день недели для экспорта расписания:"))

	case BtnFinish:
		e.sessions.Clear(chatID)
		e.logger.Info("Dialog finished", zap.Int64("chat_id", chatID))
		reply.text(Message{
			Text:     "Отлично! Ввод данных завершен.\nЧтобы начать заново, введите /start.",
			Keyboard: KeyboardRemove,
		})

	default:
		reply.text(Message{Text: "Используйте предложенные кнопки."})
	}

	return reply
}

func (e *Engine) handleExportDay(ctx context.Context, sess *Session, text string) *Reply {
	reply := &Reply{}

	if text == BtnBack {
		sess.Step = StepPostSave
		reply.text(postSaveMenu())
		return reply
	}

	if !model.IsDay(text) {
		reply.text(Message{Text: "Пожалуйста, выберите день из кнопок."})
		return reply
	}

	buf, filename, err := e.exporter.ExportDay(ctx, text)
	switch {
	case errors.Is(err, service.ErrExportEmpty):
		reply.text(Message{Text: fmt.Sprintf("Нет записей расписания для '%s'.", text)})
	case err != nil:
		e.logger.Error("Failed to export day schedule",
			zap.String("day", text),
			zap.Error(err))
		reply.text(Message{Text: "Произошла ошибка при создании Excel файла. Попробуйте позже."})
	default:
		reply.Document = &Document{
			Name:    filename,
			Caption: fmt.Sprintf("Вот расписание для '%s' в формате Excel.", text),
			Data:    buf,
		}
	}

	sess.Step = StepPostSave
	reply.text(postSaveMenu())
	return reply
}

// back откатывает последний сделанный выбор в порядке
// день -> группа -> курс -> институт; когда откатывать нечего,
// диалог начинается с выбора института заново.
func (e *Engine) back(ctx context.Context, sess *Session) *Reply {
	reply := &Reply{}

	switch {
	case sess.Day != "":
		sess.Day = ""
		sess.Step = StepSelectDay
		reply.text(dayPrompt("Выберите день недели:"))

	case sess.Group != "":
		sess.Group = ""
		sess.Step = StepSelectGroup
		e.groupMenu(ctx, sess, reply)

	case sess.Course != 0:
		sess.Course = 0
		sess.Step = StepSelectCourse
		reply.text(coursePrompt("Выберите курс:"))

	case sess.Faculty != "":
		sess.Faculty = ""
		sess.Step = StepSelectFaculty
		reply.text(facultyPrompt())

	default:
		sess.resetSelections()
		sess.Step = StepSelectFaculty
		reply.text(facultyPrompt())
	}

	return reply
}

// groupMenu показывает выбор группы: inline-меню с существующими
// группами (если есть) и reply-меню с добавлением и возвратом.
// Ранее показанное inline-меню обновляется на месте через якорь.
func (e *Engine) groupMenu(ctx context.Context, sess *Session, reply *Reply) {
	groups, err := e.store.ListGroups(ctx, sess.Faculty, sess.Course)
	if err != nil {
		e.logger.Error("Failed to list groups",
			zap.String("faculty", sess.Faculty),
			zap.Int("course", sess.Course),
			zap.Error(err))
		reply.text(Message{Text: errGeneric})
		return
	}

	if len(groups) == 0 {
		reply.text(Message{
			Text:     fmt.Sprintf("Для %s, курс %d пока нет добавленных групп.", sess.Faculty, sess.Course),
			Keyboard: KeyboardReply,
			Extra:    []string{BtnAddGroup},
			Back:     true,
		})
		return
	}

	anchor := sess.GroupMenuMessageID
	sess.GroupMenuMessageID = 0

	reply.text(Message{
		Text:        fmt.Sprintf("Выберите группу для %s, курс %d:", sess.Faculty, sess.Course),
		Keyboard:    KeyboardInline,
		Options:     groups,
		Columns:     3,
		TrackAnchor: true,
		AnchorID:    anchor,
	})
	reply.text(Message{
		Text:     "(Или добавьте новую / вернитесь назад)",
		Keyboard: KeyboardReply,
		Extra:    []string{BtnAddGroup},
		Back:     true,
	})
}

// attachPreview прикладывает карточку дня к ответу. Рендер — best-effort:
// любая ошибка логируется и не влияет на диалог.
func (e *Engine) attachPreview(ctx context.Context, sess *Session, reply *Reply) {
	if e.preview == nil || !e.preview.Enabled() {
		return
	}

	entries, err := e.store.DaySchedule(ctx, sess.dayKey())
	if err != nil || len(entries) == 0 {
		return
	}

	png, err := e.preview.RenderDay(sess.dayKey(), entries)
	if err != nil {
		e.logger.Warn("Failed to render day preview",
			zap.String("group", sess.Group),
			zap.String("day", sess.Day),
			zap.Error(err))
		return
	}

	reply.Photo = &Photo{
		Name:    "day.png",
		Caption: fmt.Sprintf("Расписание группы %s на %s", sess.Group, sess.Day),
		Data:    png,
	}
}

func (s *Session) dayKey() service.DayKey {
	return service.DayKey{
		Faculty: s.Faculty,
		Course:  s.Course,
		Group:   s.Group,
		Day:     s.Day,
	}
}

func facultyPrompt() Message {
	return Message{
		Text:     "Выберите институт/факультет:",
		Keyboard: KeyboardReply,
		Options:  model.Faculties,
		Columns:  3,
	}
}

func coursePrompt(text string) Message {
	return Message{
		Text:     text,
		Keyboard: KeyboardReply,
		Options:  model.Courses,
		Columns:  3,
		Back:     true,
	}
}

func dayPrompt(text string) Message {
	return Message{
		Text:     text,
		Keyboard: KeyboardReply,
		Options:  model.Days,
		Columns:  2,
		Back:     true,
	}
}

func postSaveMenu() Message {
	return Message{
		Text:     "Что делаем дальше?",
		Keyboard: KeyboardReply,
		Options:  []string{BtnAddMore, BtnChangeGroup, BtnExportDay, BtnFinish},
		Columns:  1,
		Sticky:   true,
	}
}
