package dialog

// Step представляет текущий шаг диалога ввода расписания
type Step string

const (
	StepNone          Step = "" // Нет активного диалога
	StepSelectFaculty Step = "select_faculty"
	StepSelectCourse  Step = "select_course"
	StepSelectGroup   Step = "select_group"
	StepAddGroup      Step = "add_group"
	StepSelectDay     Step = "select_day"
	StepEnterSchedule Step = "enter_schedule"
	StepPostSave      Step = "post_save"
	StepExportDay     Step = "export_day"
)

// Подписи кнопок-команд reply-клавиатур
const (
	BtnBack        = "⬅️ Назад"
	BtnAddGroup    = "➕ Добавить группу"
	BtnCancelAdd   = "⬅️ Отмена добавления"
	BtnAddMore     = "➕ Добавить еще запись"
	BtnChangeGroup = "👥 Выбрать другую группу"
	BtnExportDay   = "📊 Вывести расписание дня"
	BtnFinish      = "✅ Завершить"
)

// Ответ "нет" в шаге ввода расписания удаляет расписание дня
const answerNo = "нет"

// GroupNameMaxLength максимальная длина названия группы в символах
const GroupNameMaxLength = 50
