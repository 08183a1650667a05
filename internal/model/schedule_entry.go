package model

// ScheduleEntry одна запись расписания: предмет в часовом слоте
// конкретного дня для конкретной группы
type ScheduleEntry struct {
	ID       int64  `json:"id"`
	Faculty  string `json:"faculty"`
	Course   int    `json:"course"`
	Group    string `json:"group"`
	Day      string `json:"day"`
	TimeSlot string `json:"time_slot"`
	Subject  string `json:"subject"`
}

// EntryFilter набор необязательных фильтров для выборки записей.
// Нулевое значение поля означает "без фильтра по этому полю",
// фильтры объединяются по И.
type EntryFilter struct {
	Faculty string
	Course  int
	Group   string
	Day     string
}
