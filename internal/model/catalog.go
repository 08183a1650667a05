package model

import "slices"

// Faculties фиксированный список институтов/факультетов
var Faculties = []string{"ИЭИС", "ИЦЭУС", "ПИ", "ИБХИ", "ИГУМ", "ИМО", "ИЮР", "ИПТ", "ПТИ"}

// Courses допустимые курсы (год обучения)
var Courses = []string{"1", "2", "3", "4", "5", "6"}

// Days дни недели, по которым ведётся расписание (без воскресенья)
var Days = []string{"Понедельник", "Вторник", "Среда", "Четверг", "Пятница", "Суббота"}

// IsFaculty проверяет что строка — известный институт
func IsFaculty(s string) bool {
	return slices.Contains(Faculties, s)
}

// IsCourse проверяет что строка — допустимый курс
func IsCourse(s string) bool {
	return slices.Contains(Courses, s)
}

// IsDay проверяет что строка — известный день недели
func IsDay(s string) bool {
	return slices.Contains(Days, s)
}
