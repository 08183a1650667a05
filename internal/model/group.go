package model

import "time"

// Group представляет учебную группу внутри пары (институт, курс).
// Сочетание (институт, курс, название) уникально.
type Group struct {
	ID        int64     `json:"id"`
	Faculty   string    `json:"faculty"`
	Course    int       `json:"course"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
