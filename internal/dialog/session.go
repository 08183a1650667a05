package dialog

import "sync"

// Session состояние диалога одного чата. Владелец — ровно один чат,
// события одного чата обрабатываются строго по одному (mu).
type Session struct {
	mu sync.Mutex

	Step    Step
	Faculty string
	Course  int
	Group   string
	Day     string

	// GroupMenuMessageID якорь последнего inline-меню выбора группы;
	// используется чтобы обновить меню на месте после добавления группы
	GroupMenuMessageID int
}

// resetSelections очищает все выборы, оставляя сессию живой
func (s *Session) resetSelections() {
	s.Faculty = ""
	s.Course = 0
	s.Group = ""
	s.Day = ""
	s.GroupMenuMessageID = 0
}

// Manager хранит сессии диалогов по идентификатору чата
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewManager создаёт новый менеджер сессий
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
	}
}

// Get возвращает сессию чата, создавая её при первом обращении
func (m *Manager) Get(chatID int64) *Session {
	m.mu.RLock()
	sess, ok := m.sessions[chatID]
	m.mu.RUnlock()
	if ok {
		return sess
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[chatID]; ok {
		return sess
	}
	sess = &Session{}
	m.sessions[chatID] = sess
	return sess
}

// Peek возвращает сессию чата без создания
func (m *Manager) Peek(chatID int64) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[chatID]
	return sess, ok
}

// Clear удаляет сессию чата
func (m *Manager) Clear(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, chatID)
}
