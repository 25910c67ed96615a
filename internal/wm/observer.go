package wm

// EventType names a window state change.
type EventType int

const (
	EventOpened EventType = iota
	EventClosed
	EventMinimized
	EventRestored
	EventFocused
	EventMaximized
	EventUnmaximized
)

func (t EventType) String() string {
	switch t {
	case EventOpened:
		return "opened"
	case EventClosed:
		return "closed"
	case EventMinimized:
		return "minimized"
	case EventRestored:
		return "restored"
	case EventFocused:
		return "focused"
	case EventMaximized:
		return "maximized"
	case EventUnmaximized:
		return "unmaximized"
	default:
		return "unknown"
	}
}

// Event is delivered to observers after the state change it describes.
type Event struct {
	Type EventType
	ID   string
}

type observer struct {
	id int
	fn func(Event)
}

// Subscribe registers fn for every subsequent event and returns a function
// that removes it. Observers run synchronously on the caller's goroutine; a
// panicking observer is recovered and cannot undo the change.
func (m *Manager) Subscribe(fn func(Event)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	m.nextObserverID++
	id := m.nextObserverID
	m.observers = append(m.observers, observer{id: id, fn: fn})
	return func() {
		for i, o := range m.observers {
			if o.id == id {
				m.observers = append(m.observers[:i:i], m.observers[i+1:]...)
				return
			}
		}
	}
}

func (m *Manager) emit(t EventType, id string) {
	if len(m.observers) == 0 {
		return
	}
	ev := Event{Type: t, ID: id}
	// Observers may subscribe or unsubscribe while being notified.
	for _, o := range append([]observer(nil), m.observers...) {
		m.notify(o, ev)
	}
}

func (m *Manager) notify(o observer, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Warn("window observer panicked", "event", ev.Type, "id", ev.ID, "panic", r)
		}
	}()
	o.fn(ev)
}
