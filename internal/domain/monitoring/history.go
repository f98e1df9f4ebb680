package monitoring

// DefaultHistorySize es la cantidad de eventos que se conservan por monitor.
const DefaultHistorySize = 10

// History es un buffer acotado: al superar la capacidad se descarta el más viejo.
// No es seguro para uso concurrente; Monitor lo protege con su mutex.
type History struct {
	size  int
	items []Event
}

func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{size: size, items: make([]Event, 0, size)}
}

func (h *History) Push(e Event) {
	if len(h.items) == h.size {
		copy(h.items, h.items[1:])
		h.items = h.items[:h.size-1]
	}
	h.items = append(h.items, e)
}

func (h *History) Len() int { return len(h.items) }

// Items devuelve una copia en orden de llegada (más viejo primero).
func (h *History) Items() []Event {
	out := make([]Event, len(h.items))
	copy(out, h.items)
	return out
}

func (h *History) Latest() (Event, bool) {
	if len(h.items) == 0 {
		return Event{}, false
	}
	return h.items[len(h.items)-1], true
}

func (h *History) Categories() []string {
	out := make([]string, 0, len(h.items))
	for _, e := range h.items {
		out = append(out, e.Category)
	}
	return out
}
