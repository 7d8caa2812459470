package race

type EventType int

const (
	EventBounce EventType = iota
	EventFinish
	EventWaypoint
	EventPathComplete
)

func (t EventType) String() string {
	switch t {
	case EventBounce:
		return "bounce"
	case EventFinish:
		return "finish"
	case EventWaypoint:
		return "waypoint"
	case EventPathComplete:
		return "path_complete"
	}
	return "unknown"
}

// Bounce sources carried in Event.Data.
const (
	BounceBorder = iota
	BounceFinish
)

type Event struct {
	Type  EventType
	Car   string
	Tick  uint64
	X, Y  float64
	Angle float64
	Data  int // Bounce source or waypoint index.
}

type EventHandler func(Event)

type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

// SubscribeAll registers fn for every event type.
func (eb *EventBus) SubscribeAll(fn EventHandler) {
	for _, t := range []EventType{EventBounce, EventFinish, EventWaypoint, EventPathComplete} {
		eb.Subscribe(t, fn)
	}
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
