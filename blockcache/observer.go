package blockcache

// Event is a cache lookup outcome reported to an Observer.
type Event int

const (
	// EventHit means a stored entry was returned without invoking the loader.
	EventHit Event = iota + 1
	// EventMiss means a new entry was stored and the loader invoked.
	EventMiss
	// EventTierHit means a miss was answered from the shared tier.
	EventTierHit
	// EventTierError means the shared tier failed to read or write a value.
	EventTierError
	// EventLoaderError means the loader settled with an error.
	EventLoaderError
)

func (e Event) String() string {
	switch e {
	case EventHit:
		return "hit"
	case EventMiss:
		return "miss"
	case EventTierHit:
		return "tier_hit"
	case EventTierError:
		return "tier_error"
	case EventLoaderError:
		return "loader_error"
	default:
		return "unknown"
	}
}

// EventData describes a single cache event.
type EventData struct {
	Event   Event
	Key     string
	Network string
	Block   string
	// Err is set for EventTierError and EventLoaderError.
	Err error
}

// Observer receives cache events. On is called synchronously from the
// goroutine producing the event and must not block.
type Observer interface {
	On(EventData)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(EventData)

func (f ObserverFunc) On(data EventData) {
	f(data)
}

type multiObserver []Observer

func (m multiObserver) On(data EventData) {
	for _, observer := range m {
		observer.On(data)
	}
}

// Observers fans events out to every non-nil observer.
func Observers(observers ...Observer) Observer {
	var m multiObserver
	for _, observer := range observers {
		if observer != nil {
			m = append(m, observer)
		}
	}
	return m
}
