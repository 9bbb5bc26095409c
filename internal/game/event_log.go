package game

// EventBufferSize bounds the ring buffer: a fixed-capacity circular
// buffer that overwrites its oldest entry on overflow, sized for a
// single match's expected event volume rather than a long-lived server.
const EventBufferSize = 1024

// maxEventsPerFrame caps how many events Step will record in a single
// frame. A wall-clock token-bucket limiter can't be used here since the
// deterministic core must never read the clock (§5), so the same
// "bound the producer" intent is expressed as a per-frame budget
// instead — still proof against a pathological script that logs every
// instruction, but reproducible.
const maxEventsPerFrame = 64

// EventLog is a bounded, single-threaded ring buffer of simulation
// events (§4.I design notes). It is owned by GameState and mutated
// only from inside Step — no goroutines, no locks, no wall-clock reads.
type EventLog struct {
	buffer    [EventBufferSize]Event
	writeHead uint64
	readHead  uint64

	framesEmitted uint16
	countThisFrame int

	droppedCount uint64
	totalCount   uint64
}

// NewEventLog creates an empty event log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Append records an event, dropping the oldest entry on overflow and
// enforcing the per-frame budget. It never blocks and never errors;
// callers that care about loss can inspect Dropped().
func (el *EventLog) Append(event Event) bool {
	if event.Frame != el.framesEmitted {
		el.framesEmitted = event.Frame
		el.countThisFrame = 0
	}
	if el.countThisFrame >= maxEventsPerFrame {
		el.droppedCount++
		return false
	}
	el.countThisFrame++

	head := el.writeHead
	tail := el.readHead
	if head-tail >= EventBufferSize {
		el.readHead++
		el.droppedCount++
	}
	idx := head % EventBufferSize
	el.buffer[idx] = event
	el.writeHead++
	el.totalCount++
	return true
}

// Len reports how many events are currently retained.
func (el *EventLog) Len() int {
	return int(el.writeHead - el.readHead)
}

// Dropped reports how many events were discarded due to the ring
// buffer or per-frame budget.
func (el *EventLog) Dropped() uint64 {
	return el.droppedCount
}

// Since returns every retained event with Frame >= frame, oldest
// first, for replay/debugging consumers.
func (el *EventLog) Since(frame uint16) []Event {
	var out []Event
	for i := el.readHead; i < el.writeHead; i++ {
		e := el.buffer[i%EventBufferSize]
		if e.Frame >= frame {
			out = append(out, e)
		}
	}
	return out
}

// All returns every retained event, oldest first.
func (el *EventLog) All() []Event {
	return el.Since(0)
}
