package selection

// Phase is a device-independent step of a gesture
type Phase int

const (
	PhasePress Phase = iota
	PhaseMove
	PhaseRelease
	PhaseAbort // the input system lost the gesture, e.g. pointer capture lost
)

// Locator maps a coordinate to the index of the item rendered there
type Locator interface {
	IndexAt(x, y int) (int, bool)
}

// Gestures is the part of a Scope driven by input devices
type Gestures interface {
	Begin(i int)
	Extend(i int)
	End()
	Dragging() bool
}

// dispatcher turns normalized phases into engine calls. Pointer and touch
// input both go through it.
type dispatcher struct {
	target  Gestures
	locator Locator
}

func (d dispatcher) dispatch(phase Phase, x, y int) {
	switch phase {
	case PhasePress:
		if idx, ok := d.locator.IndexAt(x, y); ok {
			d.target.Begin(idx)
		}
	case PhaseMove:
		if !d.target.Dragging() {
			return
		}
		if idx, ok := d.locator.IndexAt(x, y); ok {
			d.target.Extend(idx)
		}
	case PhaseRelease, PhaseAbort:
		d.target.End()
	}
}

// PointerButton identifies a mouse button
type PointerButton int

const (
	ButtonNone PointerButton = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

// PointerEvent is a raw mouse event
type PointerEvent struct {
	Phase  Phase
	Button PointerButton
	X, Y   int
}

// PointerInput feeds mouse events into a gesture target
type PointerInput struct {
	d dispatcher
}

// NewPointerInput creates a pointer adapter
func NewPointerInput(target Gestures, locator Locator) *PointerInput {
	return &PointerInput{d: dispatcher{target: target, locator: locator}}
}

// Handle processes one pointer event. Only the primary button starts a
// gesture.
func (p *PointerInput) Handle(ev PointerEvent) {
	if ev.Phase == PhasePress && ev.Button != ButtonPrimary {
		return
	}
	p.d.dispatch(ev.Phase, ev.X, ev.Y)
}

// TouchEvent is a raw touch event for a single touch point
type TouchEvent struct {
	Phase Phase
	ID    int // touch point identifier
	X, Y  int
}

// TouchInput feeds touch events into a gesture target. Only the first touch
// point of a gesture is followed; additional fingers are ignored.
type TouchInput struct {
	d       dispatcher
	tracked int
	active  bool
}

// NewTouchInput creates a touch adapter
func NewTouchInput(target Gestures, locator Locator) *TouchInput {
	return &TouchInput{d: dispatcher{target: target, locator: locator}}
}

// Handle processes one touch event
func (t *TouchInput) Handle(ev TouchEvent) {
	switch ev.Phase {
	case PhasePress:
		if t.active {
			return
		}
		t.active = true
		t.tracked = ev.ID
	case PhaseMove:
		if !t.active || ev.ID != t.tracked {
			return
		}
	case PhaseRelease, PhaseAbort:
		if !t.active || ev.ID != t.tracked {
			return
		}
		t.active = false
	}
	t.d.dispatch(ev.Phase, ev.X, ev.Y)
}
