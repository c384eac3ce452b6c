package swipe

import (
	"math"

	"nextstep/internal/domain/application"
)

// DefaultThreshold is the displacement a gesture must exceed on its locked
// axis before release produces a decision.
const DefaultThreshold = 100.0

type State int

const (
	StateIdle State = iota
	StateTracking
	StateDeciding
	StateResolved
)

type Axis int

const (
	AxisNone Axis = iota
	AxisHorizontal
	AxisVertical
)

// Interpreter turns continuous pointer motion into a discrete decision.
// One instance tracks one visible card; its state is independent of any
// pending network submission for previously swiped cards. The same state
// machine serves touch and mouse input - the platform adapter only has to
// feed Begin/Move/Release with coordinates.
type Interpreter struct {
	threshold  float64
	upDecision application.Decision

	state  State
	axis   Axis
	startX float64
	startY float64
	dx     float64
	dy     float64
}

type InterpreterOption func(*Interpreter)

// WithThreshold overrides the decision distance, e.g. with a fraction of
// the viewport width.
func WithThreshold(t float64) InterpreterOption {
	return func(i *Interpreter) {
		if t > 0 {
			i.threshold = t
		}
	}
}

// WithUpDecision selects what an upward swipe means; Skip by default,
// surfaces with a save affordance pass DecisionSave.
func WithUpDecision(d application.Decision) InterpreterOption {
	return func(i *Interpreter) {
		if d == application.DecisionSkip || d == application.DecisionSave {
			i.upDecision = d
		}
	}
}

func NewInterpreter(opts ...InterpreterOption) *Interpreter {
	i := &Interpreter{
		threshold:  DefaultThreshold,
		upDecision: application.DecisionSkip,
		state:      StateIdle,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func (i *Interpreter) State() State { return i.state }
func (i *Interpreter) Axis() Axis   { return i.axis }

// Offset reports the clamped displacement for rendering the card.
func (i *Interpreter) Offset() (dx, dy float64) { return i.dx, i.dy }

// Begin starts tracking at the pointer-down position.
func (i *Interpreter) Begin(x, y float64) {
	if i.state == StateTracking {
		return
	}
	i.state = StateTracking
	i.axis = AxisNone
	i.startX = x
	i.startY = y
	i.dx = 0
	i.dy = 0
}

// Move updates the displacement. The first move where |dx| and |dy|
// differ locks the gesture to that axis for its remaining lifetime;
// motion on the other axis is clamped to zero from then on.
func (i *Interpreter) Move(x, y float64) {
	if i.state != StateTracking {
		return
	}

	dx := x - i.startX
	dy := y - i.startY

	if i.axis == AxisNone {
		absX := math.Abs(dx)
		absY := math.Abs(dy)
		switch {
		case absX > absY:
			i.axis = AxisHorizontal
		case absY > absX:
			i.axis = AxisVertical
		}
	}

	switch i.axis {
	case AxisHorizontal:
		i.dx = dx
		i.dy = 0
	case AxisVertical:
		i.dx = 0
		// Downward motion never contributes to a decision.
		if dy > 0 {
			dy = 0
		}
		i.dy = dy
	default:
		i.dx = 0
		i.dy = 0
	}
}

// Release ends the gesture. Past the threshold it yields a decision and
// the interpreter parks in StateResolved until Reset; below the threshold
// the card animates back and the interpreter returns to StateIdle with no
// decision produced.
func (i *Interpreter) Release() (application.Decision, bool) {
	if i.state != StateTracking {
		return 0, false
	}
	i.state = StateDeciding

	var decision application.Decision
	decided := false

	switch i.axis {
	case AxisHorizontal:
		if i.dx > i.threshold {
			decision = application.DecisionApply
			decided = true
		} else if i.dx < -i.threshold {
			decision = application.DecisionReject
			decided = true
		}
	case AxisVertical:
		if i.dy < -i.threshold {
			decision = i.upDecision
			decided = true
		}
	}

	if decided {
		i.state = StateResolved
	} else {
		i.reset()
	}
	return decision, decided
}

// Cancel discards the gesture with no decision, e.g. on navigation away
// mid-gesture.
func (i *Interpreter) Cancel() {
	i.reset()
}

// Reset readies the interpreter for the newly current card after a
// resolved gesture was handed to the submitter.
func (i *Interpreter) Reset() {
	i.reset()
}

func (i *Interpreter) reset() {
	i.state = StateIdle
	i.axis = AxisNone
	i.dx = 0
	i.dy = 0
}
