package command

// TurnDirection is the controller's stated turn preference for a heading
// instruction. Either is resolved to the shortest turn when applied.
type TurnDirection int

const (
	TurnEither TurnDirection = iota
	TurnLeft
	TurnRight
)

func (d TurnDirection) String() string {
	switch d {
	case TurnLeft:
		return "left"
	case TurnRight:
		return "right"
	default:
		return "either"
	}
}

// Command is one parsed ATC instruction. The concrete types below form a
// closed set; consumers dispatch with a type switch so a new variant breaks
// every consumer until it is handled.
type Command interface {
	isCommand()
	Kind() string
}

// Heading assigns a target heading in degrees [0, 360).
type Heading struct {
	Degrees   float64
	Direction TurnDirection
}

// Altitude assigns a target altitude in feet.
type Altitude struct {
	Feet float64
}

// Speed assigns a target ground speed in knots.
type Speed struct {
	Knots float64
}

// Direct clears the aircraft direct to a named fix.
type Direct struct {
	Fix string
}

// Contact hands the aircraft off to another facility.
type Contact struct {
	Facility  string
	Frequency string
}

// Approach clears the aircraft for an approach to a runway.
type Approach struct {
	Type   string // ils, visual, rnav, localizer, vor, ndb
	Runway string
}

// Hold instructs the aircraft to hold at a fix.
type Hold struct {
	Fix              string
	InboundCourseDeg float64
	HasInboundCourse bool
	Turns            TurnDirection // right turns are standard when unstated
}

func (Heading) isCommand()  {}
func (Altitude) isCommand() {}
func (Speed) isCommand()    {}
func (Direct) isCommand()   {}
func (Contact) isCommand()  {}
func (Approach) isCommand() {}
func (Hold) isCommand()     {}

func (Heading) Kind() string  { return "heading" }
func (Altitude) Kind() string { return "altitude" }
func (Speed) Kind() string    { return "speed" }
func (Direct) Kind() string   { return "direct" }
func (Contact) Kind() string  { return "contact" }
func (Approach) Kind() string { return "approach" }
func (Hold) Kind() string     { return "hold" }
