package session

// Input is one frame of host input: four directional flags and two buttons.
type Input struct {
	Left    bool `json:"left"`
	Right   bool `json:"right"`
	Up      bool `json:"up"`
	Down    bool `json:"down"`
	Button1 bool `json:"button1"` // Confirm: place a disc at the cursor
	Button2 bool `json:"button2"`
}

func (in Input) Empty() bool {
	return !in.Left && !in.Right && !in.Up && !in.Down && !in.Button1 && !in.Button2
}

// delta returns the cursor displacement; opposite flags cancel out.
func (in Input) delta() (dCol, dRow int) {
	if in.Right {
		dCol++
	}
	if in.Left {
		dCol--
	}
	if in.Down {
		dRow++
	}
	if in.Up {
		dRow--
	}
	return dCol, dRow
}

// Action is a discrete action id of the Arcade Learning Environment.
type Action int

const (
	NOOP Action = iota
	FIRE
	UP
	RIGHT
	LEFT
	DOWN
	UPRIGHT
	UPLEFT
	DOWNRIGHT
	DOWNLEFT
)

var actionNames = [...]string{"NOOP", "FIRE", "UP", "RIGHT", "LEFT", "DOWN", "UPRIGHT", "UPLEFT", "DOWNRIGHT", "DOWNLEFT"}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "UNKNOWN"
	}
	return actionNames[a]
}

// Input converts the action to the host input it stands for.
func (a Action) Input() Input {
	switch a {
	case FIRE:
		return Input{Button1: true}
	case UP:
		return Input{Up: true}
	case RIGHT:
		return Input{Right: true}
	case LEFT:
		return Input{Left: true}
	case DOWN:
		return Input{Down: true}
	case UPRIGHT:
		return Input{Up: true, Right: true}
	case UPLEFT:
		return Input{Up: true, Left: true}
	case DOWNRIGHT:
		return Input{Down: true, Right: true}
	case DOWNLEFT:
		return Input{Down: true, Left: true}
	}
	return Input{}
}

// LegalActionSet lists the actions an agent may send, sorted by id. It does
// not depend on the position: placement legality is checked on confirm.
func LegalActionSet(diagonal bool) []Action {
	actions := []Action{NOOP, FIRE, UP, RIGHT, LEFT, DOWN}
	if diagonal {
		actions = append(actions, UPRIGHT, UPLEFT, DOWNRIGHT, DOWNLEFT)
	}
	return actions
}
