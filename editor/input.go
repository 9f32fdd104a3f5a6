package editor

// Key identifies a key decoded by the host. Letter and digit keys use their
// lowercase character; named keys use the tokens below.
type Key string

const (
	KeySpace     Key = "space"
	KeyTab       Key = "tab"
	KeyEscape    Key = "escape"
	KeyBackspace Key = "backspace"
	KeyDelete    Key = "delete"

	KeyA Key = "a"
	KeyQ Key = "q"
	KeyW Key = "w"
	KeyE Key = "e"
	KeyG Key = "g"
	KeyR Key = "r"
	KeyS Key = "s"
	KeyP Key = "p"
	KeyX Key = "x"
	KeyY Key = "y"
	KeyZ Key = "z"
	Key1 Key = "1"
	Key2 Key = "2"
	Key5 Key = "5"
)

// Modifiers is the set of modifier keys held during a key event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
)

func (m Modifiers) Has(mod Modifiers) bool { return m&mod != 0 }

// InputState tracks held keys and the pointer between events.
type InputState struct {
	held map[Key]bool

	PointerX, PointerY float64
	PointerDown        bool
	hasPointer         bool
}

func NewInputState() *InputState {
	return &InputState{held: make(map[Key]bool)}
}

func (in *InputState) Press(k Key)             { in.held[k] = true }
func (in *InputState) Release(k Key)           { delete(in.held, k) }
func (in *InputState) IsDown(k Key) bool       { return in.held[k] }
func (in *InputState) Pointer() (x, y float64) { return in.PointerX, in.PointerY }

// Move records a new absolute pointer position and returns the delta from
// the previous one. The first move after startup yields a zero delta.
func (in *InputState) Move(x, y float64) (dx, dy float64) {
	if in.hasPointer {
		dx, dy = x-in.PointerX, y-in.PointerY
	}
	in.PointerX, in.PointerY = x, y
	in.hasPointer = true
	return dx, dy
}
