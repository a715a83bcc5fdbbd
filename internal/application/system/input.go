package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputSink receives normalized input. The engine implements it.
type InputSink interface {
	KeyDown(code string)
	KeyUp(code string)
	SetAbsolutePlayerTarget(x, y float64)
	ClearAbsolutePlayerTarget()
	Fire()
}

var ebitenKeyCodes = map[ebiten.Key]string{
	ebiten.KeyArrowLeft:  KeyArrowLeft,
	ebiten.KeyArrowRight: KeyArrowRight,
	ebiten.KeyArrowUp:    KeyArrowUp,
	ebiten.KeyArrowDown:  KeyArrowDown,
	ebiten.KeyA:          KeyA,
	ebiten.KeyD:          KeyD,
	ebiten.KeyW:          KeyW,
	ebiten.KeyS:          KeyS,
	ebiten.KeySpace:      KeySpace,
}

// InputSystem translates ebiten device state into engine input
type InputSystem struct {
	lastMouseX, lastMouseY int
	mouseSeen              bool

	pressed  []ebiten.Key
	released []ebiten.Key
	touches  []ebiten.TouchID
}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// InputState holds one frame of input edges and pointer data
type InputState struct {
	Pressed  []string // key codes pressed this frame
	Released []string // key codes released this frame

	PointerMoved bool
	PointerX     int
	PointerY     int

	Touching bool
	TouchX   int
	TouchY   int

	Click   bool // left click or new touch
	Confirm bool // Enter pressed
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	var st InputState

	s.pressed = inpututil.AppendJustPressedKeys(s.pressed[:0])
	for _, k := range s.pressed {
		if code, ok := ebitenKeyCodes[k]; ok {
			st.Pressed = append(st.Pressed, code)
		}
		if k == ebiten.KeyEnter {
			st.Confirm = true
		}
	}
	s.released = inpututil.AppendJustReleasedKeys(s.released[:0])
	for _, k := range s.released {
		if code, ok := ebitenKeyCodes[k]; ok {
			st.Released = append(st.Released, code)
		}
	}

	mx, my := ebiten.CursorPosition()
	if s.mouseSeen && (mx != s.lastMouseX || my != s.lastMouseY) {
		st.PointerMoved = true
		st.PointerX, st.PointerY = mx, my
	}
	s.lastMouseX, s.lastMouseY, s.mouseSeen = mx, my, true

	s.touches = ebiten.AppendTouchIDs(s.touches[:0])
	if len(s.touches) > 0 {
		st.Touching = true
		st.TouchX, st.TouchY = ebiten.TouchPosition(s.touches[0])
	}

	st.Click = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		len(inpututil.AppendJustPressedTouchIDs(nil)) > 0

	return st
}

// Apply forwards the frame's input to sink. Touch wins over mouse movement.
func (st InputState) Apply(sink InputSink) {
	for _, code := range st.Released {
		sink.KeyUp(code)
	}
	for _, code := range st.Pressed {
		sink.KeyDown(code)
	}

	switch {
	case st.Touching:
		sink.SetAbsolutePlayerTarget(float64(st.TouchX), float64(st.TouchY))
	case st.PointerMoved:
		sink.SetAbsolutePlayerTarget(float64(st.PointerX), float64(st.PointerY))
	}

	if st.Click {
		sink.Fire()
	}
}
