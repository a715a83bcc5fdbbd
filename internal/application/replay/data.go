package replay

import "github.com/younwookim/acestriker/internal/infrastructure/config"

// Version is the replay format version
const Version = "2.0"

// Input event kinds
const (
	InputKeyDown    = "down"
	InputKeyUp      = "up"
	InputPointer    = "ptr"
	InputPointerOff = "clr"
	InputFire       = "fire"
	InputReset      = "reset"
)

// InputEvent is one input call made between two ticks
type InputEvent struct {
	K string  `json:"k"`           // Kind
	C string  `json:"c,omitempty"` // Key code
	X float64 `json:"x,omitempty"` // Pointer X
	Y float64 `json:"y,omitempty"` // Pointer Y
}

// FrameInput records the input applied before a single tick
type FrameInput struct {
	F  int          `json:"f"`            // Frame number
	T  int64        `json:"t"`            // Tick time, ns since StartTime
	In []InputEvent `json:"in,omitempty"` // Input in call order
}

// Summary is the committed state at the end of a recording
type Summary struct {
	Tick   uint64 `json:"tick"`
	Score  int    `json:"score"`
	Lives  int    `json:"lives"`
	Status string `json:"status"`
}

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version   string             `json:"version"`
	Session   string             `json:"session"`
	Seed      int64              `json:"seed"`
	StartTime string             `json:"startTime"`
	Config    *config.GameConfig `json:"config,omitempty"`
	Frames    []FrameInput       `json:"frames"`
	Final     *Summary           `json:"final,omitempty"`
}
