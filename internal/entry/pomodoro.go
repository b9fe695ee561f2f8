package entry

// Mode is the Pomodoro interval type.
type Mode string

const (
	ModeWork  Mode = "work"
	ModeBreak Mode = "break"
)

// Opposite returns the mode a completed interval flips to.
func (m Mode) Opposite() Mode {
	if m == ModeBreak {
		return ModeWork
	}
	return ModeBreak
}

// Valid reports whether m is work or break.
func (m Mode) Valid() bool {
	return m == ModeWork || m == ModeBreak
}

// PomodoroState is the persisted Pomodoro triple. IsRunning is stored but
// never honored on restore.
type PomodoroState struct {
	Remaining int  `json:"remaining"`
	IsRunning bool `json:"isRunning"`
	Mode      Mode `json:"mode"`
}
