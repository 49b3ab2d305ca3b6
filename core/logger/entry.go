package logger

// LogEntry is a single event in the session log. Exactly one of the event
// fields is set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	Line        *Line        `json:"line,omitempty"`
	Termination *Termination `json:"termination,omitempty"`
	Error       *Error       `json:"error,omitempty"`
}

// LogType is implemented by every event that can be recorded.
type LogType interface {
	setOn(le *LogEntry)
}

// Line is an input line that was handed to the interpreter.
type Line struct {
	Text   string `json:"text"`
	Stages int    `json:"stages"`
}

func (l *Line) setOn(le *LogEntry) { le.Line = l }

// Termination is a reaped child process.
type Termination struct {
	Pid        int    `json:"pid"`
	ExitStatus int    `json:"exit_status"`
	Signal     int    `json:"signal,omitempty"`
	SignalName string `json:"signal_name,omitempty"`
}

func (t *Termination) setOn(le *LogEntry) { le.Termination = t }

// Error is a diagnostic shown to the user.
type Error struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (e *Error) setOn(le *LogEntry) { le.Error = e }
