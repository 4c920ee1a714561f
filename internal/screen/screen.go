package screen

import "strings"

// DefaultBin is the screen executable looked up on $PATH.
const DefaultBin = "screen"

// Session is one row of `screen -ls` output.
type Session struct {
	ID       string // "<pid>.<name>", accepted back by `screen -S`
	Name     string
	Attached bool
}

// PID returns the numeric prefix of the session ID.
func (s Session) PID() string {
	if idx := strings.IndexByte(s.ID, '.'); idx >= 0 {
		return s.ID[:idx]
	}
	return s.ID
}

// FilterSTY removes the STY env var so screen can be attached from inside screen.
func FilterSTY(env []string) []string {
	filtered := make([]string, 0, len(env))
	for _, e := range env {
		if !strings.HasPrefix(e, "STY=") {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
