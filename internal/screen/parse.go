package screen

import (
	"regexp"
	"strings"
)

// NoSessionsMarker is printed by `screen -ls` instead of a table when nothing runs.
const NoSessionsMarker = "There is no screen to be resumed"

var idNameRe = regexp.MustCompile(`(\d+)\.(.+)`)

// ParseList parses `screen -ls` output into sessions.
//
// Session rows are indented with a tab:
//
//	There are screens on:
//		1234.mysession	(01/02/2026 10:00:00 AM)	(Detached)
//	1 Socket in /run/screen/S-user.
//
// Header and footer lines are skipped, as are rows whose first column is not
// "<digits>.<name>". The name is everything after the first dot.
func ParseList(output string) []Session {
	if strings.Contains(output, NoSessionsMarker) {
		return nil
	}

	var sessions []Session
	for _, line := range strings.Split(output, "\n") {
		if !strings.HasPrefix(line, "\t") {
			continue
		}
		cols := strings.Split(line, "\t")[1:]

		m := idNameRe.FindStringSubmatch(cols[0])
		if m == nil {
			continue
		}

		// A row without a status column counts as detached.
		attached := false
		if len(cols) > 1 {
			attached = strings.Contains(cols[len(cols)-1], "Attached")
		}

		sessions = append(sessions, Session{
			ID:       strings.TrimSpace(cols[0]),
			Name:     strings.TrimSpace(m[2]),
			Attached: attached,
		})
	}
	return sessions
}
