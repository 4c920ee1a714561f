package screen

import (
	"fmt"
	"strings"
)

// Commands builds the shell command lines run against the screen binary.
type Commands struct {
	Bin string
}

func (c Commands) bin() string {
	if c.Bin == "" {
		return DefaultBin
	}
	return c.Bin
}

// List lists sessions. `screen -ls` exits non-zero on most builds even when
// sessions exist, so the status is masked and the output is left to ParseList.
func (c Commands) List() string {
	return fmt.Sprintf("%s -ls || true", shellQuote(c.bin()))
}

// Create starts a detached session with the given name.
func (c Commands) Create(name string) string {
	return fmt.Sprintf("%s -S %s -d -m", shellQuote(c.bin()), shellQuote(name))
}

// Quit terminates a session.
func (c Commands) Quit(id string) string {
	return fmt.Sprintf("%s -S %s -X quit", shellQuote(c.bin()), shellQuote(id))
}

// Rename changes a session's name. The ID keeps its pid prefix.
func (c Commands) Rename(id, newName string) string {
	return fmt.Sprintf("%s -S %s -X sessionname %s", shellQuote(c.bin()), shellQuote(id), shellQuote(newName))
}

// QuitAll terminates every session listed by `screen -ls`, one quit per
// session. It stops at the first quit that fails, so sessions listed after
// that one keep running and the removal is partial.
func (c Commands) QuitAll() string {
	bin := shellQuote(c.bin())
	return fmt.Sprintf(`for s in $(%s -ls | awk '/\t/ {print $1}'); do %s -S "$s" -X quit || exit 1; done`, bin, bin)
}

// Stuff types text followed by a newline into the session's current window.
func (c Commands) Stuff(id, text string) string {
	return fmt.Sprintf("%s -S %s -X stuff %s", shellQuote(c.bin()), shellQuote(id), shellQuote(text+"\n"))
}

// Probe exits zero when the binary resolves in the shell. Source uses it to
// decide whether screen is installed.
func (c Commands) Probe() string {
	return "command -v " + shellQuote(c.bin())
}

// AttachArgs are the arguments that detach the session elsewhere and reattach it here.
func (c Commands) AttachArgs(id string) []string {
	return []string{"-d", "-r", id}
}

// shellQuote wraps a string in single quotes, escaping any single quotes inside.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\"'\"'") + "'"
}
