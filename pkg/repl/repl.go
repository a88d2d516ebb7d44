// Package repl implements a small line-oriented command interpreter:
// register triggers with AddCommand, then hand the result to Run to
// serve input/output readers (stdin/stdout by default).
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
)

// ReplCommand handles one trigger's payload (the whole input line,
// trigger included) and returns the text to print, or an error.
type ReplCommand func(payload string, config *REPLConfig) (output string, err error)

const (
	// TriggerHelpMetacommand prints every registered command's help string.
	TriggerHelpMetacommand = ".help"

	// ErrorPrependStr is prefixed to an error before it's written to output.
	ErrorPrependStr = "ERROR: "
)

// ErrCommandNotFound is returned when a line's trigger matches no
// registered command.
var ErrCommandNotFound = errors.New("command not found")

// REPL holds the set of registered triggers and their help text.
type REPL struct {
	commands map[string]ReplCommand
	help     map[string]string
}

// REPLConfig carries per-session state down into a running command.
type REPLConfig struct {
	clientId uuid.UUID
}

// GetAddr returns the REPL session's client id.
func (replConfig *REPLConfig) GetAddr() uuid.UUID {
	return replConfig.clientId
}

// NewRepl constructs an empty REPL.
func NewRepl() *REPL {
	return &REPL{
		commands: make(map[string]ReplCommand),
		help:     make(map[string]string),
	}
}

// AddCommand registers action under trigger, along with its help text.
// A later call with the same trigger overwrites the earlier one. The
// reserved ".help" trigger is silently ignored.
func (r *REPL) AddCommand(trigger string, action ReplCommand, help string) {
	if trigger == TriggerHelpMetacommand {
		return
	}
	r.commands[trigger] = action
	r.help[trigger] = help
}

// HelpString renders every registered command's help text, one per line.
func (r *REPL) HelpString() string {
	var sb strings.Builder
	for trigger, help := range r.help {
		fmt.Fprintf(&sb, "%s: %s\n", trigger, help)
	}
	return sb.String()
}

// Run reads whitespace-separated lines from input (stdin if nil) until
// EOF, dispatching each line's first field as a trigger and writing
// results to output (stdout if nil). ".help" lists every command;
// an unrecognized trigger or a command error is reported inline and
// does not stop the loop.
func (r *REPL) Run(clientId uuid.UUID, prompt string, input io.Reader, output io.Writer) {
	if input == nil {
		input = os.Stdin
	}
	if output == nil {
		output = os.Stdout
	}

	scanner := bufio.NewScanner(input)
	config := &REPLConfig{clientId: clientId}
	fmt.Fprintln(output, "Welcome to the dinodb REPL! Please type '.help' to see the list of available commands.")
	io.WriteString(output, prompt)

	for scanner.Scan() {
		payload := scanner.Text()
		fields := strings.Fields(payload)
		if len(fields) == 0 {
			io.WriteString(output, prompt)
			continue
		}
		trigger := fields[0]

		switch {
		case trigger == TriggerHelpMetacommand:
			io.WriteString(output, r.HelpString())
		case r.commands[trigger] != nil:
			result, err := r.commands[trigger](payload, config)
			if err != nil {
				fmt.Fprintf(output, "%s%s\n", ErrorPrependStr, err)
			} else {
				if len(result) != 0 && !strings.HasSuffix(result, "\n") {
					result += "\n"
				}
				io.WriteString(output, result)
			}
		default:
			fmt.Fprintf(output, "%s%s\n", ErrorPrependStr, ErrCommandNotFound)
		}
		io.WriteString(output, prompt)
	}
	io.WriteString(output, "\n")
}
