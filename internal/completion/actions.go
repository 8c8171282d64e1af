package completion

import (
	"errors"
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// Action names a candidate source, using the names of bash's `compgen -A`.
type Action string

const (
	// ActionCommand completes executables found on PATH (-c).
	ActionCommand Action = "command"
	// ActionFile completes file and directory names (-f).
	ActionFile Action = "file"
	// ActionDirectory completes directory names (-d).
	ActionDirectory Action = "directory"
	// ActionExport completes exported environment variable names (-e).
	ActionExport Action = "export"
	// ActionVariable completes all shell variable names (-v).
	ActionVariable Action = "variable"
	// ActionGroup completes group names (-g).
	ActionGroup Action = "group"
	// ActionHostname completes host names.
	ActionHostname Action = "hostname"
	// ActionService completes service names (-s).
	ActionService Action = "service"
	// ActionUser completes user names (-u).
	ActionUser Action = "user"
)

var (
	// ErrUnknownAction is returned for an action name that is not supported.
	ErrUnknownAction = errors.New("unknown action")
	// ErrNoAction is returned when a request selects no source at all.
	ErrNoAction = errors.New("no completion type specified")
)

var allActions = []Action{
	ActionCommand,
	ActionFile,
	ActionDirectory,
	ActionExport,
	ActionVariable,
	ActionGroup,
	ActionHostname,
	ActionService,
	ActionUser,
}

// shortActions maps single-letter compgen options to actions.
var shortActions = map[byte]Action{
	'c': ActionCommand,
	'f': ActionFile,
	'd': ActionDirectory,
	'e': ActionExport,
	'v': ActionVariable,
	'g': ActionGroup,
	's': ActionService,
	'u': ActionUser,
}

// ParseAction validates an action name.
func ParseAction(name string) (Action, error) {
	action := Action(name)
	if !lo.Contains(allActions, action) {
		return "", fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}
	return action, nil
}

// ActionNames returns the supported action names, sorted.
func ActionNames() []string {
	names := lo.Map(allActions, func(a Action, _ int) string {
		return string(a)
	})
	sort.Strings(names)
	return names
}
