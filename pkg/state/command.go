package state

import (
	"strings"

	"golang.org/x/text/cases"
)

// Universal commands are understood in every location that reads input.
const (
	CmdInventory = "inventory"
	CmdExit      = "exit"
	CmdRestart   = "restart"
	CmdSave      = "save"
	CmdLoad      = "load"
	CmdDebug     = "debug"
)

// NormalizeCommand case-folds the input and collapses runs of whitespace so
// "  Go   NORTH " and "go north" are the same command. A cases.Caser holds
// state, so each call builds its own.
func NormalizeCommand(input string) string {
	return strings.Join(strings.Fields(cases.Fold().String(input)), " ")
}

// IsUniversal reports whether cmd is one of the commands every location
// accepts.
func IsUniversal(cmd string) bool {
	switch cmd {
	case CmdInventory, CmdExit, CmdRestart, CmdSave, CmdLoad, CmdDebug:
		return true
	}
	return false
}
