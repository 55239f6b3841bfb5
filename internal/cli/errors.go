package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tengjizhang/trs/internal/fetch"
	"github.com/tengjizhang/trs/internal/parser"
	"github.com/tengjizhang/trs/internal/store"
)

const (
	exitInternal     = 1
	exitInvalidInput = 2
	exitNotFound     = 3
	exitNetwork      = 4
	exitParse        = 5
)

type errorCategory struct {
	label string
	code  int
}

func categorize(err error) errorCategory {
	switch {
	case errors.Is(err, store.ErrInvalidInput):
		return errorCategory{"invalid-input", exitInvalidInput}
	case errors.Is(err, store.ErrNotFound):
		return errorCategory{"not-found", exitNotFound}
	case errors.Is(err, fetch.ErrNetwork):
		return errorCategory{"network", exitNetwork}
	case parser.IsParseError(err):
		return errorCategory{"parse", exitParse}
	case errors.Is(err, store.ErrStorage):
		return errorCategory{"storage", exitInternal}
	}
	if isUsageError(err) {
		return errorCategory{"invalid-input", exitInvalidInput}
	}
	return errorCategory{"internal", exitInternal}
}

// isUsageError catches flag and argument errors raised by cobra itself.
func isUsageError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"invalid output format",
		"required flag",
		"unknown flag",
		"unknown shorthand flag",
		"unknown command",
		"invalid argument",
		"flag needs an argument",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func ErrorExitCode(err error) int {
	if err == nil {
		return 0
	}
	return categorize(err).code
}

func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error [%s]: %v", categorize(err).label, err)
}

func PrintError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, FormatError(err))
}
