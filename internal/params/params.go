// Package params reads the launch parameters the host passes to a plugin process.
//
// The host starts the plugin with exactly four single-dash flag pairs:
//
//	plugin -port 28196 -pluginUUID 6DAB... -registerEvent registerPlugin -info '{"application":{...}}'
package params

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/luciancaetano/deckconn"
)

// Flag names as passed by the host.
const (
	FlagPort          = "-port"
	FlagPluginUUID    = "-pluginUUID"
	FlagRegisterEvent = "-registerEvent"
	FlagInfo          = "-info"
)

const expectedArgs = 8

var requiredFlags = []string{FlagPort, FlagPluginUUID, FlagRegisterEvent, FlagInfo}

var (
	// ErrWrongNumberOfArguments is returned when argv does not hold exactly four pairs.
	ErrWrongNumberOfArguments = errors.New("wrong number of arguments")
	// ErrWrongArguments is returned when argv is not a list of distinct flag/value pairs.
	ErrWrongArguments = errors.New("wrong arguments")
	// ErrUnexpectedParameter is returned for a flag outside the required set.
	ErrUnexpectedParameter = errors.New("unexpected parameter")
	// ErrMissingParameter is returned when a required flag is absent.
	ErrMissingParameter = errors.New("missing parameter")
	// ErrInvalidValue is returned when a flag value is malformed.
	ErrInvalidValue = errors.New("invalid parameter value")
)

// Parameters are the four values the connection is built from.
type Parameters struct {
	Port          int
	PluginUUID    string
	RegisterEvent string
	Info          string
}

// Parse reads Parameters from argv without the program name.
//
// Every error wraps deckconn.ErrInvalidParameters and one of the errors above.
func Parse(args []string) (Parameters, error) {
	if len(args) != expectedArgs {
		return Parameters{}, invalid(fmt.Errorf("%w: got %d, expected %d", ErrWrongNumberOfArguments, len(args), expectedArgs))
	}

	values := make(map[string]string, len(requiredFlags))
	for i := 0; i < len(args); i += 2 {
		if _, dup := values[args[i]]; dup {
			return Parameters{}, invalid(fmt.Errorf("%w: %s given twice", ErrWrongArguments, args[i]))
		}
		values[args[i]] = args[i+1]
	}

	for name := range values {
		if !isRequired(name) {
			return Parameters{}, invalid(fmt.Errorf("%w: %s", ErrUnexpectedParameter, name))
		}
	}
	for _, name := range requiredFlags {
		if _, ok := values[name]; !ok {
			return Parameters{}, invalid(fmt.Errorf("%w: %s", ErrMissingParameter, name))
		}
	}

	port, err := strconv.Atoi(values[FlagPort])
	if err != nil {
		return Parameters{}, invalid(fmt.Errorf("%w: %s %q", ErrInvalidValue, FlagPort, values[FlagPort]))
	}

	p := Parameters{
		Port:          port,
		PluginUUID:    values[FlagPluginUUID],
		RegisterEvent: values[FlagRegisterEvent],
		Info:          values[FlagInfo],
	}
	if err := p.Validate(); err != nil {
		return Parameters{}, err
	}
	return p, nil
}

// Validate checks that every field is present and well formed.
//
// Info must be a JSON object; anything else wraps deckconn.ErrInvalidInfo as well.
func (p Parameters) Validate() error {
	if p.Port < 1 || p.Port > 65535 {
		return invalid(fmt.Errorf("%w: %s %d out of range", ErrInvalidValue, FlagPort, p.Port))
	}
	if strings.TrimSpace(p.PluginUUID) == "" {
		return invalid(fmt.Errorf("%w: %s is empty", ErrInvalidValue, FlagPluginUUID))
	}
	if strings.TrimSpace(p.RegisterEvent) == "" {
		return invalid(fmt.Errorf("%w: %s is empty", ErrInvalidValue, FlagRegisterEvent))
	}

	var info map[string]json.RawMessage
	if err := json.Unmarshal([]byte(p.Info), &info); err != nil || info == nil {
		return fmt.Errorf("%w: %w: %s is not a JSON object", deckconn.ErrInvalidParameters, deckconn.ErrInvalidInfo, FlagInfo)
	}
	return nil
}

// Args renders the parameters back into the argv form the host uses.
func (p Parameters) Args() []string {
	return []string{
		FlagPort, strconv.Itoa(p.Port),
		FlagPluginUUID, p.PluginUUID,
		FlagRegisterEvent, p.RegisterEvent,
		FlagInfo, p.Info,
	}
}

func isRequired(name string) bool {
	for _, r := range requiredFlags {
		if r == name {
			return true
		}
	}
	return false
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", deckconn.ErrInvalidParameters, err)
}
