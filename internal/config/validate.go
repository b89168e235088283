package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/conn-castle/iotprov/internal/messages"
)

// ErrValidation wraps malformed IP or host:port parameter failures.
// Callers can use errors.Is(err, ErrValidation) to distinguish them from
// loading errors.
var ErrValidation = errors.New("invalid parameters")

// ValidateIP checks that s looks like a dotted-quad IPv4 address: four
// period-separated segments, each parsing as an 8-bit integer. The check is
// purely syntactic; no reachability or canonical-form verification happens.
func ValidateIP(s string) error {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return invalidIP(s)
	}
	for _, part := range parts {
		if _, err := strconv.ParseUint(part, 10, 8); err != nil {
			return invalidIP(s)
		}
	}
	return nil
}

// ValidateTarget checks that s is host:port with exactly one colon and a
// positive 16-bit port.
func ValidateTarget(s string) error {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return invalidTarget(s)
	}
	port, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil || port == 0 {
		return invalidTarget(s)
	}
	return nil
}

func invalidIP(s string) error {
	return fmt.Errorf("%w: "+messages.ConfigInvalidIPFmt, ErrValidation, s)
}

func invalidTarget(s string) error {
	return fmt.Errorf("%w: "+messages.ConfigInvalidHostFmt, ErrValidation, s)
}
