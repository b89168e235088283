package telegraf

import (
	"fmt"

	// toml v1 is used for syntax validation only; rendering goes through the
	// embedded templates so the emitted layout stays under our control.
	toml "github.com/pelletier/go-toml"

	"github.com/conn-castle/iotprov/internal/messages"
)

// CheckSyntax verifies that a rendered configuration is well-formed TOML.
func CheckSyntax(config []byte) error {
	if _, err := toml.LoadBytes(config); err != nil {
		return fmt.Errorf(messages.TelegrafSyntaxFmt, err)
	}
	return nil
}
