// Package wizard collects the interactive decisions a generation run needs:
// which files are listeners, per-file namespace and interval, the InfluxDB
// token, and the final send confirmation. Extraction and rendering stay
// non-interactive; everything a human decides is gathered here first.
package wizard

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/conn-castle/iotprov/internal/messages"
)

// ErrAborted reports that the user backed out of the run.
var ErrAborted = errors.New(messages.WizardAborted)

// TokenFileName is looked up in the token folder before prompting.
const TokenFileName = "token.txt"

// Choices holds everything the user decided for one generation run. Maps
// are keyed by XML file path.
type Choices struct {
	Listeners  map[string]bool
	Namespaces map[string]string
	Intervals  map[string]string
	Token      string
}

// Run walks the user through the generation decisions for files.
// report, when non-nil, receives human-readable notices (such as where the
// token was read from). Declining the file list returns ErrAborted.
func Run(ui UI, files []string, tokenFolder string, report func(string)) (*Choices, error) {
	if report == nil {
		report = func(string) {}
	}

	proceed := false
	if err := ui.Confirm(messages.WizardUseFilesPrompt, &proceed); err != nil {
		return nil, err
	}
	if !proceed {
		return nil, ErrAborted
	}

	if err := ui.Note(messages.WizardModeNoteTitle, messages.WizardModeNoteBody); err != nil {
		return nil, err
	}

	var listeners []string
	if err := ui.MultiSelect(messages.WizardListenerPrompt, files, &listeners); err != nil {
		return nil, err
	}

	choices := &Choices{
		Listeners:  make(map[string]bool, len(files)),
		Namespaces: make(map[string]string, len(files)),
		Intervals:  make(map[string]string, len(files)),
	}
	for _, f := range listeners {
		choices.Listeners[f] = true
	}

	for _, f := range files {
		var namespace string
		if err := ui.Input(fmt.Sprintf(messages.WizardNamespaceFmt, f), &namespace); err != nil {
			return nil, err
		}
		choices.Namespaces[f] = strings.TrimSpace(namespace)

		intervalPrompt := messages.WizardIntervalFmt
		if choices.Listeners[f] {
			intervalPrompt = messages.WizardSamplingIntervalFmt
		}
		var interval string
		if err := ui.Input(fmt.Sprintf(intervalPrompt, f), &interval); err != nil {
			return nil, err
		}
		choices.Intervals[f] = strings.TrimSpace(interval)
	}

	token, err := resolveToken(ui, tokenFolder, report)
	if err != nil {
		return nil, err
	}
	choices.Token = token

	return choices, nil
}

// ConfirmSend asks the final "send now" question.
func ConfirmSend(ui UI) (bool, error) {
	send := false
	if err := ui.Confirm(messages.WizardSendPrompt, &send); err != nil {
		return false, err
	}
	return send, nil
}

// resolveToken reads token.txt from the token folder when present,
// otherwise asks for the token interactively.
func resolveToken(ui UI, tokenFolder string, report func(string)) (string, error) {
	path := filepath.Join(tokenFolder, TokenFileName)
	data, err := os.ReadFile(path)
	if err == nil {
		report(fmt.Sprintf(messages.WizardTokenReadFmt, path))
		return strings.TrimSpace(string(data)), nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf(messages.WizardTokenReadErrorFmt, path, err)
	}

	var token string
	if err := ui.SecretInput(messages.WizardTokenPrompt, &token); err != nil {
		return "", err
	}
	return strings.TrimSpace(token), nil
}
