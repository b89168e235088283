package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/conn-castle/iotprov/internal/messages"
	"github.com/conn-castle/iotprov/internal/wizard"
)

var executeFunc = execute

// Version, Commit, and BuildDate are overridden at build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	runMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

// execute runs the CLI command with the provided args and output writers.
func execute(args []string, stdout io.Writer, stderr io.Writer) error {
	cmd := newRootCmd()
	cmd.Version = versionString()
	cmd.SetVersionTemplate(messages.VersionTemplate)
	if len(args) > 1 {
		cmd.SetArgs(args[1:])
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.Execute()
}

// runMain executes the CLI and maps errors to exit codes. A user abort is
// reported without being treated as a failure.
func runMain(args []string, stdout io.Writer, stderr io.Writer, exit func(int)) {
	if err := executeFunc(args, stdout, stderr); err != nil {
		if errors.Is(err, wizard.ErrAborted) {
			_, _ = fmt.Fprintln(stderr, err)
			exit(0)
			return
		}
		_, _ = fmt.Fprintln(stderr, err)
		exit(1)
	}
}

// versionString formats Version with optional commit and build date metadata.
func versionString() string {
	if Commit == "unknown" && BuildDate == "unknown" {
		return Version
	}
	return fmt.Sprintf(messages.VersionFullFmt, Version, Commit, BuildDate)
}
