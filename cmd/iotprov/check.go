package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/conn-castle/iotprov/internal/config"
	"github.com/conn-castle/iotprov/internal/messages"
	"github.com/conn-castle/iotprov/internal/opcxml"
	"github.com/conn-castle/iotprov/internal/telegraf"
	"github.com/conn-castle/iotprov/internal/wizard"
)

func newCheckCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:           messages.CheckUse,
		Short:         messages.CheckShort,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := resolveParams(cmd, *flags)
			if err != nil {
				return err
			}
			return runCheck(cmd.OutOrStdout(), params)
		},
	}
}

// checkReporter accumulates pass/fail lines for the preflight run.
type checkReporter struct {
	out    io.Writer
	failed bool
}

func (r *checkReporter) report(ok bool, msg string) {
	if ok {
		fmt.Fprintf(r.out, messages.CheckOKFmt+"\n", msg)
		return
	}
	r.failed = true
	fmt.Fprintf(r.out, messages.CheckFailFmt+"\n", msg)
}

// runCheck verifies everything a generation run needs without touching the
// network: the folder, the XML files, the token file and the address
// parameters. It returns an error when any check fails.
func runCheck(out io.Writer, p config.Params) error {
	r := &checkReporter{out: out}

	files, err := scanXML(p.Folder)
	if err != nil {
		r.report(false, err.Error())
	} else {
		r.report(true, fmt.Sprintf(messages.CheckFolderFmt, p.Folder))
		r.report(len(files) > 0, fmt.Sprintf(messages.CheckXMLCountFmt, len(files)))
		for _, f := range files {
			res, err := opcxml.ExtractFile(filepath.Join(p.Folder, f), nil)
			if err != nil {
				r.report(false, err.Error())
				continue
			}
			r.report(true, fmt.Sprintf(messages.CheckParseFmt, f, len(res.Nodes)))
		}
	}

	tokenPath := filepath.Join(p.TokenFolder, wizard.TokenFileName)
	if _, err := os.Stat(tokenPath); err == nil {
		r.report(true, fmt.Sprintf(messages.CheckTokenFmt, tokenPath))
	} else {
		r.report(true, fmt.Sprintf(messages.CheckNoTokenFmt, tokenPath))
	}

	if p.IP != "" {
		r.report(config.ValidateIP(p.IP) == nil, fmt.Sprintf(messages.CheckIPFmt, p.IP))
	}
	if p.IOTHost != "" {
		r.report(config.ValidateTarget(p.IOTHost) == nil, fmt.Sprintf(messages.CheckTargetFmt, p.IOTHost))
	}

	confPath := filepath.Join(p.Folder, confFileName)
	if data, err := os.ReadFile(confPath); err == nil {
		r.report(telegraf.CheckSyntax(data) == nil, fmt.Sprintf(messages.CheckConfFmt, confPath))
	}

	if r.failed {
		return errors.New(messages.CheckFailed)
	}
	return nil
}
