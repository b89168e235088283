// Package provision uploads a Telegraf configuration to a gateway, restarts
// the service, and verifies it came back up.
package provision

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/conn-castle/iotprov/internal/messages"
)

// Session is the slice of the remote session this package needs.
type Session interface {
	Upload(localPath, remotePath string, mode os.FileMode) error
	Run(cmd string) (string, error)
}

// RemoteConfPath is where Telegraf expects its configuration on the gateway.
const RemoteConfPath = "/etc/telegraf/telegraf.conf"

const (
	restartCmd = "sudo systemctl restart telegraf"
	statusCmd  = "systemctl is-active --quiet telegraf && echo 'active' || echo 'failed'"
	detailCmd  = "sudo systemctl status telegraf"
	logTailCmd = "tail -n 20 /var/log/telegraf/telegraf.log"
	errTailCmd = "tail -n 10 /var/log/telegraf/telegraf.log | grep 'E!'"

	settleDelay = 5 * time.Second
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
)

// SendAndRestart uploads localConf, restarts Telegraf, waits for the service
// to settle and checks that it is active. When it is not, a diagnostic
// cascade (detailed status, log tail, error-filtered log tail) is printed;
// an inactive service is not an error, only transport failures are.
//
// sleep is injectable for tests; nil means time.Sleep.
func SendAndRestart(s Session, localConf string, out io.Writer, sleep func(time.Duration)) error {
	if sleep == nil {
		sleep = time.Sleep
	}

	fmt.Fprintln(out, messages.ProvisionUploading)
	if err := s.Upload(localConf, RemoteConfPath, 0o644); err != nil {
		return err
	}

	fmt.Fprintln(out, messages.ProvisionRestarting)
	if _, err := s.Run(restartCmd); err != nil {
		return err
	}

	fmt.Fprintln(out, messages.ProvisionSettling)
	sleep(settleDelay)

	status, err := s.Run(statusCmd)
	if err != nil {
		return err
	}
	status = strings.TrimSpace(status)

	if status == "active" {
		okColor.Fprintf(out, messages.ProvisionActiveFmt+"\n", status)
		return nil
	}

	warnColor.Fprintf(out, messages.ProvisionNotActiveFmt+"\n", status)
	diagnose(s, out)
	return nil
}

// diagnose runs the diagnostic cascade best-effort: a failing step prints
// its error and the cascade continues.
func diagnose(s Session, out io.Writer) {
	fmt.Fprintln(out, messages.ProvisionDetailHeader)
	printStep(s, out, detailCmd, false)

	fmt.Fprintln(out, messages.ProvisionLogsHeader)
	printStep(s, out, logTailCmd, false)

	fmt.Fprintln(out, messages.ProvisionErrorLogsHeader)
	printStep(s, out, errTailCmd, true)
}

// printStep runs one diagnostic command and prints its output. When
// emptyNotice is set, empty output prints the no-error-logs notice instead.
func printStep(s Session, out io.Writer, cmd string, emptyNotice bool) {
	res, err := s.Run(cmd)
	if err != nil {
		warnColor.Fprintf(out, messages.ProvisionDiagFailedFmt+"\n", err)
		return
	}
	if emptyNotice && strings.TrimSpace(res) == "" {
		fmt.Fprintln(out, messages.ProvisionNoErrorLogs)
		return
	}
	fmt.Fprintln(out, res)
}
