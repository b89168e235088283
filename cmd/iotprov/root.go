package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/conn-castle/iotprov/internal/backup"
	"github.com/conn-castle/iotprov/internal/config"
	"github.com/conn-castle/iotprov/internal/messages"
	"github.com/conn-castle/iotprov/internal/provision"
	"github.com/conn-castle/iotprov/internal/remote"
)

// confFileName is the generated configuration file in the working folder.
const confFileName = "telegraf.conf"

// lockFileName guards concurrent runs against writing the same folder.
const lockFileName = ".iotprov.lock"

var getwdFunc = os.Getwd
var getenvFunc = os.Getenv
var nowFunc = time.Now
var sleepFunc = time.Sleep

// remoteSession is the slice of remote.Session the command layer needs;
// tests substitute a fake through dialSessionFunc.
type remoteSession interface {
	Run(cmd string) (string, error)
	Upload(localPath, remotePath string, mode os.FileMode) error
	Download(remotePath string) ([]byte, error)
	ListDir(remotePath string) ([]string, error)
	Close() error
}

var dialSessionFunc = func(t remote.Target) (remoteSession, error) {
	return remote.Dial(t)
}

// cliFlags carries the raw flag values before they are layered onto the
// resolved configuration.
type cliFlags struct {
	folder      string
	ip          string
	username    string
	password    string
	iotPassword string
	iotHost     string
	tokenFolder string
	configPath  string

	send          bool
	backupInflux  bool
	backupGrafana bool
}

func newRootCmd() *cobra.Command {
	var flags cliFlags

	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := resolveParams(cmd, flags)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), params)

			switch {
			case params.Send:
				return runSend(cmd.OutOrStdout(), params)
			case params.BackupInflux || params.BackupGrafana:
				return runBackup(cmd.OutOrStdout(), params)
			default:
				return runGenerate(cmd.OutOrStdout(), params)
			}
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.folder, "folder", "f", "", messages.FlagFolder)
	pf.StringVarP(&flags.ip, "ip", "i", "", messages.FlagIP)
	pf.StringVarP(&flags.username, "username", "u", "", messages.FlagUsername)
	pf.StringVarP(&flags.password, "password", "p", "", messages.FlagPassword)
	pf.StringVarP(&flags.iotPassword, "iot-password", "w", "", messages.FlagIOTPassword)
	pf.StringVarP(&flags.iotHost, "iot-host", "a", "", messages.FlagIOTHost)
	pf.StringVarP(&flags.tokenFolder, "token", "t", "", messages.FlagTokenFolder)
	pf.StringVar(&flags.configPath, "config", config.DefaultConfigPath, messages.FlagConfig)
	cmd.Flags().BoolVarP(&flags.send, "send", "s", false, messages.FlagSend)
	cmd.Flags().BoolVarP(&flags.backupInflux, "backup-influx", "b", false, messages.FlagBackupInflux)
	cmd.Flags().BoolVarP(&flags.backupGrafana, "backup-grafana", "g", false, messages.FlagBackupGrafana)

	cmd.AddCommand(newCheckCmd(&flags))

	return cmd
}

// resolveParams layers the configuration sources and overlays explicitly
// set CLI flags on top.
func resolveParams(cmd *cobra.Command, flags cliFlags) (config.Params, error) {
	workDir, err := getwdFunc()
	if err != nil {
		return config.Params{}, err
	}

	params, err := config.Resolve(flags.configPath, workDir, getenvFunc)
	if err != nil {
		return config.Params{}, err
	}

	set := cmd.Flags()
	overlays := []struct {
		name string
		src  string
		dst  *string
	}{
		{"folder", flags.folder, &params.Folder},
		{"ip", flags.ip, &params.IP},
		{"username", flags.username, &params.Username},
		{"password", flags.password, &params.Password},
		{"iot-password", flags.iotPassword, &params.IOTPassword},
		{"iot-host", flags.iotHost, &params.IOTHost},
		{"token", flags.tokenFolder, &params.TokenFolder},
	}
	for _, o := range overlays {
		if set.Changed(o.name) {
			*o.dst = o.src
		}
	}
	params.Send = flags.send
	params.BackupInflux = flags.backupInflux
	params.BackupGrafana = flags.backupGrafana

	return params, nil
}

// printSummary echoes the resolved configuration. Passwords and the token
// are never printed.
func printSummary(out io.Writer, p config.Params) {
	fmt.Fprintln(out, messages.SummaryHeader)
	fmt.Fprintln(out, messages.SummaryRule)
	fmt.Fprintf(out, messages.SummaryFolderFmt+"\n", p.Folder)
	fmt.Fprintf(out, messages.SummaryIPFmt+"\n", p.IP)
	fmt.Fprintf(out, messages.SummaryUsernameFmt+"\n", p.Username)
	fmt.Fprintf(out, messages.SummaryIOTHostFmt+"\n", p.IOTHost)
	fmt.Fprintf(out, messages.SummaryTokenFmt+"\n", p.TokenFolder)
	fmt.Fprintf(out, messages.SummarySendFmt+"\n", p.Send)
	fmt.Fprintf(out, messages.SummaryInfluxFmt+"\n", p.BackupInflux)
	fmt.Fprintf(out, messages.SummaryGrafanaFmt+"\n", p.BackupGrafana)
	fmt.Fprintln(out)
}

// dialGateway validates the gateway target and opens a session to it.
func dialGateway(p config.Params) (remoteSession, error) {
	if err := config.ValidateTarget(p.IOTHost); err != nil {
		return nil, err
	}
	return dialSessionFunc(remote.Target{
		Addr:     p.IOTHost,
		User:     config.RemoteUser,
		Password: p.IOTPassword,
	})
}

// runSend ships the existing telegraf.conf from the working folder to the
// gateway and restarts Telegraf there.
func runSend(out io.Writer, p config.Params) error {
	conf := filepath.Join(p.Folder, confFileName)
	if _, err := os.Stat(conf); err != nil {
		return fmt.Errorf(messages.SendMissingConfigFmt, p.Folder)
	}

	sess, err := dialGateway(p)
	if err != nil {
		return err
	}
	defer sess.Close()

	return provision.SendAndRestart(sess, conf, out, sleepFunc)
}

// runBackup pulls the requested backups from the gateway into the working
// folder.
func runBackup(out io.Writer, p config.Params) error {
	sess, err := dialGateway(p)
	if err != nil {
		return err
	}
	defer sess.Close()

	if p.BackupInflux {
		if err := backup.Influx(sess, nowFunc(), p.Folder, out); err != nil {
			return err
		}
	}
	if p.BackupGrafana {
		if err := backup.Grafana(sess, p.Folder, out); err != nil {
			return err
		}
	}
	return nil
}
