// Package backup pulls InfluxDB backups and the Grafana configuration from
// a gateway.
package backup

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/conn-castle/iotprov/internal/messages"
)

// Session is the slice of the remote session this package needs.
type Session interface {
	Run(cmd string) (string, error)
	ListDir(remotePath string) ([]string, error)
	Download(remotePath string) ([]byte, error)
}

const (
	remoteBackupDirFmt = "/tmp/influx_backup_%s"
	influxBackupCmdFmt = "influx backup -p /var/lib/influxdb2 %s"
	localBackupDirFmt  = "influx_backup_%s"

	grafanaConfPath  = "/etc/grafana/grafana.ini"
	grafanaLocalName = "grafana_backup.ini"
)

// Influx runs a backup on the gateway into a dated directory, then downloads
// every produced file into a matching directory under localParent. A failure
// mid-download aborts without cleaning up already-downloaded files.
func Influx(s Session, now time.Time, localParent string, out io.Writer) error {
	date := now.Format("2006-01-02")
	remoteDir := fmt.Sprintf(remoteBackupDirFmt, date)

	fmt.Fprintf(out, messages.BackupInfluxStartFmt+"\n", remoteDir)
	if _, err := s.Run(fmt.Sprintf(influxBackupCmdFmt, remoteDir)); err != nil {
		return err
	}

	localDir := filepath.Join(localParent, fmt.Sprintf(localBackupDirFmt, date))
	if err := os.MkdirAll(localDir, 0o755); err != nil {
		return err
	}

	names, err := s.ListDir(remoteDir)
	if err != nil {
		return err
	}
	for _, name := range names {
		data, err := s.Download(path.Join(remoteDir, name))
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(localDir, name), data, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(out, messages.BackupCopiedFmt+"\n", name, len(data))
	}

	fmt.Fprintf(out, messages.BackupInfluxDoneFmt+"\n", localDir)
	return nil
}

// Grafana downloads the gateway's Grafana configuration into localDir,
// overwriting any previous backup of the same name.
func Grafana(s Session, localDir string, out io.Writer) error {
	data, err := s.Download(grafanaConfPath)
	if err != nil {
		return err
	}
	localPath := filepath.Join(localDir, grafanaLocalName)
	if err := os.WriteFile(localPath, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(out, messages.BackupGrafanaDoneFmt+"\n", localPath)
	return nil
}
