package backup

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	runs      []string
	runErr    error
	entries   []string
	listErr   error
	files     map[string][]byte
	downloads []string
}

func (f *fakeSession) Run(cmd string) (string, error) {
	f.runs = append(f.runs, cmd)
	return "", f.runErr
}

func (f *fakeSession) ListDir(remotePath string) ([]string, error) {
	return f.entries, f.listErr
}

func (f *fakeSession) Download(remotePath string) ([]byte, error) {
	f.downloads = append(f.downloads, remotePath)
	data, ok := f.files[remotePath]
	if !ok {
		return nil, errors.New("no such file")
	}
	return data, nil
}

var testDate = time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

func TestInfluxDownloadsEachEntry(t *testing.T) {
	s := &fakeSession{
		entries: []string{"meta.tar", "shard1.tar"},
		files: map[string][]byte{
			"/tmp/influx_backup_2026-08-25/meta.tar":   []byte("meta"),
			"/tmp/influx_backup_2026-08-25/shard1.tar": []byte("shard"),
		},
	}
	parent := t.TempDir()
	var out bytes.Buffer

	require.NoError(t, Influx(s, testDate, parent, &out))

	require.Len(t, s.runs, 1)
	assert.Equal(t, "influx backup -p /var/lib/influxdb2 /tmp/influx_backup_2026-08-25", s.runs[0])

	localDir := filepath.Join(parent, "influx_backup_2026-08-25")
	for name, want := range map[string]string{"meta.tar": "meta", "shard1.tar": "shard"} {
		data, err := os.ReadFile(filepath.Join(localDir, name))
		require.NoError(t, err)
		assert.Equal(t, want, string(data))
	}
	assert.Contains(t, out.String(), "Copied meta.tar (4 bytes)")
}

func TestInfluxBackupCommandFailureAborts(t *testing.T) {
	s := &fakeSession{runErr: errors.New("influx: not found")}
	var out bytes.Buffer

	err := Influx(s, testDate, t.TempDir(), &out)
	require.Error(t, err)
	assert.Empty(t, s.downloads)
}

func TestInfluxPartialDownloadKeepsEarlierFiles(t *testing.T) {
	s := &fakeSession{
		entries: []string{"meta.tar", "missing.tar"},
		files: map[string][]byte{
			"/tmp/influx_backup_2026-08-25/meta.tar": []byte("meta"),
		},
	}
	parent := t.TempDir()
	var out bytes.Buffer

	err := Influx(s, testDate, parent, &out)
	require.Error(t, err)

	// the first file stays on disk, no cleanup happens
	_, statErr := os.Stat(filepath.Join(parent, "influx_backup_2026-08-25", "meta.tar"))
	assert.NoError(t, statErr)
}

func TestGrafanaOverwrites(t *testing.T) {
	s := &fakeSession{files: map[string][]byte{"/etc/grafana/grafana.ini": []byte("[server]\n")}}
	dir := t.TempDir()
	localPath := filepath.Join(dir, "grafana_backup.ini")
	require.NoError(t, os.WriteFile(localPath, []byte("stale"), 0o644))
	var out bytes.Buffer

	require.NoError(t, Grafana(s, dir, &out))

	data, err := os.ReadFile(localPath)
	require.NoError(t, err)
	assert.Equal(t, "[server]\n", string(data))
	assert.Contains(t, out.String(), "Grafana configuration backed up")
}

func TestGrafanaDownloadFailure(t *testing.T) {
	s := &fakeSession{}
	var out bytes.Buffer
	require.Error(t, Grafana(s, t.TempDir(), &out))
}
