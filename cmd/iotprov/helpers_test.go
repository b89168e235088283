package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/conn-castle/iotprov/internal/remote"
	"github.com/conn-castle/iotprov/internal/wizard"
)

// runCLI executes the CLI with a clean environment and a temp working
// directory, returning captured stdout and stderr.
func runCLI(t *testing.T, env map[string]string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	origWd, origEnv := getwdFunc, getenvFunc
	t.Cleanup(func() {
		getwdFunc = origWd
		getenvFunc = origEnv
	})
	wd := t.TempDir()
	getwdFunc = func() (string, error) { return wd, nil }
	getenvFunc = func(key string) string { return env[key] }

	var stdout, stderr bytes.Buffer
	err := execute(append([]string{"iotprov"}, args...), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

// fakeSession records remote calls and serves canned responses.
type fakeSession struct {
	target  remote.Target
	cmds    []string
	uploads map[string]string
	outputs map[string]string
	dirs    map[string][]string
	files   map[string][]byte
	closed  bool
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		uploads: map[string]string{},
		outputs: map[string]string{},
		dirs:    map[string][]string{},
		files:   map[string][]byte{},
	}
}

func (f *fakeSession) Run(cmd string) (string, error) {
	f.cmds = append(f.cmds, cmd)
	return f.outputs[cmd], nil
}

func (f *fakeSession) Upload(localPath, remotePath string, mode os.FileMode) error {
	f.uploads[remotePath] = localPath
	return nil
}

func (f *fakeSession) Download(remotePath string) ([]byte, error) {
	data, ok := f.files[remotePath]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", remotePath)
	}
	return data, nil
}

func (f *fakeSession) ListDir(remotePath string) ([]string, error) {
	return f.dirs[remotePath], nil
}

func (f *fakeSession) Close() error {
	f.closed = true
	return nil
}

// stubDial routes gateway connections to the fake session.
func stubDial(t *testing.T, s *fakeSession) {
	t.Helper()
	orig := dialSessionFunc
	t.Cleanup(func() { dialSessionFunc = orig })
	dialSessionFunc = func(tg remote.Target) (remoteSession, error) {
		s.target = tg
		return s, nil
	}
}

// scriptedUI answers wizard prompts from canned values, keyed by prompt
// title substrings.
type scriptedUI struct {
	confirms map[string]bool
	inputs   map[string]string
	secrets  map[string]string
	selected []string
}

func (s *scriptedUI) lookup(m map[string]string, title string) string {
	for k, v := range m {
		if strings.Contains(title, k) {
			return v
		}
	}
	return ""
}

func (s *scriptedUI) MultiSelect(title string, options []string, selected *[]string) error {
	*selected = s.selected
	return nil
}

func (s *scriptedUI) Confirm(title string, value *bool) error {
	for k, v := range s.confirms {
		if strings.Contains(title, k) {
			*value = v
			return nil
		}
	}
	*value = false
	return nil
}

func (s *scriptedUI) Input(title string, value *string) error {
	*value = s.lookup(s.inputs, title)
	return nil
}

func (s *scriptedUI) SecretInput(title string, value *string) error {
	*value = s.lookup(s.secrets, title)
	return nil
}

func (s *scriptedUI) Note(title, body string) error { return nil }

// stubUI routes wizard construction to the scripted UI.
func stubUI(t *testing.T, ui wizard.UI) {
	t.Helper()
	orig := newUIFunc
	t.Cleanup(func() { newUIFunc = orig })
	newUIFunc = func() wizard.UI { return ui }
}

// addressSpaceDoc renders a minimal UANodeSet document with the given group
// name and two in-namespace variables.
func addressSpaceDoc(groupName string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<UANodeSet xmlns="http://opcfoundation.org/UA/2011/03/UANodeSet.xsd">
  <UAObject NodeId="ns=2;i=1" BrowseName="2:%s">
    <DisplayName>%s</DisplayName>
  </UAObject>
  <UAVariable NodeId="ns=2;i=10" DataType="Int32">
    <BrowseName>2:Temperature</BrowseName>
  </UAVariable>
  <UAVariable NodeId="ns=2;i=11" DataType="Int32">
    <BrowseName>2:Pressure</BrowseName>
  </UAVariable>
  <UAVariable NodeId="ns=3;i=12" DataType="Int32">
    <BrowseName>3:Ignored</BrowseName>
  </UAVariable>
</UANodeSet>`, groupName, groupName)
}

// writeXMLFolder creates a folder with one address-space file per group name,
// named after the map keys.
func writeXMLFolder(t *testing.T, docs map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range docs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}
