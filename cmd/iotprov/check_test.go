package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/iotprov/internal/wizard"
)

func TestCheckAllGreen(t *testing.T) {
	dir := writeXMLFolder(t, map[string]string{"line_a.xml": addressSpaceDoc("Line A")})
	require.NoError(t, os.WriteFile(filepath.Join(dir, wizard.TokenFileName),
		[]byte("tok\n"), 0o644))

	stdout, _, err := runCLI(t, nil, "check",
		"-f", dir, "-t", dir, "-i", "192.168.0.10", "-a", "10.0.0.5:22")
	require.NoError(t, err)

	assert.Contains(t, stdout, "ok: 1 XML file(s) found")
	assert.Contains(t, stdout, "line_a.xml parses (2 nodes)")
	assert.Contains(t, stdout, "token file")
	assert.Contains(t, stdout, "ok: OPC IP 192.168.0.10")
	assert.Contains(t, stdout, "ok: IOT host 10.0.0.5:22")
	assert.NotContains(t, stdout, "fail:")
}

func TestCheckFailsOnMalformedXML(t *testing.T) {
	dir := writeXMLFolder(t, map[string]string{"broken.xml": "<UANodeSet><oops"})

	stdout, _, err := runCLI(t, nil, "check", "-f", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preflight checks failed")
	assert.Contains(t, stdout, "fail:")
}

func TestCheckFailsOnEmptyFolder(t *testing.T) {
	stdout, _, err := runCLI(t, nil, "check", "-f", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, stdout, "fail: 0 XML file(s) found")
}

func TestCheckMissingTokenIsInformational(t *testing.T) {
	dir := writeXMLFolder(t, map[string]string{"line_a.xml": addressSpaceDoc("Line A")})

	stdout, _, err := runCLI(t, nil, "check", "-f", dir, "-t", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "no token file")
	assert.Contains(t, stdout, "token will be prompted for")
}

func TestCheckFailsOnBadParameters(t *testing.T) {
	dir := writeXMLFolder(t, map[string]string{"line_a.xml": addressSpaceDoc("Line A")})

	stdout, _, err := runCLI(t, nil, "check", "-f", dir, "-i", "999.1.2.3", "-a", "nope")
	require.Error(t, err)
	assert.Contains(t, stdout, "fail: OPC IP 999.1.2.3")
	assert.Contains(t, stdout, "fail: IOT host nope")
}

func TestCheckValidatesExistingConfig(t *testing.T) {
	dir := writeXMLFolder(t, map[string]string{"line_a.xml": addressSpaceDoc("Line A")})
	require.NoError(t, os.WriteFile(filepath.Join(dir, confFileName),
		[]byte("not = valid = toml\n"), 0o644))

	stdout, _, err := runCLI(t, nil, "check", "-f", dir)
	require.Error(t, err)
	assert.Contains(t, stdout, "fail:")
	assert.Contains(t, stdout, "valid TOML")
}
