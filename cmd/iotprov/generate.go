package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/conn-castle/iotprov/internal/config"
	"github.com/conn-castle/iotprov/internal/lockfile"
	"github.com/conn-castle/iotprov/internal/messages"
	"github.com/conn-castle/iotprov/internal/opcxml"
	"github.com/conn-castle/iotprov/internal/preview"
	"github.com/conn-castle/iotprov/internal/telegraf"
	"github.com/conn-castle/iotprov/internal/wizard"
)

var newUIFunc = func() wizard.UI { return wizard.NewHuhUI() }

// runGenerate is the default flow: scan the folder for address-space XML
// files, walk the user through the per-file decisions, render telegraf.conf
// and optionally send it to the gateway.
func runGenerate(out io.Writer, p config.Params) error {
	if err := config.ValidateIP(p.IP); err != nil {
		return err
	}

	files, err := scanXML(p.Folder)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf(messages.GenerateNoXMLFmt, p.Folder)
	}

	fmt.Fprintln(out, messages.GenerateFoundFilesHeader)
	for i, f := range files {
		fmt.Fprintf(out, messages.GenerateFileEntryFmt+"\n", i+1, f)
	}

	report := func(s string) { fmt.Fprintln(out, s) }

	ui := newUIFunc()
	choices, err := wizard.Run(ui, files, p.TokenFolder, report)
	if err != nil {
		return err
	}

	content, err := renderConfig(p, files, choices, report)
	if err != nil {
		return err
	}

	confPath := filepath.Join(p.Folder, confFileName)
	if current, err := os.ReadFile(confPath); err == nil {
		if diff, truncated := preview.Diff(confFileName, string(current), content); diff != "" {
			fmt.Fprintf(out, messages.GenerateDiffHeaderFmt+"\n", p.Folder)
			fmt.Fprintln(out, diff)
			if truncated {
				fmt.Fprintln(out, messages.GenerateDiffTruncated)
			}
		}
	}

	err = lockfile.WithLock(filepath.Join(p.Folder, lockFileName), func() error {
		return writeFileAtomic(confPath, []byte(content))
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, messages.GenerateWrittenFmt+"\n", confPath)

	if p.IOTHost == "" {
		fmt.Fprintln(out, messages.GenerateManualCopy)
		return nil
	}

	send, err := wizard.ConfirmSend(ui)
	if err != nil {
		return err
	}
	if !send {
		fmt.Fprintln(out, messages.GenerateManualCopy)
		return nil
	}
	return runSend(out, p)
}

// renderConfig extracts every selected file and renders the full Telegraf
// configuration, verifying the result is well-formed TOML.
func renderConfig(p config.Params, files []string, choices *wizard.Choices, report func(string)) (string, error) {
	ep := telegraf.Endpoint{
		IP:       p.IP,
		Username: p.Username,
		Password: p.Password,
	}

	blocks := make([]string, 0, len(files))
	for _, f := range files {
		res, err := opcxml.ExtractFile(filepath.Join(p.Folder, f), report)
		if err != nil {
			return "", err
		}
		name := res.GroupNameOrBase(f)
		report(fmt.Sprintf(messages.WizardGroupNameFmt, f, name))

		blocks = append(blocks, telegraf.RenderBlock(telegraf.Group{
			Name:      name,
			Namespace: choices.Namespaces[f],
			Interval:  normalizeInterval(choices.Intervals[f]),
			Listener:  choices.Listeners[f],
			Nodes:     res.Nodes,
		}, ep))
	}

	content := telegraf.RenderConfig(choices.Token, blocks)
	if err := telegraf.CheckSyntax([]byte(content)); err != nil {
		return "", err
	}
	return content, nil
}

// writeFileAtomic writes data next to path and renames it into place, so a
// failed run never leaves a half-written telegraf.conf behind.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// normalizeInterval turns a bare millisecond count from the prompt into a
// duration string. Values that already carry a unit pass through untouched.
func normalizeInterval(s string) string {
	if s == "" {
		return ""
	}
	if _, err := strconv.Atoi(s); err == nil {
		return s + "ms"
	}
	return s
}

// scanXML lists the .xml files in folder, by name, sorted.
func scanXML(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".xml") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
