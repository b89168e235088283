// Package opcxml extracts node descriptors from OPC-UA address-space XML
// exports (UANodeSet documents).
package opcxml

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrParse wraps unreadable or malformed address-space documents.
var ErrParse = errors.New("address space parse failed")

const (
	// sentinelNodeID identifies the organizer object whose DisplayName names
	// the group.
	sentinelNodeID = "ns=2;i=1"
	// namespacePrefix selects the vendor namespace this tool targets;
	// variables outside it are ignored.
	namespacePrefix = "ns=2;i="
)

// Node is one variable to collect: a display label and the numeric
// identifier from its ns=2 node id.
type Node struct {
	Name       string
	Identifier string
}

// Result holds the extraction output for one document. GroupName is empty
// when the document contains no sentinel organizer object.
type Result struct {
	GroupName string
	Nodes     []Node
}

// GroupNameOrBase returns the extracted group name, falling back to the base
// name of path with its extension stripped.
func (r Result) GroupNameOrBase(path string) string {
	if r.GroupName != "" {
		return r.GroupName
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ExtractFile extracts node descriptors from the XML document at path.
// report, when non-nil, receives human-readable progress notices.
func ExtractFile(path string, report func(string)) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	defer f.Close()
	return Extract(f, report)
}

// Extract parses one address-space document.
//
// Every UAObject with the sentinel node id contributes its DisplayName as
// the group name; on multiple matches the last one wins and each match is
// reported. Every UAVariable whose NodeId carries the ns=2 prefix yields one
// Node in document order: the identifier is the numeric suffix of the node
// id, the label is the BrowseName text unless a VariableMapping descendant
// overrides it (with embedded quote characters stripped). Duplicate ids are
// preserved.
func Extract(r io.Reader, report func(string)) (Result, error) {
	if report == nil {
		report = func(string) {}
	}

	root, err := decodeTree(r)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	var res Result
	root.eachDescendant("UAObject", func(obj *element) {
		if obj.attr("NodeId") != sentinelNodeID {
			return
		}
		if dn := obj.findDescendant("DisplayName"); dn != nil {
			res.GroupName = dn.text.String()
			report(fmt.Sprintf("group name for %s: %s", sentinelNodeID, res.GroupName))
		}
	})

	root.eachDescendant("UAVariable", func(v *element) {
		nodeID := v.attr("NodeId")
		if !strings.HasPrefix(nodeID, namespacePrefix) {
			return
		}
		// "ns=2;i=42" -> "42"
		identifier := strings.SplitN(nodeID, "=", 3)[2]

		name := ""
		if bn := v.findDescendant("BrowseName"); bn != nil {
			name = bn.text.String()
		}
		if vm := v.findDescendant("VariableMapping"); vm != nil {
			name = strings.ReplaceAll(vm.text.String(), `"`, "")
		}
		res.Nodes = append(res.Nodes, Node{Name: name, Identifier: identifier})
	})

	return res, nil
}
