// Package telegraf renders OPC-UA input blocks and the surrounding Telegraf
// configuration document.
package telegraf

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/conn-castle/iotprov/internal/opcxml"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var tmpl = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// DefaultInterval is used when the caller supplies no interval.
const DefaultInterval = "1000ms"

// Endpoint describes the OPC-UA server every input block connects to.
type Endpoint struct {
	IP       string
	Username string
	Password string
}

// Group describes one input block: the group subsection plus its mode.
// Interval and Namespace are carried as opaque strings; the renderer never
// parses them.
type Group struct {
	Name      string
	Namespace string
	Interval  string
	Listener  bool
	Nodes     []opcxml.Node
}

type blockData struct {
	Name      string
	Namespace string
	Interval  string
	IP        string
	Username  string
	Password  string
	NodeList  string
}

// RenderBlock renders one [[inputs.opcua]] or [[inputs.opcua_listener]]
// block. It is a pure substitution over already-validated inputs.
func RenderBlock(g Group, ep Endpoint) string {
	interval := g.Interval
	if interval == "" {
		interval = DefaultInterval
	}

	name := "input_poll.tmpl"
	if g.Listener {
		name = "input_listener.tmpl"
	}

	var buf bytes.Buffer
	_ = tmpl.ExecuteTemplate(&buf, name, blockData{
		Name:      g.Name,
		Namespace: g.Namespace,
		Interval:  interval,
		IP:        ep.IP,
		Username:  ep.Username,
		Password:  ep.Password,
		NodeList:  renderNodes(g.Nodes),
	})
	return buf.String()
}

// renderNodes renders the node list shared by both block variants.
func renderNodes(nodes []opcxml.Node) string {
	entries := make([]string, len(nodes))
	for i, n := range nodes {
		entries[i] = fmt.Sprintf("{name=%q, identifier=%q}", n.Name, n.Identifier)
	}
	return strings.Join(entries, ",\n        ")
}

// RenderConfig wraps the fixed preamble around the rendered blocks and
// injects the InfluxDB API token.
func RenderConfig(token string, blocks []string) string {
	var buf bytes.Buffer
	_ = tmpl.ExecuteTemplate(&buf, "preamble.tmpl", struct{ Token string }{Token: token})
	buf.WriteString("\n")
	buf.WriteString(strings.Join(blocks, "\n"))
	buf.WriteString("\n")
	return buf.String()
}
