package tsgen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/jptrs93/packetgen/internal/generate/templates"
	"github.com/jptrs93/packetgen/internal/ir"
)

type registryData struct {
	Imports  []string
	Messages []string
}

// EmitRegistry renders call.ts, which registers every packet with Net in the
// order given.
func EmitRegistry(messages []ir.MessageType, layout Layout, opts EmitOptions) (string, error) {
	opts = opts.withDefaults()
	tmpl, err := template.ParseFS(templates.FS, "call.ts.tmpl")
	if err != nil {
		return "", err
	}
	data := registryData{}
	set := importSet{}
	set.add("import {Net} from '" + opts.NetImport + "';")
	names := make([]string, 0, len(messages))
	for _, msg := range messages {
		names = append(names, msg.Name)
		if layout == LayoutSplit {
			set.add("import " + msg.Name + " from './" + ir.KebabName(msg.Name) + "';")
		}
	}
	if layout == LayoutSingle && len(names) > 0 {
		set.add("import {" + strings.Join(names, ", ") + "} from './" + singleFileStem + "';")
	}
	data.Imports = set.sorted()
	data.Messages = names

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render registry: %w", err)
	}
	return buf.String(), nil
}
