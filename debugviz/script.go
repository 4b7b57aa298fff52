package debugviz

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"text/template"

	"github.com/theoremus-urban-solutions/trailmerge/trailfile"
)

var scriptTemplate = template.Must(template.New("script").Funcs(template.FuncMap{
	"coord": func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) },
}).Parse(`// Generated by trailmerge. Each array holds one {lat, lng} array per segment.
{{range .}}
var {{.Var}} = [
{{- range .Segments}}
  [{{range $i, $p := .Points}}{{if $i}}, {{end}}{lat: {{coord $p.Latitude}}, lng: {{coord $p.Longitude}}}{{end}}],
{{- end}}
];
{{end}}`))

// WriteScript writes the JavaScript rendering of l to w.
func WriteScript(w io.Writer, l Layers) error {
	bw := bufio.NewWriter(w)
	if err := scriptTemplate.Execute(bw, l.ordered()); err != nil {
		return fmt.Errorf("render debug script: %w", err)
	}
	return bw.Flush()
}

// WriteScriptFile writes the JavaScript rendering of l to path.
func WriteScriptFile(path string, l Layers) error {
	var buf bytes.Buffer
	if err := WriteScript(&buf, l); err != nil {
		return err
	}
	return trailfile.WriteFileAtomic(path, buf.Bytes(), 0o644)
}
