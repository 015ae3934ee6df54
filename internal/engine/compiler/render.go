package compiler

import (
	"bytes"
	"text/template"

	"go.trai.ch/zerr"
)

const header = "# Generated by pipgen. DO NOT EDIT.\n"

const libraryTemplate = `py_library(
    name = {{quote .Name}},
    deps = [
{{- range .Deps}}
        {{quote .}},
{{- end}}
    ],
)
`

const aliasTemplate = `alias(
    name = {{quote .Name}},
{{- if .Actual}}
    actual = {{quote .Actual}},
{{- else}}
    actual = select({
{{- range .Arms}}
        {{quote .Condition}}: {{quote .Target}},
{{- end}}
    }),
{{- end}}
    visibility = [{{quote .Visibility}}],
)
`

const wheelTemplate = `    if not native.existing_rule({{quote .Name}}):
{{- if .Wheel}}
        local_wheel(
            name = {{quote .Name}},
            wheel = {{quote .Wheel}},
        )
{{- else}}
        remote_wheel(
            name = {{quote .Name}},
            url = {{quote .URL}},
            sha256 = {{quote .SHA256}},
        )
{{- end}}
`

const loadTemplate = `load({{quote .}}, "local_wheel", "remote_wheel")

def pip_install():
`

var templates = template.Must(
	template.New("pipgen").Funcs(template.FuncMap{"quote": quote}).Parse(
		`{{define "library"}}` + libraryTemplate + `{{end}}` +
			`{{define "alias"}}` + aliasTemplate + `{{end}}` +
			`{{define "wheel"}}` + wheelTemplate + `{{end}}` +
			`{{define "load"}}` + loadTemplate + `{{end}}`,
	),
)

type library struct {
	Name string
	Deps []string
}

type selectArm struct {
	Condition string
	Target    string
}

// alias renders either a plain alias (Actual set) or a select over Arms.
type alias struct {
	Name       string
	Actual     string
	Arms       []selectArm
	Visibility string
}

type wheel struct {
	Name   string
	URL    string
	SHA256 string
	Wheel  string
}

// renderBlocks executes one named template per value and separates the
// results with blank lines.
func renderBlocks(buf *bytes.Buffer, blocks []block) error {
	for i, b := range blocks {
		if i > 0 {
			buf.WriteString("\n")
		}
		if err := templates.ExecuteTemplate(buf, b.template, b.data); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to render template"), "template", b.template)
		}
	}
	return nil
}

type block struct {
	template string
	data     any
}
