// Package gen writes Go source declaring an asset table, so that a binary can
// carry its assets with real modification times.
package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"io"
	"strconv"
	"text/template"

	"github.com/always-cache/assets"
)

const Header = "// Code generated by asset-pack. DO NOT EDIT."

var source = template.Must(template.New("assets").Parse(Header + `

package {{.Package}}

import "github.com/always-cache/assets"

var {{.Var}} = assets.MustTable(
{{- range .Files}}
	assets.File{
		Route:        {{.Route}},
		Content:      []byte({{.Content}}),
		ContentHash:  {{.ContentHash}},
		LastModified: {{.LastModified}},
		MimeType:     {{.MimeType}},
	},
{{- end}}
)
`))

type templateFile struct {
	Route        string
	Content      string
	ContentHash  string
	LastModified int64
	MimeType     string
}

type templateData struct {
	Package string
	Var     string
	Files   []templateFile
}

// Generate writes a gofmt'ed Go file to w in package pkg, declaring a variable
// varName of type *assets.Table holding files.
func Generate(w io.Writer, pkg, varName string, files []assets.File) error {
	if !token.IsIdentifier(pkg) {
		return fmt.Errorf("invalid package name %q", pkg)
	}
	if !token.IsIdentifier(varName) {
		return fmt.Errorf("invalid variable name %q", varName)
	}
	// fail here rather than when the generated package is initialized
	if _, err := assets.NewTable(files...); err != nil {
		return err
	}

	data := templateData{
		Package: pkg,
		Var:     varName,
		Files:   make([]templateFile, 0, len(files)),
	}
	for _, f := range files {
		hash := f.ContentHash
		if hash == "" {
			hash = assets.ContentHash(f.Content)
		}
		data.Files = append(data.Files, templateFile{
			Route:        strconv.Quote(f.Route),
			Content:      strconv.Quote(string(f.Content)),
			ContentHash:  strconv.Quote(hash),
			LastModified: f.LastModified,
			MimeType:     strconv.Quote(f.MimeType),
		})
	}

	var buf bytes.Buffer
	if err := source.Execute(&buf, data); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("formatting generated source: %w", err)
	}
	_, err = w.Write(formatted)
	return err
}
