package bindgen

import (
	"bytes"
	_ "embed"
	"fmt"
	"go/format"
	"strconv"
	"text/template"
)

//go:embed source.go.tpl
var sourceTemplate string

var tmpl = template.Must(template.New("source").Funcs(template.FuncMap{
	"quote": strconv.Quote,
}).Parse(sourceTemplate))

type tmplData struct {
	Package  string
	Contract *Contract
}

// Render produces the gofmt-ed Go source of one contract binding.
func Render(pkg string, c *Contract) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, tmplData{Package: pkg, Contract: c}); err != nil {
		return nil, &SynthesisError{Contract: c.Name, Err: err}
	}
	code, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, &SynthesisError{Contract: c.Name, Err: fmt.Errorf("%v\n%s", err, buf.Bytes())}
	}
	return code, nil
}
