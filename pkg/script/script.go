package script

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/arthur-debert/wrapperize/pkg/envvar"
	"github.com/arthur-debert/wrapperize/pkg/errors"
	"github.com/arthur-debert/wrapperize/pkg/escape"
	"mvdan.cc/sh/v3/syntax"
)

//go:embed wrapper.tmpl
var wrapperTemplate string

//go:embed installer.tmpl
var installerTemplate string

var (
	wrapperTmpl   = template.Must(template.New("wrapper").Parse(wrapperTemplate))
	installerTmpl = template.Must(template.New("installer").Parse(installerTemplate))
)

// DefaultInterpreter runs generated scripts.
var DefaultInterpreter = []string{"/usr/bin/env", "bash"}

const heredocDelimiter = "WRAPPERIZE_EOF"

// WrapperParams holds what a wrapper injects into every invocation.
type WrapperParams struct {
	Args    []string
	EnvVars []envvar.Variable
}

// Renderer renders wrapper and installer scripts.
type Renderer struct {
	// Interpreter is written to the shebang line, joined by spaces.
	Interpreter []string
	// Quoting is used for argument and variable values.
	Quoting envvar.Quoting
}

// NewRenderer returns a Renderer with the default interpreter and quoting.
func NewRenderer() Renderer {
	return Renderer{Interpreter: DefaultInterpreter, Quoting: envvar.QuotingANSIC}
}

func (r Renderer) shebang() string {
	if len(r.Interpreter) == 0 {
		return strings.Join(DefaultInterpreter, " ")
	}
	return strings.Join(r.Interpreter, " ")
}

func (r Renderer) quoting() envvar.Quoting {
	if r.Quoting == "" {
		return envvar.QuotingANSIC
	}
	return r.Quoting
}

type wrapperData struct {
	Shebang   string
	Exports   []string
	Unwrapped string
	Args      []string
}

// Wrapper renders the script that execs the hidden binary at unwrapped.
func (r Renderer) Wrapper(unwrapped escape.Path, params WrapperParams) (string, error) {
	q := r.quoting()
	data := wrapperData{
		Shebang:   r.shebang(),
		Unwrapped: unwrapped.Quoted(),
	}

	for _, v := range params.EnvVars {
		line, err := v.BashLine(q)
		if err != nil {
			return "", err
		}
		data.Exports = append(data.Exports, line)
	}

	for i, arg := range params.Args {
		word, err := q.Word(arg)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrRender, "failed to render argument %d", i+1)
		}
		data.Args = append(data.Args, word)
	}

	return render(wrapperTmpl, data)
}

type installerData struct {
	Shebang   string
	Original  string
	Hidden    string
	Wrapper   string
	Delimiter string
}

// Installer renders the script that moves original to hidden and writes
// wrapperScript in its place.
func (r Renderer) Installer(original, hidden escape.Path, wrapperScript string) (string, error) {
	if !strings.HasSuffix(wrapperScript, "\n") {
		wrapperScript += "\n"
	}

	return render(installerTmpl, installerData{
		Shebang:   r.shebang(),
		Original:  original.Quoted(),
		Hidden:    hidden.Quoted(),
		Wrapper:   wrapperScript,
		Delimiter: Delimiter(wrapperScript),
	})
}

// Delimiter returns a heredoc delimiter that does not occur as a line of body.
func Delimiter(body string) string {
	lines := make(map[string]struct{})
	for _, line := range strings.Split(body, "\n") {
		lines[line] = struct{}{}
	}

	delim := heredocDelimiter
	for i := 1; ; i++ {
		if _, taken := lines[delim]; !taken {
			return delim
		}
		delim = fmt.Sprintf("%s_%d", heredocDelimiter, i)
	}
}

func render(t *template.Template, data interface{}) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", errors.Wrapf(err, errors.ErrRender, "failed to render %s script", t.Name())
	}

	out := b.String()
	if err := Validate(out); err != nil {
		return "", errors.Wrapf(err, errors.ErrRender, "rendered %s script is not valid bash", t.Name())
	}
	return out, nil
}

// Validate parses src with the bash grammar. Bytes that are not valid
// UTF-8 are ordinary word characters to bash but rejected by the parser,
// so they are replaced before parsing.
func Validate(src string) error {
	src = strings.ToValidUTF8(src, "_")
	_, err := syntax.NewParser(syntax.Variant(syntax.LangBash)).Parse(strings.NewReader(src), "")
	return err
}
