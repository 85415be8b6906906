// Package envvar parses and renders the environment variables a wrapper
// exports before re-executing the wrapped binary.
package envvar

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/wrapperize/pkg/errors"
	"github.com/arthur-debert/wrapperize/pkg/escape"
)

// NamePolicy selects how variable names are checked.
type NamePolicy string

const (
	// NamePolicyStrict rejects names that are not valid shell identifiers.
	NamePolicyStrict NamePolicy = "strict"
	// NamePolicyRelaxed accepts any name and leaves validation to the shell:
	// an invalid name is quoted so it fails at export time instead of
	// corrupting the script.
	NamePolicyRelaxed NamePolicy = "relaxed"
)

// ParseNamePolicy converts a configuration string to a NamePolicy.
func ParseNamePolicy(s string) (NamePolicy, error) {
	switch p := NamePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case NamePolicyStrict, NamePolicyRelaxed:
		return p, nil
	case "":
		return NamePolicyStrict, nil
	default:
		return "", errors.Newf(errors.ErrConfigValid, "unknown variable name policy %q (expected %q or %q)", s, NamePolicyStrict, NamePolicyRelaxed)
	}
}

// Quoting selects how values are quoted in rendered export lines.
type Quoting string

const (
	// QuotingANSIC renders values as $'...' with every non-printable byte
	// escaped. This is the default.
	QuotingANSIC Quoting = "ansi-c"
	// QuotingDouble renders values as "..." with the double-quote specials
	// escaped. Control characters are written as-is.
	QuotingDouble Quoting = "double"
)

// ParseQuoting converts a configuration string to a Quoting.
func ParseQuoting(s string) (Quoting, error) {
	switch q := Quoting(strings.ToLower(strings.TrimSpace(s))); q {
	case QuotingANSIC, QuotingDouble:
		return q, nil
	case "":
		return QuotingANSIC, nil
	default:
		return "", errors.Newf(errors.ErrConfigValid, "unknown value quoting %q (expected %q or %q)", s, QuotingANSIC, QuotingDouble)
	}
}

// Word renders value as a single shell word using q.
// Values containing NUL bytes cannot be represented in a shell string.
func (q Quoting) Word(value string) (string, error) {
	if strings.IndexByte(value, 0) >= 0 {
		return "", errors.Newf(errors.ErrRender, "value %q contains a NUL byte", escape.ASCII(value))
	}
	if q == QuotingDouble {
		return escape.Double(value), nil
	}
	return escape.ANSIC(value), nil
}

// Variable is an environment variable parsed from NAME=value.
type Variable struct {
	Name  string
	Value string
}

// New creates a Variable without validating it.
func New(name, value string) Variable {
	return Variable{Name: name, Value: value}
}

// Parse splits text at the first '=' and checks the name against policy.
func Parse(text string, policy NamePolicy) (Variable, error) {
	name, value, ok := strings.Cut(text, "=")
	if !ok {
		return Variable{}, errors.Newf(errors.ErrInvalidInput, "environment variable `%s` is missing '=' separator", text)
	}

	if policy != NamePolicyRelaxed && !IsValidName(name) {
		return Variable{}, errors.Newf(errors.ErrInvalidVariableName, "invalid name for environment variable `%s`", name)
	}

	return Variable{Name: name, Value: value}, nil
}

// ParseAll parses every NAME=value string in texts.
func ParseAll(texts []string, policy NamePolicy) ([]Variable, error) {
	vars := make([]Variable, 0, len(texts))
	for _, text := range texts {
		v, err := Parse(text, policy)
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
	}
	return vars, nil
}

// IsValidName reports whether name is an identifier bash accepts in an
// assignment: ASCII letters, digits and underscores, not starting with a
// digit.
func IsValidName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

// BashLine renders the export statement for v. Names that bash accepts
// verbatim are written bare; anything else is quoted like the value so an
// invalid name makes export fail at run time.
func (v Variable) BashLine(q Quoting) (string, error) {
	value, err := q.Word(v.Value)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrRender, "failed to render value of `%s`", v.Name)
	}

	name := v.Name
	if !IsValidName(name) {
		name, err = q.Word(name)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrRender, "failed to render variable name")
		}
	}

	return fmt.Sprintf("export %s=%s\n", name, value), nil
}

// WriteBashLine writes the export statement for v to w.
func (v Variable) WriteBashLine(w io.Writer, q Quoting) error {
	line, err := v.BashLine(q)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, line)
	return err
}

// String returns the NAME=value form.
func (v Variable) String() string {
	return v.Name + "=" + v.Value
}
