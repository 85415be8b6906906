package style

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/wrapperize/pkg/errors"
	"github.com/arthur-debert/wrapperize/pkg/wrapper"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

// Format is an output format for status reports.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown format %q (expected %q or %q)", s, FormatText, FormatYAML)
	}
}

// RenderStatus renders st in format.
func RenderStatus(st *wrapper.Status, format Format) (string, error) {
	if format == FormatYAML {
		out, err := yaml.Marshal(st)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrInternal, "failed to encode status")
		}
		return string(out), nil
	}
	return renderStatusTable(st)
}

func renderStatusTable(st *wrapper.Status) (string, error) {
	state := WarningStyle.Render("not wrapped")
	if st.Wrapped {
		state = SuccessStyle.Render("wrapped")
	}
	header := fmt.Sprintf("%s %s", Code(st.Binary), state)
	if st.Wrapped && !st.Hooks {
		header += MutedStyle.Render(" (no pacman hooks)")
	}

	data := pterm.TableData{{"", "Artifact", "Path"}}
	for _, a := range st.Artifacts {
		indicator := MutedStyle.Render(MissingIndicator)
		if a.Present {
			indicator = SuccessStyle.Render(SuccessIndicator)
		}
		data = append(data, []string{indicator, string(a.Kind), a.Path})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render status table")
	}
	return header + "\n\n" + table + "\n", nil
}
