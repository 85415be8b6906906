package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/wrapperize/pkg/errors"
)

// Code renders s between backticks in the path style.
func Code(s string) string {
	return PathStyle.Render("`" + s + "`")
}

// Success renders a confirmation line.
func Success(format string, args ...interface{}) string {
	return SuccessStyle.Render(SuccessIndicator) + " " + fmt.Sprintf(format, args...)
}

// WrapperCreated is the confirmation printed after a wrap.
func WrapperCreated(path string) string {
	return Success("wrapper successfully created for %s", Code(path))
}

// WrapperRemoved is the confirmation printed after an unwrap.
func WrapperRemoved(path string) string {
	return Success("wrapper removed, original restored at %s", Code(path))
}

// Error renders err for the error stream, followed by the details of a coded
// error such as the path or process status.
func Error(err error) string {
	if err == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(ErrorStyle.Render(ErrorIndicator + " error:"))
	b.WriteString(" ")
	b.WriteString(err.Error())

	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("\n  ")
		b.WriteString(MutedStyle.Render(fmt.Sprintf("%s: %v", k, details[k])))
	}
	return b.String()
}
