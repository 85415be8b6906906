package style

import (
	"strings"

	"github.com/arthur-debert/wrapperize/pkg/wrapper"
)

// RenderPlan shows every file a wrap would write and how the installer
// would run, without anything having been touched.
func RenderPlan(plan *wrapper.Plan) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Dry run: nothing was written"))
	b.WriteString("\n\n")

	section := func(title, path, content string) {
		b.WriteString(Bold(title))
		if path != "" {
			b.WriteString(" ")
			b.WriteString(Code(path))
		}
		b.WriteString("\n")
		b.WriteString(BoxStyle.Render(strings.TrimSuffix(content, "\n")))
		b.WriteString("\n\n")
	}

	section("wrapper", plan.Generated.Wrapped.Original, plan.Wrapper)

	switch plan.Installer.Kind {
	case wrapper.Saved:
		section("installer script", plan.Installer.Path, plan.Installer.Content)
	default:
		section("installer (piped to the interpreter, not saved)", "", plan.Installer.Content)
	}

	for _, ph := range plan.Hooks {
		section(ph.Hook.Action.String()+" hook", ph.Hook.Path, ph.Content)
	}

	b.WriteString(MutedStyle.Render("original binary would move to "))
	b.WriteString(Code(plan.Generated.Unwrapped.Original))
	b.WriteString("\n")
	return b.String()
}
