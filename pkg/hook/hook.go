package hook

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/arthur-debert/wrapperize/pkg/errors"
	"github.com/arthur-debert/wrapperize/pkg/escape"
	"github.com/arthur-debert/wrapperize/pkg/filesystem"
	"github.com/arthur-debert/wrapperize/pkg/logging"
	"github.com/arthur-debert/wrapperize/pkg/paths"
)

//go:embed hook.tmpl
var hookTemplate string

var tmpl = template.Must(template.New("hook").Parse(hookTemplate))

const (
	// DefaultDir is the pacman user hook directory.
	DefaultDir = "/etc/pacman.d/hooks"

	// DefaultProgramName is the program name embedded in artifact filenames.
	DefaultProgramName = "wrapperize"

	// DefaultRemoveCommand is the command the removal hook runs.
	DefaultRemoveCommand = "/usr/bin/rm"

	hookExt   = ".hook"
	scriptExt = ".sh"
)

// TriggerAction is the package transaction a hook reacts to.
type TriggerAction int

const (
	// InstallOrUpdate fires when the target is installed or upgraded.
	InstallOrUpdate TriggerAction = iota
	// Removal fires when the target is removed.
	Removal
)

// TriggerActions lists every action. Code that must touch all hooks of a
// binary iterates over it.
var TriggerActions = []TriggerAction{InstallOrUpdate, Removal}

// PathVerb returns the verb used in artifact filenames.
func (a TriggerAction) PathVerb() string {
	switch a {
	case InstallOrUpdate:
		return "install"
	case Removal:
		return "remove"
	default:
		return fmt.Sprintf("action%d", int(a))
	}
}

// Operations returns the pacman trigger operations, in order.
func (a TriggerAction) Operations() []string {
	switch a {
	case InstallOrUpdate:
		return []string{"Install", "Upgrade"}
	case Removal:
		return []string{"Remove"}
	default:
		return nil
	}
}

func (a TriggerAction) String() string {
	return a.PathVerb()
}

// Layout decides where hook artifacts live.
type Layout struct {
	// Dir is the hook directory.
	Dir string
	// ProgramName is embedded in every artifact filename.
	ProgramName string
}

// DefaultLayout returns the standard pacman layout.
func DefaultLayout() Layout {
	return Layout{Dir: DefaultDir, ProgramName: DefaultProgramName}
}

func (l Layout) stem(binaryFilename string, action TriggerAction) string {
	return filepath.Join(l.Dir, fmt.Sprintf("%s-%s-%s", binaryFilename, l.ProgramName, action.PathVerb()))
}

// Path returns the canonical hook file path for a binary and action.
func (l Layout) Path(binaryFilename string, action TriggerAction) string {
	return l.stem(binaryFilename, action) + hookExt
}

// InstallScriptPath returns where the installer script is saved: the
// install hook path with a .sh extension.
func (l Layout) InstallScriptPath(binaryFilename string) string {
	return l.stem(binaryFilename, InstallOrUpdate) + scriptExt
}

// RemovalTargets returns every file the removal hook deletes: both hooks,
// the installer script and the hidden original binary.
func (l Layout) RemovalTargets(gen *paths.Generated) []escape.Path {
	targets := make([]escape.Path, 0, len(TriggerActions)+2)
	for _, action := range TriggerActions {
		targets = append(targets, escape.NewPath(l.Path(gen.WrappedFilename, action)))
	}
	targets = append(targets,
		escape.NewPath(l.InstallScriptPath(gen.WrappedFilename)),
		gen.Unwrapped,
	)
	return targets
}

// RemovalCommand builds the single command deleting every target, each
// path individually quoted.
func RemovalCommand(removeCommand string, targets []escape.Path) string {
	var b strings.Builder
	b.WriteString(removeCommand)
	for _, target := range targets {
		b.WriteByte(' ')
		b.WriteString(target.Quoted())
	}
	return b.String()
}

// TrimPathRoot removes a single leading slash. pacman matches Target
// relative to its root.
func TrimPathRoot(path string) string {
	return strings.TrimPrefix(path, "/")
}

// execArg quotes path for an Exec line only when pacman's word splitting
// would otherwise change it.
func execArg(path string) string {
	if strings.ContainsAny(path, " \t'"+escape.DoubleQuoteSpecials) {
		return escape.NewPath(path).Quoted()
	}
	return path
}

type hookData struct {
	Operations  []string
	Target      string
	Description string
	Exec        string
}

// Generate renders the hook text for action. execTarget is written to the
// Exec line unchanged.
func Generate(action TriggerAction, gen *paths.Generated, description, execTarget string) (string, error) {
	var b strings.Builder
	err := tmpl.Execute(&b, hookData{
		Operations:  action.Operations(),
		Target:      TrimPathRoot(gen.Wrapped.Original),
		Description: description,
		Exec:        execTarget,
	})
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrRender, "failed to render %s hook", action)
	}
	return b.String(), nil
}

// GenerateInstallAndUpdate renders the hook that runs the installer script
// at installScriptPath whenever the wrapped binary is installed or upgraded.
func GenerateInstallAndUpdate(gen *paths.Generated, installScriptPath string) (string, error) {
	return Generate(InstallOrUpdate, gen,
		fmt.Sprintf("Wrapping %s...", gen.WrappedFilename),
		execArg(installScriptPath))
}

// GenerateRemoval renders the hook that deletes every wrapper artifact when
// the wrapped binary is removed.
func GenerateRemoval(gen *paths.Generated, layout Layout, removeCommand string) (string, error) {
	return Generate(Removal, gen,
		fmt.Sprintf("Removing traces of wrapper for %s...", gen.WrappedFilename),
		RemovalCommand(removeCommand, layout.RemovalTargets(gen)))
}

// Hook is a hook file to be generated for one action.
type Hook struct {
	Action TriggerAction
	Path   string
}

// New computes the hook for a binary and action.
func New(layout Layout, binaryFilename string, action TriggerAction) Hook {
	return Hook{Action: action, Path: layout.Path(binaryFilename, action)}
}

// Generator renders and writes hooks for one layout.
type Generator struct {
	Layout        Layout
	RemoveCommand string
}

// Content renders the text of h.
func (g Generator) Content(h Hook, gen *paths.Generated) (string, error) {
	switch h.Action {
	case InstallOrUpdate:
		return GenerateInstallAndUpdate(gen, g.Layout.InstallScriptPath(gen.WrappedFilename))
	case Removal:
		removeCommand := g.RemoveCommand
		if removeCommand == "" {
			removeCommand = DefaultRemoveCommand
		}
		return GenerateRemoval(gen, g.Layout, removeCommand)
	default:
		return "", errors.Newf(errors.ErrInternal, "unknown trigger action %d", int(h.Action))
	}
}

// GenerateAndWrite renders h and writes it to disk.
func (g Generator) GenerateAndWrite(fsys filesystem.FS, h Hook, gen *paths.Generated) error {
	content, err := g.Content(h, gen)
	if err != nil {
		return errors.Wrapf(err, errors.ErrRender, "failed to generate content for pacman %s hook", h.Action)
	}
	return g.Write(fsys, h, content)
}

// Write writes already rendered content for h.
func (g Generator) Write(fsys filesystem.FS, h Hook, content string) error {
	if err := fsys.WriteFile(h.Path, []byte(content), 0644); err != nil {
		return errors.IO(h.Path, err, fmt.Sprintf("failed to write pacman %s hook", h.Action))
	}

	logging.GetLogger("hook").Debug().
		Str("path", h.Path).
		Str("action", h.Action.String()).
		Msg("Wrote pacman hook")
	return nil
}
