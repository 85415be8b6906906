package testutil

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"testing"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ParseBash parses src with the bash grammar and fails the test on error.
func ParseBash(t *testing.T, src string) *syntax.File {
	t.Helper()

	file, err := syntax.NewParser(syntax.Variant(syntax.LangBash)).Parse(strings.NewReader(src), "")
	if err != nil {
		t.Fatalf("Failed to parse shell source: %v\n%s", err, src)
	}
	return file
}

// RunShell interprets src with an in-process bash interpreter and returns
// everything written to stdout. The environment starts empty so results do
// not depend on the host.
func RunShell(t *testing.T, src string) string {
	t.Helper()

	file := ParseBash(t, src)

	var stdout, stderr bytes.Buffer
	runner, err := interp.New(
		interp.Env(expand.ListEnviron()),
		interp.StdIO(nil, &stdout, &stderr),
	)
	if err != nil {
		t.Fatalf("Failed to create shell interpreter: %v", err)
	}

	if err := runner.Run(context.Background(), file); err != nil {
		t.Fatalf("Shell source failed: %v\nstderr: %s\n%s", err, stderr.String(), src)
	}
	return stdout.String()
}

// ShellWord evaluates a single shell word and returns the resulting bytes.
func ShellWord(t *testing.T, word string) string {
	t.Helper()
	return RunShell(t, "printf '%s' "+word+"\n")
}

// RunBash runs src with the system bash under the C locale and returns its
// stdout. Unlike RunShell it preserves arbitrary bytes, including invalid
// UTF-8. The test is skipped when bash is unavailable.
func RunBash(t *testing.T, src string) string {
	t.Helper()
	RequireBash(t)

	cmd := exec.Command("bash", "-c", src)
	cmd.Env = []string{"LC_ALL=C", "PATH=" + os.Getenv("PATH")}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("bash failed: %v\nstderr: %s\n%s", err, stderr.String(), src)
	}
	return stdout.String()
}

// BashWord evaluates a single shell word with the system bash.
func BashWord(t *testing.T, word string) string {
	t.Helper()
	return RunBash(t, "printf '%s' "+word)
}
