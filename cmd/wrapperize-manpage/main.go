package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/wrapperize/cmd/wrapperize"
)

func main() {
	rootCmd := wrapperize.NewRootCmd()

	err := doc.GenMan(rootCmd, wrapperize.ManHeader(), os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
