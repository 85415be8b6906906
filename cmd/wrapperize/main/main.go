package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/wrapperize/cmd/wrapperize"
	"github.com/arthur-debert/wrapperize/pkg/style"
)

func main() {
	rootCmd := wrapperize.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.Error(err))
		os.Exit(1)
	}
}
