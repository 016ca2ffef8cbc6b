package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/modlink/cmd/modlink"
	"github.com/spf13/cobra/doc"
)

func main() {
	rootCmd := modlink.NewRootCmd()

	err := doc.GenMan(rootCmd, modlink.ManHeader(), os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
