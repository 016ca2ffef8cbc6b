package main

import (
	"os"

	"github.com/arthur-debert/modlink/cmd/modlink"
)

func main() {
	rootCmd := modlink.NewRootCmd()
	if cmd, err := rootCmd.ExecuteC(); err != nil {
		modlink.ReportError(cmd, err)
		os.Exit(1)
	}
}
