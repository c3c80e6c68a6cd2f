package main

import (
	"fmt"
	"os"

	"github.com/atelierware/folio/internal/cli"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "foliod",
		Short:   "Folio daemon",
		Long:    "Folio daemon for running the portfolio API server and managing the knowledge base",
		Version: version,
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.IngestCmd())
	rootCmd.AddCommand(cli.ChunksCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
