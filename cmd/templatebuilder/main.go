// Command templatebuilder manages document templates in a local SQLite
// database and renders them to HTML from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "templatebuilder:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dbPath string

	root := &cobra.Command{
		Use:           "templatebuilder",
		Short:         "Compose and render document templates",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "templatebuilder.db", "path to the template database")

	root.AddCommand(
		newNewCmd(&dbPath),
		newListCmd(&dbPath),
		newRenderCmd(&dbPath),
		newExportCmd(&dbPath),
		newPublishCmd(&dbPath, true),
		newPublishCmd(&dbPath, false),
		newFillCmd(&dbPath),
	)
	return root
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
