package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "import servers from a JSON or YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "export servers to a file",
	Long: `export writes every configured server to file. The format follows the
extension: .yaml/.yml for YAML, .xlsx for an Excel sheet, JSON otherwise.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var (
	importMerge  bool
	exportPretty bool
)

func runImport(_ *cobra.Command, args []string) error {
	summary, err := deps.Transfer.Import(args[0], importMerge)
	if err != nil {
		return err
	}

	for _, server := range summary.Added {
		writer().Success(fmt.Sprintf("Imported: %s", server))
	}
	for _, server := range summary.Skipped {
		writer().Warning(fmt.Sprintf("Skipped (already exists): %s", server))
	}
	for _, server := range summary.Invalid {
		writer().Warning(fmt.Sprintf("Skipped (invalid name or IP): %s", server))
	}

	writer().Success(fmt.Sprintf("Import complete. Added: %d, Skipped: %d",
		len(summary.Added), len(summary.Skipped)+len(summary.Invalid)))
	return nil
}

func runExport(_ *cobra.Command, args []string) error {
	count, err := deps.Transfer.Export(args[0], exportPretty)
	if err != nil {
		return err
	}

	writer().Success(fmt.Sprintf("Exported %d servers to '%s'", count, args[0]))
	return nil
}

func init() {
	importCmd.Flags().BoolVarP(&importMerge, "merge", "m", false, "Merge with existing servers instead of replacing them")
	exportCmd.Flags().BoolVarP(&exportPretty, "pretty", "p", false, "Pretty print JSON output")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}
