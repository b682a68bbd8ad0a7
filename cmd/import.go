package cmd

import (
	"github.com/spf13/cobra"
)

// importFile overrides files.xml_path for a single import.
var importFile string

// importCmd represents the 'import' command.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Append the entries of the XML file to the staging collection",
	Long: `Reads the XML file and inserts one entry per Cuentas element into the
staging collection, in document order.

The header (Encabezado) is checked before anything is inserted. The first
invalid line stops the import; lines before it remain inserted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		path := importFile
		if path == "" {
			path = appConfig.Files.XMLPath
		}

		s, err := openStore(ctx, appConfig)
		if err != nil {
			return err
		}
		defer s.Close()

		return runImport(ctx, s, appConfig, path, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(
		&importFile,
		"file",
		"f",
		"",
		"XML file to import (default is files.xml_path)",
	)
}
