package cmd

import (
	"github.com/spf13/cobra"
)

// exportCmd represents the 'export' command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the ledger collection to the XML file",
	Long: `Reads every entry of the ledger collection and writes them to the
configured XML file (files.xml_path), replacing the previous file.

When the ledger is empty nothing is written and the command succeeds.
When files.xlsx_report is set, an XLSX copy of the batch is written as well.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := openStore(ctx, appConfig)
		if err != nil {
			return err
		}
		defer s.Close()

		return runExport(ctx, s, appConfig, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
