package cmd

import (
	"fmt"

	"github.com/ginjaninja78/asientos-xml/internal/schema"
	"github.com/ginjaninja78/asientos-xml/pkg/utils"
	"github.com/spf13/cobra"
)

// schemaOut is the destination of the generated XSD; empty prints it.
var schemaOut string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the XSD of the AsientoActivos file format",
	RunE: func(cmd *cobra.Command, args []string) error {
		xsd, err := schema.GenerateXSD(schema.Default)
		if err != nil {
			return err
		}

		if schemaOut == "" {
			_, err = cmd.OutOrStdout().Write(xsd)
			return err
		}

		if err := utils.WriteOutputFile(schemaOut, xsd); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "XSD written to %s\n", schemaOut)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().StringVarP(&schemaOut, "out", "o", "", "Write the XSD to this file")
}
