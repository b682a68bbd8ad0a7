// =============================================================================
// Asientos XML - Menu Command
// =============================================================================
//
// This file defines the interactive menu shown by 'asientos' and
// 'asientos menu':
//
//   Escoge una opción:
//   1. Exportar archivo de nómina.
//   2. Importar archivo de nómina.
//   3. Salir
//
// A failing option prints its error and the menu is shown again. The loop
// ends on option 3, at end of input, or when the context is cancelled.
//
// =============================================================================

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

const (
	msgMenuPrompt    = "\nEscoge una opción:"
	msgMenuExport    = "1. Exportar archivo de nómina."
	msgMenuImport    = "2. Importar archivo de nómina."
	msgMenuExit      = "3. Salir"
	msgExiting       = "Saliendo del programa."
	msgInvalidOption = "Opción inválida, por favor digita una opción del menú."
)

// menuActions are the operations behind options 1 and 2.
type menuActions struct {
	export     func(ctx context.Context) error
	importFile func(ctx context.Context) error
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the interactive menu (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenuCommand(cmd)
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

// runMenuCommand opens the datastore once and runs the menu on the
// command's input and output.
func runMenuCommand(cmd *cobra.Command) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	s, err := openStore(ctx, appConfig)
	if err != nil {
		return err
	}
	defer s.Close()

	return runMenu(ctx, cmd.InOrStdin(), out, menuActions{
		export: func(ctx context.Context) error {
			return runExport(ctx, s, appConfig, out)
		},
		importFile: func(ctx context.Context) error {
			return runImport(ctx, s, appConfig, appConfig.Files.XMLPath, out)
		},
	})
}

// runMenu reads options from in until the operator exits.
func runMenu(ctx context.Context, in io.Reader, out io.Writer, actions menuActions) error {
	scanner := bufio.NewScanner(in)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintln(out, msgMenuPrompt)
		fmt.Fprintln(out, msgMenuExport)
		fmt.Fprintln(out, msgMenuImport)
		fmt.Fprintln(out, msgMenuExit)

		if !scanner.Scan() {
			return scanner.Err()
		}

		var err error
		switch strings.TrimSpace(scanner.Text()) {
		case "1":
			err = actions.export(ctx)
		case "2":
			err = actions.importFile(ctx)
		case "3":
			fmt.Fprintln(out, msgExiting)
			return nil
		default:
			fmt.Fprintln(out, msgInvalidOption)
		}

		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}
