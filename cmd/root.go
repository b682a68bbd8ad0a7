// =============================================================================
// Asientos XML - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to. Run without a
// subcommand it opens the interactive menu.
//
// COBRA CLI STRUCTURE:
//   rootCmd (asientos)         -> interactive menu
//   ├── menuCmd    (asientos menu)
//   ├── exportCmd  (asientos export)
//   ├── importCmd  (asientos import)
//   ├── schemaCmd  (asientos schema)
//   ├── configCmd  (asientos config)
//   └── versionCmd (asientos version)
//
// CONFIGURATION:
//   initConfig runs before any command and:
//   1. Loads the configuration (file, .env, ASIENTOS_* variables)
//   2. Builds the logger from log.level, or debug with --verbose
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/ginjaninja78/asientos-xml/internal/config"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// Empty means config.yaml in the working directory, if present.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// appConfig is the configuration loaded by initConfig.
var appConfig *config.Config

// logger is the application logger built by initConfig.
var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "asientos"})

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "asientos",
	Short: "Asientos XML - Export and import journal entries as XML",
	Long: `Asientos XML moves accounting journal entries between the ledger
collection and a flat XML interchange file (AsientoActivos).

  export  writes every entry of the ledger collection to the XML file
  import  reads the XML file and appends its entries to the staging collection

Example Usage:
  asientos                         # Interactive menu
  asientos export                  # Write asientos.xml from the ledger
  asientos import --file in.xml    # Load in.xml into the staging collection
  asientos schema --out asientos.xsd`,

	SilenceUsage: true,

	// Without a subcommand the interactive menu is shown.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenuCommand(cmd)
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to the configuration file (default is ./config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	cobra.OnInitialize(initConfig)
}

// initConfig loads the configuration and sets up logging.
func initConfig() {
	cfg, err := config.Load(cfgFile)
	cobra.CheckErr(err)
	appConfig = cfg

	level, err := log.ParseLevel(cfg.Log.Level)
	cobra.CheckErr(err)
	if verbose {
		level = log.DebugLevel
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "asientos",
		Level:           level,
		ReportTimestamp: true,
	})
	logger.Debug("configuration loaded", "driver", cfg.Database.Driver, "xml_path", cfg.Files.XMLPath)
}
