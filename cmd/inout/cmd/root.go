/*
root.go - CLI root command

PURPOSE:
  Base cobra command, global flags, and logging/configuration setup
  shared by every subcommand.

CONFIGURATION:
  Flags < config file < environment, resolved through viper. Environment
  variables use the INOUT_ prefix (INOUT_DB, INOUT_PORT, INOUT_LOG_LEVEL).

SEE ALSO:
  - serve.go: HTTP server subcommand
  - generate.go: One-shot generation subcommand
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "inout",
	Short: "Attendance calendar generation engine",
	Long: `inout generates day-by-day attendance calendars that reconcile exactly
with payroll pay-day targets, per client and month.

Examples:
  inout serve --db ./data/inout.db --port 8080
  inout generate --client acme --month 6 --year 2025 --db ./data/inout.db`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().String("db", "inout.db", "SQLite database path (\":memory:\" for in-memory)")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
}

// initConfig reads in config file and ENV variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading config file: %s\n", err)
			os.Exit(1)
		}
	}

	viper.SetEnvPrefix("INOUT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// newLogger builds the logrus logger from the resolved configuration.
func newLogger() *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if viper.GetString("log_format") == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}
