// Package commands implements the CLI commands for contentfilter.
package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/contentfilter/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "contentfilter",
	Short: "Apply content filters to fetched documents",
	Long: `Contentfilter runs a single filter stage over a document and prints
the transformed text.

Each filter takes a subfilter: a small map of options. Options come from
the config file (subfilters.<name>), then --subfilter-file, then --set.

Examples:
  # Drop every line mentioning a timestamp
  contentfilter run re.inverse page.txt --set 're=\d{2}:\d{2}'

  # Render CSV rows as sentences
  contentfilter run csv2text people.csv --set 'format_message={name} is {age}'

  # Pretty-print HTML from stdin
  curl -s https://example.com | contentfilter run beautify`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{
			Level: viper.GetString("log_level"),
			Debug: viper.GetBool("debug"),
			Quiet: viper.GetBool("quiet"),
			JSON:  viper.GetBool("log_json"),
		})
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.contentfilter.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "only log errors")
	rootCmd.PersistentFlags().Bool("log-json", false, "log as JSON")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("log-json"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".contentfilter")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("CONTENTFILTER")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
