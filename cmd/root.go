package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chartlight/chartlight/pkg/config"
	"github.com/chartlight/chartlight/pkg/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "chartlight",
	Short: "Clinical chart review from the terminal",
	Long: `Chartlight runs workflow-driven reviews against a patient dataset:
it streams the backend's analysis, shows the tool trace and per-item
processing state, and highlights extracted evidence inside note text.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.Load(cfgFile); err != nil {
			return err
		}
		return logger.Init()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReview(cmd.Context())
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is .chartlight/settings.yaml)")

	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level")
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentFlags().String("backend", "", "review backend base URL")
	viper.BindPFlag("backend.url", rootCmd.PersistentFlags().Lookup("backend"))

	rootCmd.Flags().StringP("prompt", "p", "", "question to ask the supervisor about the dataset")
	viper.BindPFlag("prompt", rootCmd.Flags().Lookup("prompt"))

	rootCmd.Flags().String("dataset", "", "dataset id to review")
	viper.BindPFlag("review.dataset_id", rootCmd.Flags().Lookup("dataset"))

	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(highlightCmd)
}
