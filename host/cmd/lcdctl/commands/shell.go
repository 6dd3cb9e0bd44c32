package commands

import (
	"github.com/spf13/cobra"

	"lcdlink/host/logging"
	"lcdlink/host/shell"
)

var (
	shellConfig   string
	shellLogLevel string
	shellPort     string
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "starts an interactive shell",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(shellConfig)
		if err != nil {
			return err
		}
		if shellLogLevel != "" {
			cfg.LogLevel = shellLogLevel
		}
		logging.InitLogger("lcdctl", cfg.LogLevel)

		runner := newRunner(cfg)
		defer runner.Close()

		if shellPort != "" {
			if err := runner.Open(shellPort); err != nil {
				return err
			}
		}

		shell.New(runner).Run()
		return nil
	},
}

func init() {
	shellCmd.Flags().StringVar(&shellConfig, "config", "", "configuration file")
	shellCmd.Flags().StringVar(&shellLogLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	shellCmd.Flags().StringVar(&shellPort, "port", "", "serial port to open at start")
}
