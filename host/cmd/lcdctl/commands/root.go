package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lcdlink/host/command"
	"lcdlink/host/config"
	"lcdlink/host/encoder"
	"lcdlink/host/logging"
)

var (
	Version   = "dev"
	BuildTime string
)

// subcommands are only attached when the first argument names one, so a
// message such as "version" stays an operand of the ordered flags
var subcommands = []*cobra.Command{shellCmd, bridgeCmd, versionCmd}

func newRootCmd(args []string) *cobra.Command {
	root := &cobra.Command{
		Use:   "lcdctl [--config file] [--log-level level] --port <port> [display flags...]",
		Short: "lcdctl drives a 16x2 character display over a serial link",
		Long: `lcdctl sends display commands to the device. Flags are processed left
to right, each display flag sending one packet:

  lcdctl --port /dev/ttyUSB0 --clear --cursor 1 4 --message "BUILD OK"

Run with --help for the list of display flags, or one of the subcommands
shell, bridge and version.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE:               runRoot,
	}
	if len(args) > 0 && isSubcommand(args[0]) {
		root.AddCommand(subcommands...)
	}
	return root
}

func isSubcommand(name string) bool {
	switch name {
	case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	for _, sub := range subcommands {
		if sub.Name() == name || sub.HasAlias(name) {
			return true
		}
	}
	return false
}

// Execute runs the command line
func Execute() {
	args := os.Args[1:]
	root := newRootCmd(args)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	global, rest := splitGlobalFlags(args)

	cfg, err := loadConfig(global.configPath)
	if err != nil {
		return err
	}
	if global.logLevel != "" {
		cfg.LogLevel = global.logLevel
	}
	logging.InitLogger("lcdctl", cfg.LogLevel)

	runner := newRunner(cfg)
	defer runner.Close()

	return runner.Run(rest)
}

type globalFlags struct {
	configPath string
	logLevel   string
}

// splitGlobalFlags removes --config and --log-level, wherever they are,
// and leaves the display flags in order
func splitGlobalFlags(args []string) (globalFlags, []string) {
	var g globalFlags
	rest := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--config" && i+1 < len(args):
			i++
			g.configPath = args[i]
		case args[i] == "--log-level" && i+1 < len(args):
			i++
			g.logLevel = args[i]
		default:
			rest = append(rest, args[i])
		}
	}
	return g, rest
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func newRunner(cfg config.Config) *command.Runner {
	return command.NewRunner(command.Options{
		DefaultPort: cfg.Port,
		Encoder:     encoder.DefaultConfig(),
	})
}
