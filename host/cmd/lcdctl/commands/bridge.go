package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"lcdlink/host/bridge"
	"lcdlink/host/command"
	"lcdlink/host/logging"
)

var (
	bridgeConfig   string
	bridgeLogLevel string
	bridgePort     string
	bridgeBroker   string
	bridgeTopic    string
)

var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "forwards display commands from an MQTT topic",
	Long: `bridge subscribes to an MQTT topic and executes every message as a
command line, for example:

  mosquitto_pub -t lcd/display -m '--clear --message "BUILD #42 OK"'
  mosquitto_pub -t lcd/display -m 'glyph 1'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(bridgeConfig)
		if err != nil {
			return err
		}
		if bridgeLogLevel != "" {
			cfg.LogLevel = bridgeLogLevel
		}
		if bridgePort != "" {
			cfg.Port = bridgePort
		}
		if bridgeBroker != "" {
			cfg.MQTT.Broker = bridgeBroker
		}
		if bridgeTopic != "" {
			cfg.MQTT.Topic = bridgeTopic
		}
		logging.InitLogger("lcdctl", cfg.LogLevel)

		if cfg.Port == "" {
			return command.ErrNoPort
		}
		runner := newRunner(cfg)
		defer runner.Close()
		if err := runner.Open(cfg.Port); err != nil {
			return err
		}

		opts, err := bridge.ClientOptionsFromURL(cfg.MQTT.Broker, cfg.MQTT.ClientID)
		if err != nil {
			return err
		}
		b := bridge.New(opts, cfg.MQTT.Topic, cfg.MQTT.QoS, runner)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Info().Str("broker", cfg.MQTT.Broker).Str("topic", cfg.MQTT.Topic).Str("port", cfg.Port).Msg("bridge starting")
		return b.Run(ctx)
	},
}

func init() {
	bridgeCmd.Flags().StringVar(&bridgeConfig, "config", "", "configuration file")
	bridgeCmd.Flags().StringVar(&bridgeLogLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	bridgeCmd.Flags().StringVar(&bridgePort, "port", "", "serial port of the device")
	bridgeCmd.Flags().StringVar(&bridgeBroker, "broker", "", "broker URL, e.g. mqtt://localhost:1883")
	bridgeCmd.Flags().StringVar(&bridgeTopic, "topic", "", "topic to subscribe to")
}
