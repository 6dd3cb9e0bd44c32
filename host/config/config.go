// Package config loads the optional TOML configuration shared by lcdctl
// and lcdd. Keys absent from the file keep their defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Display drivers supported by lcdd
const (
	DriverScreen = "screen" // emulated display rendered to the terminal
	DriverGPIO   = "gpio"   // HD44780 wired to the board's GPIO header
)

// Config is the resolved configuration
type Config struct {
	Port     string
	LogLevel string
	MQTT     MQTTConfig
	Device   DeviceConfig
}

// MQTTConfig configures lcdctl bridge
type MQTTConfig struct {
	Broker   string
	Topic    string
	ClientID string
	QoS      byte
}

// DeviceConfig configures lcdd
type DeviceConfig struct {
	Port       string
	Driver     string
	Banner     bool
	BannerText string
	Pins       PinConfig
}

// PinConfig names the GPIO lines of a 4-bit HD44780 hookup
type PinConfig struct {
	RS, E          string
	D4, D5, D6, D7 string
}

type fileConfig struct {
	Port     string `toml:"port"`
	LogLevel string `toml:"log_level"`
	MQTT     struct {
		Broker   string `toml:"broker"`
		Topic    string `toml:"topic"`
		ClientID string `toml:"client_id"`
		QoS      int    `toml:"qos"`
	} `toml:"mqtt"`
	Device struct {
		Port       string `toml:"port"`
		Driver     string `toml:"driver"`
		Banner     bool   `toml:"banner"`
		BannerText string `toml:"banner_text"`
		Pins       struct {
			RS string `toml:"rs"`
			E  string `toml:"e"`
			D4 string `toml:"d4"`
			D5 string `toml:"d5"`
			D6 string `toml:"d6"`
			D7 string `toml:"d7"`
		} `toml:"pins"`
	} `toml:"device"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		LogLevel: "info",
		MQTT: MQTTConfig{
			Broker:   "tcp://localhost:1883",
			Topic:    "lcd/display",
			ClientID: "lcdctl",
		},
		Device: DeviceConfig{
			Driver:     DriverScreen,
			Banner:     true,
			BannerText: "BUILDSERVER",
			Pins: PinConfig{
				RS: "GPIO25", E: "GPIO24",
				D4: "GPIO23", D5: "GPIO17", D6: "GPIO18", D7: "GPIO22",
			},
		},
	}
}

// Load reads path over the defaults
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config %s: unknown key %s", path, undecoded[0])
	}

	if meta.IsDefined("port") {
		cfg.Port = strings.TrimSpace(raw.Port)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	if meta.IsDefined("mqtt", "broker") {
		cfg.MQTT.Broker = strings.TrimSpace(raw.MQTT.Broker)
	}
	if meta.IsDefined("mqtt", "topic") {
		cfg.MQTT.Topic = strings.TrimSpace(raw.MQTT.Topic)
	}
	if meta.IsDefined("mqtt", "client_id") {
		cfg.MQTT.ClientID = strings.TrimSpace(raw.MQTT.ClientID)
	}
	if meta.IsDefined("mqtt", "qos") {
		if raw.MQTT.QoS < 0 || raw.MQTT.QoS > 2 {
			return Config{}, fmt.Errorf("mqtt.qos must be 0, 1 or 2, got %d", raw.MQTT.QoS)
		}
		cfg.MQTT.QoS = byte(raw.MQTT.QoS)
	}

	if meta.IsDefined("device", "port") {
		cfg.Device.Port = strings.TrimSpace(raw.Device.Port)
	}
	if meta.IsDefined("device", "driver") {
		cfg.Device.Driver = strings.ToLower(strings.TrimSpace(raw.Device.Driver))
	}
	if meta.IsDefined("device", "banner") {
		cfg.Device.Banner = raw.Device.Banner
	}
	if meta.IsDefined("device", "banner_text") {
		cfg.Device.BannerText = raw.Device.BannerText
	}

	pins := &cfg.Device.Pins
	overlayPin(meta, "rs", raw.Device.Pins.RS, &pins.RS)
	overlayPin(meta, "e", raw.Device.Pins.E, &pins.E)
	overlayPin(meta, "d4", raw.Device.Pins.D4, &pins.D4)
	overlayPin(meta, "d5", raw.Device.Pins.D5, &pins.D5)
	overlayPin(meta, "d6", raw.Device.Pins.D6, &pins.D6)
	overlayPin(meta, "d7", raw.Device.Pins.D7, &pins.D7)

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func overlayPin(meta toml.MetaData, key, value string, dst *string) {
	if meta.IsDefined("device", "pins", key) {
		*dst = strings.TrimSpace(value)
	}
}

// Validate checks values that cannot be fixed up silently
func Validate(cfg Config) error {
	switch cfg.Device.Driver {
	case DriverScreen, DriverGPIO:
	default:
		return fmt.Errorf("device.driver must be %q or %q, got %q", DriverScreen, DriverGPIO, cfg.Device.Driver)
	}
	if cfg.Device.Driver == DriverGPIO {
		p := cfg.Device.Pins
		for _, name := range []string{p.RS, p.E, p.D4, p.D5, p.D6, p.D7} {
			if name == "" {
				return fmt.Errorf("device.pins: all of rs, e, d4-d7 are required for the gpio driver")
			}
		}
	}
	return nil
}
