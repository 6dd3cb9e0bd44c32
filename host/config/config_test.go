package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lcdlink.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
port = "/dev/ttyUSB0"
log_level = "debug"

[mqtt]
topic = "ci/status"
qos = 1

[device]
driver = "GPIO"
banner = false

[device.pins]
rs = "GPIO5"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	def := Default()
	require.Equal(t, "/dev/ttyUSB0", cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, def.MQTT.Broker, cfg.MQTT.Broker)
	require.Equal(t, "ci/status", cfg.MQTT.Topic)
	require.EqualValues(t, 1, cfg.MQTT.QoS)
	require.Equal(t, DriverGPIO, cfg.Device.Driver)
	require.False(t, cfg.Device.Banner)
	require.Equal(t, def.Device.BannerText, cfg.Device.BannerText)
	require.Equal(t, "GPIO5", cfg.Device.Pins.RS)
	require.Equal(t, def.Device.Pins.E, cfg.Device.Pins.E)
}

func TestLoadEmptyFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"syntax", "port = "},
		{"unknown key", `baud = 115200`},
		{"bad qos", "[mqtt]\nqos = 3"},
		{"bad driver", "[device]\ndriver = \"vga\""},
		{"missing gpio pin", "[device]\ndriver = \"gpio\"\n[device.pins]\nd7 = \"\""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			require.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}
