package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"hamlookup/lib/configutil"
	"hamlookup/lib/exitcode"
	"hamlookup/lib/osutil"
	"hamlookup/lib/telemetry"

	"github.com/spf13/cobra"
)

type QrzConfig struct {
	BaseURL   string `json:"base_url"`
	KeyFile   string `json:"key_file"`
	CallsFile string `json:"calls_file"`
	TableFile string `json:"table_file"`
}

type FccConfig struct {
	SearchURL string `json:"search_url"`
}

type Config struct {
	Qrz       QrzConfig        `json:"qrz"`
	Fcc       FccConfig        `json:"fcc"`
	Telemetry telemetry.Config `json:"telemetry"`
}

var (
	config Config
	tel    telemetry.Telemetry
)

var rootCmd = &cobra.Command{
	Use:   "hamlookup",
	Short: "hamlookup queries the QRZ XML database server and the FCC license databases for amateur radio callsign records.",
}

func applyDefaults() {
	if config.Qrz.KeyFile == "" {
		config.Qrz.KeyFile = "qrz.key"
	}
	if config.Qrz.CallsFile == "" {
		config.Qrz.CallsFile = "_callsigns.txt"
	}
	if config.Qrz.TableFile == "" {
		config.Qrz.TableFile = "_emails.csv"
	}
}

func Execute() {
	cfg, err := configutil.ReadConfig[Config]("hamlookup.json5")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	config = cfg
	applyDefaults()

	tel, err = telemetry.Setup(context.Background(), "hamlookup", config.Telemetry)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer tel.Shutdown(context.Background())

	if err := rootCmd.ExecuteContext(osutil.SignalContext()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// fail prints the error and terminates with its legacy bitmask code,
// flushing telemetry first since os.Exit skips deferred shutdowns.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "\n*** ERROR: %s\n", err)
	tel.Shutdown(context.Background())
	os.Exit(exitcode.FromError(err))
}

// exit terminates with an explicit bitmask code.
func exit(code int) {
	tel.Shutdown(context.Background())
	os.Exit(code)
}
