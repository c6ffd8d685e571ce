// Command rpcclientctl dials a server with the async client engine, sends
// one request read from stdin or an argument, and prints the reply.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/opd-ai/securerpc/config"
	"github.com/opd-ai/securerpc/metrics"
	"github.com/opd-ai/securerpc/reply"
	"github.com/opd-ai/securerpc/rpcclient"
)

var (
	configPath string
	message    string
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "rpcclientctl",
	Short: "Send one request through the async client engine",
	RunE:  runClient,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to client YAML configuration (required)")
	rootCmd.Flags().StringVarP(&message, "message", "m", "", "request body; reads stdin if omitted")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "time to wait for a reply")
	rootCmd.MarkFlagRequired("config")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "rpcclientctl: %v\n", err)
		os.Exit(1)
	}
}

func runClient(cmd *cobra.Command, args []string) error {
	log := logrus.New()
	entry := logrus.NewEntry(log)

	cfg, err := config.LoadClientConfig(configPath)
	if err != nil {
		return err
	}

	body := []byte(message)
	if message == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		body = data
	}

	reg := prometheus.NewRegistry()
	m := metrics.NewClientMetrics(reg)

	client, err := rpcclient.NewBuilder(cfg.Dialer).
		SocketSettings(cfg.Socket).
		Logger(entry).
		Metrics(m).
		Build()
	if err != nil {
		return err
	}
	defer client.Close()

	resultCh := make(chan reply.Result, 1)
	if err := client.SendWithCallback(body, reply.HandlerFunc(func(r reply.Result) {
		resultCh <- r
	})); err != nil {
		return err
	}

	select {
	case r := <-resultCh:
		if r.Err != nil {
			return r.Err
		}
		fmt.Println(string(r.Msg))
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("timed out after %s waiting for reply", timeout)
	}
}
