// Command rpcserverd runs the server aio engine against a YAML
// configuration file, echoing every request it receives until it is
// interrupted.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/opd-ai/securerpc/config"
	"github.com/opd-ai/securerpc/metrics"
	"github.com/opd-ai/securerpc/rpc"
	"github.com/opd-ai/securerpc/rpcserver"
	"github.com/opd-ai/securerpc/transport"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "rpcserverd",
	Short: "Run the async request/reply server engine",
	RunE:  runServer,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to server YAML configuration (required)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.MarkFlagRequired("config")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "rpcserverd: %v\n", err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	log := logrus.New()
	if level, err := logrus.ParseLevel(logLevel); err == nil {
		log.SetLevel(level)
	}
	entry := logrus.NewEntry(log)

	cfg, err := config.LoadServerConfig(configPath)
	if err != nil {
		return err
	}

	sock, err := transport.NewRepSocket(transport.SocketOptions{
		ReconnectMinTime: cfg.Socket.ReconnectMinTime,
		ReconnectMaxTime: cfg.Socket.ReconnectMaxTime,
		MaxTtl:           cfg.Socket.MaxTtl,
	})
	if err != nil {
		return err
	}
	defer sock.Close()

	factory := rpc.FactoryFunc(func() rpc.Processor {
		return rpc.ProcessorFunc(func(req []byte) ([]byte, error) {
			out := make([]byte, len(req))
			copy(out, req)
			return out, nil
		})
	})

	reg := prometheus.NewRegistry()
	m := metrics.NewServerMetrics(reg)

	stop := make(chan struct{})
	if _, err := rpcserver.Start(cfg.Listener, sock, factory, stop, entry, m); err != nil {
		return err
	}

	entry.WithField("url", cfg.Listener.Url).Info("server listening")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	close(stop)
	entry.Info("server stopped")
	return nil
}
