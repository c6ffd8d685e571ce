package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ListenerConfig describes a server-side endpoint.
type ListenerConfig struct {
	Url             string `yaml:"url"`
	RecvMaxSize     int    `yaml:"recv_max_size"`
	NoDelay         *bool  `yaml:"no_delay"`
	KeepAlive       *bool  `yaml:"keep_alive"`
	NonBlocking     bool   `yaml:"non_blocking"`
	AioContextCount int    `yaml:"aio_context_count"`
}

// Validate fills in defaults and rejects a config that cannot construct a
// listener.
func (c *ListenerConfig) Validate() error {
	if c.Url == "" {
		return errors.New("config: listener url is required")
	}
	if c.AioContextCount == 0 {
		c.AioContextCount = 1
	}
	if c.AioContextCount < 1 {
		return fmt.Errorf("config: aio_context_count must be >= 1, got %d", c.AioContextCount)
	}
	return nil
}

// DialerConfig describes a client-side endpoint.
type DialerConfig struct {
	Url                         string        `yaml:"url"`
	RecvMaxSize                 int           `yaml:"recv_max_size"`
	NoDelay                     *bool         `yaml:"no_delay"`
	KeepAlive                   *bool         `yaml:"keep_alive"`
	NonBlocking                 bool          `yaml:"non_blocking"`
	MaxConcurrentRequestCapacity int          `yaml:"max_concurrent_request_capacity"`
}

// Validate fills in defaults and rejects a config that cannot construct a
// dialer.
func (c *DialerConfig) Validate() error {
	if c.Url == "" {
		return errors.New("config: dialer url is required")
	}
	if c.MaxConcurrentRequestCapacity == 0 {
		c.MaxConcurrentRequestCapacity = 1
	}
	if c.MaxConcurrentRequestCapacity < 1 {
		return fmt.Errorf("config: max_concurrent_request_capacity must be >= 1, got %d", c.MaxConcurrentRequestCapacity)
	}
	return nil
}

// SocketConfig describes reconnection and TTL behavior shared by listener
// and dialer sockets.
type SocketConfig struct {
	ReconnectMinTime time.Duration `yaml:"reconnect_min_time"`
	ReconnectMaxTime time.Duration `yaml:"reconnect_max_time"`
	MaxTtl           int           `yaml:"max_ttl"`
}

// ServerConfig is the top-level configuration for an rpcserverd process.
type ServerConfig struct {
	Listener ListenerConfig `yaml:"listener"`
	Socket   SocketConfig   `yaml:"socket"`
	Workers  int            `yaml:"workers"`
}

// Validate fills in defaults and validates nested configuration.
func (c *ServerConfig) Validate() error {
	if err := c.Listener.Validate(); err != nil {
		return err
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
	if c.Workers < 1 {
		return fmt.Errorf("config: workers must be >= 1, got %d", c.Workers)
	}
	return nil
}

// ClientConfig is the top-level configuration for an rpcclientctl process.
type ClientConfig struct {
	Dialer DialerConfig `yaml:"dialer"`
	Socket SocketConfig `yaml:"socket"`
}

// Validate fills in defaults and validates nested configuration.
func (c *ClientConfig) Validate() error {
	return c.Dialer.Validate()
}

// LoadServerConfig reads and validates a ServerConfig from a YAML file.
func LoadServerConfig(path string) (*ServerConfig, error) {
	var cfg ServerConfig
	if err := loadYAML(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadClientConfig reads and validates a ClientConfig from a YAML file.
func LoadClientConfig(path string) (*ClientConfig, error) {
	var cfg ClientConfig
	if err := loadYAML(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}
