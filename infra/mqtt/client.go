// Package mqtt connects the service to the fleet telemetry broker.
package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/fleetsense/evmaint/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Enabled        bool   `json:"enabled"`
	Broker         string `json:"broker"`
	ClientID       string `json:"client_id"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	UseTLS         bool   `json:"use_tls"`
	ClientCert     string `json:"client_cert"`
	ClientKey      string `json:"client_key"`
	CABundle       string `json:"ca_bundle"`
	TelemetryTopic string `json:"telemetry_topic"`
	AlertTopic     string `json:"alert_topic"`
	QoS            byte   `json:"qos"`
	ConnectTimeout int    `json:"connect_timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "evmaint-" + uuid.NewString()[:8]
	}
	if c.TelemetryTopic == "" {
		c.TelemetryTopic = "evmaint/telemetry/+"
	}
	if c.AlertTopic == "" {
		c.AlertTopic = "evmaint/alerts"
	}
	if c.QoS == 0 {
		c.QoS = 1
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = 10
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("broker is required when mqtt is enabled")
	}
	if c.UseTLS && (c.ClientCert == "" || c.ClientKey == "") {
		return fmt.Errorf("client_cert and client_key are required with use_tls")
	}
	return nil
}

// Publisher is the outbound half of the client, stubbed in tests.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

// PahoClient wraps an Eclipse Paho connection.
type PahoClient struct {
	cli paho.Client
	qos byte
	log logger.Logger
}

// NewClientOptions builds Paho options from the config, including TLS when
// requested.
func NewClientOptions(cfg Config) (*paho.ClientOptions, error) {
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(time.Duration(cfg.ConnectTimeout) * time.Second)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	if cfg.UseTLS {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCert, cfg.ClientKey)
		if err != nil {
			return nil, fmt.Errorf("load client certificate: %w", err)
		}
		tlsCfg := &tls.Config{Certificates: []tls.Certificate{cert}, MinVersion: tls.VersionTLS12}
		if cfg.CABundle != "" {
			ca, err := os.ReadFile(cfg.CABundle)
			if err != nil {
				return nil, fmt.Errorf("read ca bundle: %w", err)
			}
			pool := x509.NewCertPool()
			if !pool.AppendCertsFromPEM(ca) {
				return nil, fmt.Errorf("ca bundle contains no certificates")
			}
			tlsCfg.RootCAs = pool
		}
		opts.SetTLSConfig(tlsCfg)
	}
	return opts, nil
}

// NewPahoClient connects to the MQTT broker.
func NewPahoClient(cfg Config) (*PahoClient, error) {
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	log := logger.New("mqtt_client")
	cli := paho.NewClient(opts)
	token := cli.Connect()
	if !token.WaitTimeout(time.Duration(cfg.ConnectTimeout) * time.Second) {
		return nil, fmt.Errorf("mqtt connect timeout to %s", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	log.Infof("connected to broker %s", cfg.Broker)
	return &PahoClient{cli: cli, qos: cfg.QoS, log: log}, nil
}

// Publish sends a payload on the topic.
func (p *PahoClient) Publish(topic string, payload []byte) error {
	token := p.cli.Publish(topic, p.qos, false, payload)
	token.Wait()
	return token.Error()
}

// Subscribe registers a handler for the topic.
func (p *PahoClient) Subscribe(topic string, handler paho.MessageHandler) error {
	token := p.cli.Subscribe(topic, p.qos, handler)
	token.Wait()
	return token.Error()
}

// Disconnect closes the connection after a short quiesce.
func (p *PahoClient) Disconnect() {
	p.cli.Disconnect(250)
}
