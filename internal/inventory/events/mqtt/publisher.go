// Package mqtt publishes inventory events to an MQTT broker.
package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/aussiebroadwan/stocktake/internal/inventory/domain"
	"github.com/aussiebroadwan/stocktake/internal/inventory/service"
)

const (
	defaultConnectTimeout    = 10 * time.Second
	defaultPublishTimeout    = 5 * time.Second
	defaultDisconnectQuiesce = 250 // milliseconds
	defaultKeepAlive         = 60 * time.Second
	defaultTopicPrefix       = "stocktake"
)

var (
	ErrConnectionFailed = errors.New("mqtt: connection failed")
	ErrNotConnected     = errors.New("mqtt: not connected")
	ErrPublishFailed    = errors.New("mqtt: publish failed")
	ErrInvalidQoS       = errors.New("mqtt: qos must be 0, 1 or 2")
)

// Config holds broker connection settings.
type Config struct {
	BrokerURL   string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
	QoS         byte
}

// Publisher sends device events as JSON. It implements
// service.EventPublisher.
type Publisher struct {
	client  pahomqtt.Client
	prefix  string
	qos     byte
	timeout time.Duration
}

// Connect dials the broker and returns a ready publisher.
func Connect(cfg Config) (*Publisher, error) {
	if cfg.QoS > 2 {
		return nil, ErrInvalidQoS
	}

	client := pahomqtt.NewClient(buildClientOptions(cfg))
	token := client.Connect()
	if !token.WaitTimeout(defaultConnectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, defaultConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	return New(client, cfg), nil
}

// New wraps an existing client.
func New(client pahomqtt.Client, cfg Config) *Publisher {
	prefix := cfg.TopicPrefix
	if prefix == "" {
		prefix = defaultTopicPrefix
	}
	return &Publisher{client: client, prefix: prefix, qos: cfg.QoS, timeout: defaultPublishTimeout}
}

func buildClientOptions(cfg Config) *pahomqtt.ClientOptions {
	opts := pahomqtt.NewClientOptions()
	opts.AddBroker(cfg.BrokerURL)
	opts.SetClientID(cfg.ClientID)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(defaultConnectTimeout)
	opts.SetKeepAlive(defaultKeepAlive)
	opts.SetMaxReconnectInterval(30 * time.Second)

	return opts
}

// Topics for published events.
func (p *Publisher) RegisteredTopic() string { return p.prefix + "/devices/registered" }
func (p *Publisher) NotesTopic() string      { return p.prefix + "/devices/notes" }

type deviceEvent struct {
	FullID      string    `json:"fullID"`
	UniqueID    string    `json:"uniqueID"`
	Type        string    `json:"type"`
	Subtype     string    `json:"subtype"`
	Code        int       `json:"code"`
	Description string    `json:"description"`
	EstValue    float64   `json:"estValue"`
	CreatedBy   string    `json:"createdBy"`
	Timestamp   time.Time `json:"timestamp"`
}

type noteEvent struct {
	FullID    string    `json:"fullID"`
	Note      string    `json:"note"`
	Code      int       `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}

// DeviceRegistered publishes a summary of a newly stored device.
func (p *Publisher) DeviceRegistered(ctx context.Context, d domain.Device) error {
	return p.publish(ctx, p.RegisteredTopic(), deviceEvent{
		FullID:      d.FullID,
		UniqueID:    d.UniqueID,
		Type:        string(d.Type),
		Subtype:     string(d.Subtype),
		Code:        d.Code,
		Description: d.Description,
		EstValue:    d.EstValue,
		CreatedBy:   d.CreatedBy,
		Timestamp:   d.CreatedAt,
	})
}

// NoteAppended publishes a note added to an existing device.
func (p *Publisher) NoteAppended(ctx context.Context, fullID string, n domain.Note) error {
	return p.publish(ctx, p.NotesTopic(), noteEvent{
		FullID:    fullID,
		Note:      n.Note,
		Code:      n.Code,
		Timestamp: n.CreatedAt,
	})
}

func (p *Publisher) publish(ctx context.Context, topic string, v any) error {
	if !p.client.IsConnected() {
		return ErrNotConnected
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("mqtt: encode %s: %w", topic, err)
	}

	token := p.client.Publish(topic, p.qos, false, payload)

	timeout := p.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
	}
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("%w: %s: timeout after %v", ErrPublishFailed, topic, timeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPublishFailed, topic, err)
	}
	return nil
}

// HealthCheck reports whether the broker connection is up.
func (p *Publisher) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("mqtt health check: %w", err)
	}
	if !p.client.IsConnected() {
		return ErrNotConnected
	}
	return nil
}

// Close disconnects, giving in-flight publishes a moment to finish.
func (p *Publisher) Close() error {
	if p.client == nil {
		return nil
	}
	p.client.Disconnect(defaultDisconnectQuiesce)
	return nil
}

var _ service.EventPublisher = (*Publisher)(nil)
