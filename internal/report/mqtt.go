// internal/report/mqtt.go
package report

import (
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// DefaultTopic is the MQTT topic for decoded messages.
const DefaultTopic = "morserx/receiver/messages"

// MQTT publishes decoded messages to an MQTT broker.
type MQTT struct {
	client paho.Client
	topic  string
}

// NewMQTT creates a reporter connected to the given broker.
func NewMQTT(broker, topic, clientID string) (*MQTT, error) {
	if topic == "" {
		topic = DefaultTopic
	}
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connect to %s: timeout", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", broker, err)
	}

	return &MQTT{client: client, topic: topic}, nil
}

// Report publishes the message as JSON. QoS 0: a missed message is
// recoverable from the console log, losing one is acceptable.
func (m *MQTT) Report(msg Message) error {
	payload, err := FormatPayload(msg)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}

	token := m.client.Publish(m.topic, 0, false, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// Close disconnects from the broker.
func (m *MQTT) Close() error {
	m.client.Disconnect(1000)
	return nil
}
