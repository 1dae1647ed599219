// Package mqtt bridges the bot to an MQTT broker. Moderation events are
// published under <prefix>/events/<kind> and read-only state is served to
// <prefix>/request/<name> with replies on <prefix>/response/<name>/<id>.
package mqtt

import (
	"context"
	"fmt"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/TambayanDev/TambayanBot/pkg/logger"
	"github.com/TambayanDev/TambayanBot/pkg/models"
)

// DefaultPrefix is the root of every topic the bot uses.
const DefaultPrefix = "tambayan"

// MqttRequest represents an MQTT request message
type MqttRequest struct {
	CorrelationID string      `json:"correlationId"`
	Payload       interface{} `json:"payload,omitempty"`
}

// MqttResponse represents an MQTT response message
type MqttResponse struct {
	CorrelationID string      `json:"correlationId"`
	Data          interface{} `json:"data"`
	Error         string      `json:"error,omitempty"`
}

// Client is the part of paho.Client the communicator uses.
type Client interface {
	IsConnected() bool
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
}

// Options configures the broker connection.
type Options struct {
	Host     string
	Port     string
	Username string
	Password string
	ClientID string
	Prefix   string
}

// Communicator handles MQTT communication
type Communicator struct {
	client Client
	prefix string
}

// RequestHandler answers one request. The payload always carries "_topic".
type RequestHandler func(payload map[string]interface{}) (interface{}, error)

// Connect dials the broker. A failed first attempt is logged and paho keeps
// retrying in the background.
func Connect(opts Options) *Communicator {
	clientID := opts.ClientID
	if clientID == "" {
		clientID = "tambayan-bot"
	}
	uniqueID := fmt.Sprintf("%s_%s", clientID, uuid.New().String())

	o := paho.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%s", opts.Host, opts.Port)).
		SetClientID(uniqueID).
		SetUsername(opts.Username).
		SetPassword(opts.Password).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(func(c paho.Client) {
			logger.Success("Connected to MQTT broker as "+clientID, "MQTT")
		}).
		SetConnectionLostHandler(func(c paho.Client, err error) {
			logger.Error(fmt.Sprintf("MQTT connection lost: %v", err), "MQTT")
		})

	client := paho.NewClient(o)
	token := client.Connect()
	if token.WaitTimeout(10*time.Second) && token.Error() != nil {
		logger.Error(fmt.Sprintf("MQTT connection error: %v", token.Error()), "MQTT")
	}

	return New(client, opts.Prefix)
}

// New wraps an existing client.
func New(client Client, prefix string) *Communicator {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Communicator{client: client, prefix: strings.TrimSuffix(prefix, "/")}
}

// Destroy closes the MQTT connection
func (mc *Communicator) Destroy() {
	if mc.IsConnected() {
		mc.client.Disconnect(250)
		logger.System("MQTT connection closed.", "MQTT")
		return
	}
	logger.Warn("MQTT client was not connected, nothing to close.", "MQTT")
}

// IsConnected returns true if connected to the broker
func (mc *Communicator) IsConnected() bool {
	return mc.client != nil && mc.client.IsConnected()
}

// Topic joins parts under the communicator's prefix.
func (mc *Communicator) Topic(parts ...string) string {
	return mc.prefix + "/" + strings.Join(parts, "/")
}

// Publish sends payload as JSON to topic
func (mc *Communicator) Publish(topic string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	token := mc.client.Publish(topic, 0, false, data)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish to %s timed out", topic)
	}
	return token.Error()
}

// Name identifies the communicator as a journal sink.
func (mc *Communicator) Name() string { return "mqtt" }

// Write publishes a moderation event to <prefix>/events/<kind>.
func (mc *Communicator) Write(_ context.Context, ev models.ModerationEvent) error {
	if !mc.IsConnected() {
		return fmt.Errorf("mqtt not connected")
	}
	return mc.Publish(mc.Topic("events", string(ev.Kind)), ev)
}

// On registers a handler for <prefix>/request/<name>.
func (mc *Communicator) On(name string, callback RequestHandler) error {
	topic := mc.Topic("request", name)

	token := mc.client.Subscribe(topic, 0, func(_ paho.Client, msg paho.Message) {
		var request MqttRequest
		if err := json.Unmarshal(msg.Payload(), &request); err != nil {
			logger.Error(fmt.Sprintf("Error parsing MQTT request: %v", err), "MQTT")
			return
		}

		actual := strings.TrimPrefix(msg.Topic(), mc.prefix+"/request/")
		payload := make(map[string]interface{})
		if pm, ok := request.Payload.(map[string]interface{}); ok {
			payload = pm
		}
		payload["_topic"] = actual

		response := MqttResponse{CorrelationID: request.CorrelationID}
		data, err := callback(payload)
		if err != nil {
			response.Error = err.Error()
		} else {
			response.Data = data
		}

		if err := mc.Publish(mc.Topic("response", actual, request.CorrelationID), response); err != nil {
			logger.Warn(fmt.Sprintf("Could not answer %s: %v", actual, err), "MQTT")
		}
	})

	token.Wait()
	if err := token.Error(); err != nil {
		logger.Error(fmt.Sprintf("Error subscribing to topic %s: %v", topic, err), "MQTT")
		return err
	}
	return nil
}
