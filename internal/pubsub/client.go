package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// New connects to Pub/Sub in projectID.
func New(ctx context.Context, projectID string) (PubSubClient, error) {
	c, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}
	return &client{client: c}, nil
}

func (c *client) SendMessage(ctx context.Context, topic EventType, data any) error {
	msgpackData, err := msgpack.Marshal(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	result := c.client.Topic(string(topic)).Publish(ctx, &pubsub.Message{Data: msgpackData})
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", topic)
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	log.Debug("Published message", "topic", topic, "server_id", serverID)
	return nil
}

func (c *client) ProcessMessage(data []byte, returnValue any) error {
	if err := msgpack.Unmarshal(data, returnValue); err != nil {
		log.Error("MessagePack unmarshal error", "error", err)
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}
	return nil
}

func (c *client) Close() error {
	return c.client.Close()
}

// DecodePush unwraps a push delivery body and returns the raw message data.
func DecodePush(body []byte) (messageID string, data []byte, err error) {
	var env pushEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", nil, fmt.Errorf("failed to unmarshal push envelope: %w", err)
	}
	data, err = base64.StdEncoding.DecodeString(env.Message.Data)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode push data: %w", err)
	}
	return env.Message.ID, data, nil
}
