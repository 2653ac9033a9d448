package fcm

import (
	"context"
	"fmt"

	"footballadmin/internal/observability"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Client wraps the Firebase Cloud Messaging SDK. Devices subscribe to topics;
// every send in this system is a topic broadcast.
type Client struct {
	messaging *messaging.Client
	logger    *observability.Logger
}

// NewClient initializes the messaging client from service-account credentials
func NewClient(ctx context.Context, credentialsFile string, logger *observability.Logger) (*Client, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	msgClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create messaging client: %w", err)
	}

	return &Client{
		messaging: msgClient,
		logger:    logger,
	}, nil
}

// SendToTopic broadcasts a notification to every device subscribed to the
// topic and returns the provider-assigned message ID.
func (c *Client) SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) (string, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "push_topic", Value: topic},
		observability.Field{Key: "push_title", Value: title},
	)

	msg := &messaging.Message{
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data:  data,
		Topic: topic,
	}

	messageID, err := c.messaging.Send(ctx, msg)
	if err != nil {
		c.logger.Error(ctx, "failed to send push notification", err)
		return "", fmt.Errorf("failed to send push notification: %w", err)
	}

	c.logger.Info(ctx, "push notification sent")
	return messageID, nil
}
