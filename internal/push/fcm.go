package push

import (
	"context"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// Client sends push notifications through Firebase Cloud Messaging
type Client struct {
	msgClient *messaging.Client
	logger    *zap.Logger
}

// NewClient creates a Client around an initialized messaging client
func NewClient(msgClient *messaging.Client, logger *zap.Logger) *Client {
	return &Client{
		msgClient: msgClient,
		logger:    logger,
	}
}

// Send delivers a single push message to the given device token
func (c *Client) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	if token == "" {
		return nil // No token, skip
	}

	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	_, err := c.msgClient.Send(ctx, message)
	if err != nil {
		c.logger.Error("Failed to send FCM message", zap.String("token", token), zap.Error(err))
		return err
	}
	return nil
}
