package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/linode-client/pkg/linode"
)

// EventsClient works with the account event feed.
type EventsClient struct {
	resourceClient
}

// NewEventsClient creates a new events client.
func NewEventsClient(doer linode.Doer, registry *linode.Registry, pageSize int) *EventsClient {
	return &EventsClient{newResourceClient(doer, registry, linode.TypeEvent, pageSize)}
}

// MarkSeen marks the event and everything older as seen.
func (c *EventsClient) MarkSeen(ctx context.Context, id string) error {
	_, err := c.action(ctx, id, "seen", nil)

	return err
}

// MarkRead marks one event as read.
func (c *EventsClient) MarkRead(ctx context.Context, id string) error {
	_, err := c.action(ctx, id, "read", nil)

	return err
}

// WaitCondition decides whether an event satisfies a wait.
type WaitCondition func(action, status string) bool

// Poll fetches the event once and reports its action and status.
func (c *EventsClient) Poll(ctx context.Context, id string) (string, string, error) {
	event, err := c.Get(ctx, id)
	if err != nil {
		return "", "", fmt.Errorf("polling event %s: %w", id, err)
	}

	action, err := event.GetString(ctx, "action")
	if err != nil {
		return "", "", err
	}

	status, err := event.GetString(ctx, "status")
	if err != nil {
		return "", "", err
	}

	return action, status, nil
}
