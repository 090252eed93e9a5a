// ABOUTME: Channel tools: create_text_channel.
// ABOUTME: Optional fields are omitted from the upstream body when absent.

package discord

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/2389/mcp-bridge/internal/tools"
)

// ChannelPack creates the pack of channel management tools.
func ChannelPack(c *Client) *tools.Pack {
	h := &channelHandlers{client: c}
	return &tools.Pack{
		ID: "discord:channels",
		Tools: []tools.Tool{
			{
				Definition: tools.Definition{
					Name:        "create_text_channel",
					Description: "Create a new text channel with optional category and topic",
					InputSchema: json.RawMessage(`{"type":"object","properties":{"server_id":{"type":"string","description":"The ID of the Discord server (guild) where the channel will be created"},"name":{"type":"string","description":"The name for the new text channel"},"topic":{"type":"string","description":"The topic for the new channel"},"category_id":{"type":"string","description":"The ID of the category (parent channel) to place the new channel under"}},"required":["server_id","name"]}`),
				},
				Handler: h.CreateTextChannel,
			},
		},
	}
}

type channelHandlers struct {
	client *Client
}

type createTextChannelInput struct {
	ServerID   string `json:"server_id"`
	Name       string `json:"name"`
	Topic      string `json:"topic"`
	CategoryID string `json:"category_id"`
}

// createdChannel is the reduced projection of the created channel.
type createdChannel struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Topic    *string `json:"topic"`
	ParentID *string `json:"parent_id"`
}

func (h *channelHandlers) CreateTextChannel(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in createTextChannelInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if in.ServerID == "" {
		return nil, fmt.Errorf("server_id is required")
	}
	if in.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	// Optional fields are added only when present, never sent as null.
	body := map[string]any{
		"name": in.Name,
		"type": 0, // text channel
	}
	if in.Topic != "" {
		body["topic"] = in.Topic
	}
	if in.CategoryID != "" {
		body["parent_id"] = in.CategoryID
	}

	data, err := h.client.api.Post(ctx, fmt.Sprintf("/guilds/%s/channels", in.ServerID), body)
	if err != nil {
		return nil, err
	}

	var ch createdChannel
	if err := json.Unmarshal(data, &ch); err != nil {
		return nil, fmt.Errorf("decoding channel: %w", err)
	}
	return json.Marshal(ch)
}
