// ABOUTME: User tools: get_user_info.
// ABOUTME: Projects the Discord user object into the reduced User shape.

package discord

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/2389/mcp-bridge/internal/tools"
)

// UserPack creates the pack of user lookup tools.
func UserPack(c *Client) *tools.Pack {
	h := &userHandlers{client: c}
	return &tools.Pack{
		ID: "discord:users",
		Tools: []tools.Tool{
			{
				Definition: tools.Definition{
					Name:        "get_user_info",
					Description: "Retrieve information about a specific Discord user",
					InputSchema: json.RawMessage(`{"type":"object","properties":{"user_id":{"type":"string","description":"The ID of the Discord user to retrieve information for"}},"required":["user_id"]}`),
				},
				Handler: h.GetUserInfo,
			},
		},
	}
}

type userHandlers struct {
	client *Client
}

type getUserInfoInput struct {
	UserID string `json:"user_id"`
}

func (h *userHandlers) GetUserInfo(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in getUserInfoInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if in.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	data, err := h.client.api.Get(ctx, fmt.Sprintf("/users/%s", in.UserID))
	if err != nil {
		return nil, err
	}

	var u user
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("decoding user: %w", err)
	}
	return json.Marshal(formatUser(u))
}
