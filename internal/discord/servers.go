// ABOUTME: Server (guild) tools: get_server_info and list_members.
// ABOUTME: Limits are clamped into [1,1000] before the upstream call.

package discord

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/2389/mcp-bridge/internal/tools"
)

// ServerPack creates the pack of guild-level tools.
func ServerPack(c *Client) *tools.Pack {
	h := &serverHandlers{client: c}
	return &tools.Pack{
		ID: "discord:servers",
		Tools: []tools.Tool{
			{
				Definition: tools.Definition{
					Name:        "get_server_info",
					Description: "Retrieve detailed information about a Discord server (guild)",
					InputSchema: json.RawMessage(`{"type":"object","properties":{"server_id":{"type":"string","description":"The ID of the Discord server (guild) to retrieve information for"}},"required":["server_id"]}`),
				},
				Handler: h.GetServerInfo,
			},
			{
				Definition: tools.Definition{
					Name:        "list_members",
					Description: "Get a list of members in a server with customizable result limits",
					InputSchema: json.RawMessage(`{"type":"object","properties":{"server_id":{"type":"string","description":"The ID of the Discord server (guild)"},"limit":{"type":"integer","description":"The maximum number of members to return (1-1000)","minimum":1,"maximum":1000,"default":100}},"required":["server_id"]}`),
				},
				Handler: h.ListMembers,
			},
		},
	}
}

type serverHandlers struct {
	client *Client
}

type getServerInfoInput struct {
	ServerID string `json:"server_id"`
}

func (h *serverHandlers) GetServerInfo(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in getServerInfoInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if in.ServerID == "" {
		return nil, fmt.Errorf("server_id is required")
	}

	data, err := h.client.api.Get(ctx, fmt.Sprintf("/guilds/%s?with_counts=true", in.ServerID))
	if err != nil {
		return nil, err
	}

	var g guild
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("decoding guild: %w", err)
	}
	return json.Marshal(formatServerInfo(g))
}

type listMembersInput struct {
	ServerID string `json:"server_id"`
	Limit    *int   `json:"limit"`
}

func (h *serverHandlers) ListMembers(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in listMembersInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if in.ServerID == "" {
		return nil, fmt.Errorf("server_id is required")
	}

	limit := 100
	if in.Limit != nil {
		limit = *in.Limit
	}
	limit = clampLimit(limit, 1, 1000)

	data, err := h.client.api.Get(ctx, fmt.Sprintf("/guilds/%s/members?limit=%d", in.ServerID, limit))
	if err != nil {
		return nil, err
	}

	var raw []guildMember
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding members: %w", err)
	}

	members := make([]Member, 0, len(raw))
	for _, m := range raw {
		members = append(members, formatMember(m))
	}
	return json.Marshal(members)
}
