// ABOUTME: Message tools: send/read messages and the reaction family.
// ABOUTME: Reaction tools return structured success/failure results, not errors.

package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/2389/mcp-bridge/internal/tools"
)

// MessagePack creates the pack of message and reaction tools.
func MessagePack(c *Client) *tools.Pack {
	h := &messageHandlers{client: c}
	return &tools.Pack{
		ID: "discord:messages",
		Tools: []tools.Tool{
			{
				Definition: tools.Definition{
					Name:        "send_message",
					Description: "Send a message to a specified channel",
					InputSchema: json.RawMessage(`{"type":"object","properties":{"channel_id":{"type":"string","description":"The ID of the channel to send the message to"},"content":{"type":"string","description":"The text content of the message"}},"required":["channel_id","content"]}`),
				},
				Handler: h.SendMessage,
			},
			{
				Definition: tools.Definition{
					Name:        "read_messages",
					Description: "Retrieve recent messages from a channel",
					InputSchema: json.RawMessage(`{"type":"object","properties":{"channel_id":{"type":"string","description":"The ID of the channel to read messages from"},"limit":{"type":"integer","description":"The maximum number of messages to retrieve (1-100)","minimum":1,"maximum":100,"default":50}},"required":["channel_id"]}`),
				},
				Handler: h.ReadMessages,
			},
			{
				Definition: tools.Definition{
					Name:        "add_reaction",
					Description: "Add a single emoji reaction to a message",
					InputSchema: json.RawMessage(`{"type":"object","properties":{"channel_id":{"type":"string","description":"The ID of the channel containing the message"},"message_id":{"type":"string","description":"The ID of the message to add the reaction to"},"emoji":{"type":"string","description":"The emoji to add as a reaction. Can be a standard Unicode emoji or a custom emoji in the format name:id"}},"required":["channel_id","message_id","emoji"]}`),
				},
				Handler: h.AddReaction,
			},
			{
				Definition: tools.Definition{
					Name:        "add_multiple_reactions",
					Description: "Add multiple emoji reactions to a message",
					InputSchema: json.RawMessage(`{"type":"object","properties":{"channel_id":{"type":"string","description":"The ID of the channel containing the message"},"message_id":{"type":"string","description":"The ID of the message to add reactions to"},"emojis":{"type":"array","items":{"type":"string"},"description":"A list of emojis to add. Each can be Unicode or custom format name:id"}},"required":["channel_id","message_id","emojis"]}`),
				},
				Handler: h.AddMultipleReactions,
			},
			{
				Definition: tools.Definition{
					Name:        "remove_reaction",
					Description: "Remove the bot's own reaction from a message",
					InputSchema: json.RawMessage(`{"type":"object","properties":{"channel_id":{"type":"string","description":"The ID of the channel containing the message"},"message_id":{"type":"string","description":"The ID of the message to remove the reaction from"},"emoji":{"type":"string","description":"The emoji reaction to remove. Can be Unicode or custom format name:id"}},"required":["channel_id","message_id","emoji"]}`),
				},
				Handler: h.RemoveReaction,
			},
		},
	}
}

type messageHandlers struct {
	client *Client
}

type sendMessageInput struct {
	ChannelID string `json:"channel_id"`
	Content   string `json:"content"`
}

func (h *messageHandlers) SendMessage(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in sendMessageInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if in.ChannelID == "" {
		return nil, fmt.Errorf("channel_id is required")
	}
	if in.Content == "" {
		return nil, fmt.Errorf("content is required")
	}

	data, err := h.client.api.Post(ctx, fmt.Sprintf("/channels/%s/messages", in.ChannelID), map[string]string{"content": in.Content})
	if err != nil {
		return nil, err
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &created); err != nil {
		return nil, fmt.Errorf("decoding message: %w", err)
	}

	return json.Marshal(map[string]string{
		"message_id":      created.ID,
		"channel_id":      in.ChannelID,
		"content_preview": contentPreview(in.Content),
	})
}

type readMessagesInput struct {
	ChannelID string `json:"channel_id"`
	Limit     *int   `json:"limit"`
}

func (h *messageHandlers) ReadMessages(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in readMessagesInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if in.ChannelID == "" {
		return nil, fmt.Errorf("channel_id is required")
	}

	limit := 50
	if in.Limit != nil {
		limit = *in.Limit
	}
	limit = clampLimit(limit, 1, 100)

	data, err := h.client.api.Get(ctx, fmt.Sprintf("/channels/%s/messages?limit=%d", in.ChannelID, limit))
	if err != nil {
		return nil, err
	}

	var raw []channelMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding messages: %w", err)
	}

	messages := make([]Message, 0, len(raw))
	for _, m := range raw {
		messages = append(messages, formatMessage(m))
	}
	return json.Marshal(messages)
}

type reactionInput struct {
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`
	Emoji     string `json:"emoji"`
}

// reactionResult is the structured outcome of a single reaction
// operation. Identifying fields are echoed so callers scripting
// multiple calls can branch without exception handling.
type reactionResult struct {
	Success   bool   `json:"success"`
	Emoji     string `json:"emoji"`
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`
	Error     string `json:"error,omitempty"`
}

func (h *messageHandlers) AddReaction(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in reactionInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	result := h.addReaction(ctx, in.ChannelID, in.MessageID, in.Emoji)
	return json.Marshal(result)
}

func (in *reactionInput) validate() error {
	if in.ChannelID == "" {
		return fmt.Errorf("channel_id is required")
	}
	if in.MessageID == "" {
		return fmt.Errorf("message_id is required")
	}
	if in.Emoji == "" {
		return fmt.Errorf("emoji is required")
	}
	return nil
}

// addReaction normalizes and validates the emoji, then issues the
// reaction call. Failures come back as structured results.
func (h *messageHandlers) addReaction(ctx context.Context, channelID, messageID, emoji string) reactionResult {
	normalized := normalizeEmoji(emoji)
	result := reactionResult{
		Emoji:     emoji,
		ChannelID: channelID,
		MessageID: messageID,
	}

	// Custom emoji must belong to the channel's guild, checked before
	// the reaction call is attempted.
	if id := customEmojiID(normalized); id != "" {
		if err := h.validateGuildEmoji(ctx, channelID, id); err != nil {
			result.Error = err.Error()
			return result
		}
	}

	endpoint := fmt.Sprintf("/channels/%s/messages/%s/reactions/%s/@me",
		channelID, messageID, url.PathEscape(normalized))
	if _, err := h.client.api.Do(ctx, http.MethodPut, endpoint, nil, true); err != nil {
		result.Error = err.Error()
		return result
	}

	result.Success = true
	return result
}

// validateGuildEmoji confirms the custom emoji ID exists in the guild
// that owns the channel.
func (h *messageHandlers) validateGuildEmoji(ctx context.Context, channelID, emojiID string) error {
	data, err := h.client.api.Get(ctx, fmt.Sprintf("/channels/%s", channelID))
	if err != nil {
		return fmt.Errorf("fetching channel: %w", err)
	}
	var ch struct {
		GuildID string `json:"guild_id"`
	}
	if err := json.Unmarshal(data, &ch); err != nil {
		return fmt.Errorf("decoding channel: %w", err)
	}
	if ch.GuildID == "" {
		return fmt.Errorf("channel %s has no guild; custom emoji cannot be validated", channelID)
	}

	data, err = h.client.api.Get(ctx, fmt.Sprintf("/guilds/%s/emojis", ch.GuildID))
	if err != nil {
		return fmt.Errorf("fetching guild emojis: %w", err)
	}
	var emojis []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &emojis); err != nil {
		return fmt.Errorf("decoding guild emojis: %w", err)
	}

	for _, e := range emojis {
		if e.ID == emojiID {
			return nil
		}
	}
	return fmt.Errorf("custom emoji %s not found in guild %s", emojiID, ch.GuildID)
}

type multipleReactionsInput struct {
	ChannelID string   `json:"channel_id"`
	MessageID string   `json:"message_id"`
	Emojis    []string `json:"emojis"`
}

// multipleReactionsResult aggregates per-emoji outcomes.
type multipleReactionsResult struct {
	Success             bool             `json:"success"`
	ChannelID           string           `json:"channel_id"`
	MessageID           string           `json:"message_id"`
	SuccessfulReactions []string         `json:"successful_reactions"`
	FailedReactions     []reactionResult `json:"failed_reactions"`
	Summary             string           `json:"summary"`
}

func (h *messageHandlers) AddMultipleReactions(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in multipleReactionsInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if in.ChannelID == "" {
		return nil, fmt.Errorf("channel_id is required")
	}
	if in.MessageID == "" {
		return nil, fmt.Errorf("message_id is required")
	}
	if len(in.Emojis) == 0 {
		return nil, fmt.Errorf("emojis is required")
	}

	out := multipleReactionsResult{
		ChannelID:           in.ChannelID,
		MessageID:           in.MessageID,
		SuccessfulReactions: []string{},
		FailedReactions:     []reactionResult{},
	}

	// Sequential per call: upstream rate limits punish concurrent
	// reaction bursts. One emoji's failure never aborts the rest.
	for _, emoji := range in.Emojis {
		result := h.addReaction(ctx, in.ChannelID, in.MessageID, emoji)
		if result.Success {
			out.SuccessfulReactions = append(out.SuccessfulReactions, emoji)
		} else {
			out.FailedReactions = append(out.FailedReactions, result)
		}
	}

	out.Success = len(out.FailedReactions) == 0
	out.Summary = fmt.Sprintf("added %d of %d reactions to message %s",
		len(out.SuccessfulReactions), len(in.Emojis), in.MessageID)
	return json.Marshal(out)
}

func (h *messageHandlers) RemoveReaction(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in reactionInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	normalized := normalizeEmoji(in.Emoji)
	result := reactionResult{
		Emoji:     in.Emoji,
		ChannelID: in.ChannelID,
		MessageID: in.MessageID,
	}

	endpoint := fmt.Sprintf("/channels/%s/messages/%s/reactions/%s/@me",
		in.ChannelID, in.MessageID, url.PathEscape(normalized))
	if _, err := h.client.api.Do(ctx, http.MethodDelete, endpoint, nil, true); err != nil {
		result.Error = err.Error()
		return json.Marshal(result)
	}

	result.Success = true
	return json.Marshal(result)
}
