// ABOUTME: Projections from Discord API payloads into the reduced shapes tools return.
// ABOUTME: Pure functions; upstream noise fields are dropped, defaults applied.

package discord

import "encoding/json"

// guild is the subset of the Discord guild object we read.
type guild struct {
	ID                       string  `json:"id"`
	Name                     string  `json:"name"`
	OwnerID                  string  `json:"owner_id"`
	ApproximateMemberCount   *int    `json:"approximate_member_count"`
	ApproximatePresenceCount *int    `json:"approximate_presence_count"`
	Icon                     *string `json:"icon"`
	Description              *string `json:"description"`
	PremiumTier              int     `json:"premium_tier"`
	ExplicitContentFilter    int     `json:"explicit_content_filter"`
}

// ServerInfo is the caller-facing projection of a guild. The approximate
// counts are only present when the guild was fetched with_counts; absent
// values surface as "N/A" rather than zero.
type ServerInfo struct {
	Name                  string  `json:"name"`
	ID                    string  `json:"id"`
	OwnerID               string  `json:"owner_id"`
	MemberCount           any     `json:"member_count"`
	PresenceCount         any     `json:"presence_count"`
	IconHash              *string `json:"icon_hash"`
	Description           *string `json:"description"`
	PremiumTier           int     `json:"premium_tier"`
	ExplicitContentFilter int     `json:"explicit_content_filter"`
}

func formatServerInfo(g guild) ServerInfo {
	info := ServerInfo{
		Name:                  g.Name,
		ID:                    g.ID,
		OwnerID:               g.OwnerID,
		MemberCount:           "N/A",
		PresenceCount:         "N/A",
		IconHash:              g.Icon,
		Description:           g.Description,
		PremiumTier:           g.PremiumTier,
		ExplicitContentFilter: g.ExplicitContentFilter,
	}
	if g.ApproximateMemberCount != nil {
		info.MemberCount = *g.ApproximateMemberCount
	}
	if g.ApproximatePresenceCount != nil {
		info.PresenceCount = *g.ApproximatePresenceCount
	}
	return info
}

// user is the subset of the Discord user object we read.
type user struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	Discriminator string  `json:"discriminator"`
	GlobalName    *string `json:"global_name"`
	Bot           bool    `json:"bot"`
	Avatar        *string `json:"avatar"`
}

// User is the caller-facing projection of a Discord user.
type User struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	Discriminator string  `json:"discriminator"`
	GlobalName    *string `json:"global_name"`
	IsBot         bool    `json:"is_bot"`
	AvatarHash    *string `json:"avatar_hash"`
}

func formatUser(u user) User {
	return User{
		ID:            u.ID,
		Username:      u.Username,
		Discriminator: u.Discriminator,
		GlobalName:    u.GlobalName,
		IsBot:         u.Bot,
		AvatarHash:    u.Avatar,
	}
}

// guildMember is the subset of the Discord guild member object we read.
type guildMember struct {
	User     user     `json:"user"`
	Nick     *string  `json:"nick"`
	JoinedAt string   `json:"joined_at"`
	Roles    []string `json:"roles"`
}

// Member is the caller-facing projection of a guild member.
type Member struct {
	ID            string   `json:"id"`
	Username      string   `json:"username"`
	Discriminator string   `json:"discriminator"`
	GlobalName    *string  `json:"global_name"`
	Nick          *string  `json:"nick"`
	JoinedAt      string   `json:"joined_at"`
	Roles         []string `json:"roles"`
}

func formatMember(m guildMember) Member {
	roles := m.Roles
	if roles == nil {
		roles = []string{}
	}
	return Member{
		ID:            m.User.ID,
		Username:      m.User.Username,
		Discriminator: m.User.Discriminator,
		GlobalName:    m.User.GlobalName,
		Nick:          m.Nick,
		JoinedAt:      m.JoinedAt,
		Roles:         roles,
	}
}

// channelMessage is the subset of the Discord message object we read.
type channelMessage struct {
	ID        string            `json:"id"`
	Content   string            `json:"content"`
	Timestamp string            `json:"timestamp"`
	Author    user              `json:"author"`
	Reactions []json.RawMessage `json:"reactions"`
}

// MessageAuthor is the author block inside a formatted message.
type MessageAuthor struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	Discriminator string  `json:"discriminator"`
	GlobalName    *string `json:"global_name"`
	IsBot         bool    `json:"is_bot"`
}

// Message is the caller-facing projection of a channel message.
// Reactions are passed through untouched, defaulting to an empty list.
type Message struct {
	ID        string            `json:"id"`
	Content   string            `json:"content"`
	Timestamp string            `json:"timestamp"`
	Author    MessageAuthor     `json:"author"`
	Reactions []json.RawMessage `json:"reactions"`
}

func formatMessage(m channelMessage) Message {
	reactions := m.Reactions
	if reactions == nil {
		reactions = []json.RawMessage{}
	}
	return Message{
		ID:        m.ID,
		Content:   m.Content,
		Timestamp: m.Timestamp,
		Author: MessageAuthor{
			ID:            m.Author.ID,
			Username:      m.Author.Username,
			Discriminator: m.Author.Discriminator,
			GlobalName:    m.Author.GlobalName,
			IsBot:         m.Author.Bot,
		},
		Reactions: reactions,
	}
}

// previewLimit is the maximum length of a send_message content preview.
const previewLimit = 50

// contentPreview truncates content to previewLimit characters, appending
// an ellipsis marker only when truncation occurred.
func contentPreview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLimit {
		return content
	}
	return string(runes[:previewLimit]) + "..."
}

// clampLimit forces a list limit into [min, max].
func clampLimit(limit, min, max int) int {
	if limit < min {
		return min
	}
	if limit > max {
		return max
	}
	return limit
}
