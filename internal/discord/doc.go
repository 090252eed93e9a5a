// Package discord exposes the Discord Bot API as MCP tool packs.
//
// # Packs
//
// Four packs cover the adapter's nine tools:
//
//	discord:servers  - get_server_info, list_members
//	discord:messages - send_message, read_messages, add_reaction,
//	                   add_multiple_reactions, remove_reaction
//	discord:channels - create_text_channel
//	discord:users    - get_user_info
//
// All packs share one Client carrying the bot token; the token is
// validated at startup. Responses are projected into reduced shapes
// (ServerInfo, Member, Message, User) that drop upstream noise fields.
//
// # Reactions
//
// Reaction tools return structured {success, error, ...} results rather
// than propagating errors, so a caller scripting several reactions can
// branch on each outcome. Custom emoji (name:id form) are validated
// against the owning guild's emoji list before the reaction call.
package discord
