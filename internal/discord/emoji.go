// ABOUTME: Emoji normalization for reaction endpoints.
// ABOUTME: Converts Discord mention forms <:name:id> / <a:name:id> to name:id.

package discord

import "regexp"

// customEmojiPattern matches the <:name:id> and animated <a:name:id>
// mention forms clients paste from Discord.
var customEmojiPattern = regexp.MustCompile(`^<a?:([A-Za-z0-9_~]+):([0-9]+)>$`)

// normalizeEmoji strips the angle-bracket wrapper from custom emoji
// mentions, returning the name:id pair the reactions endpoint expects.
// Plain Unicode emoji and already-normalized custom emoji pass through
// unchanged, so the function is idempotent.
func normalizeEmoji(emoji string) string {
	if m := customEmojiPattern.FindStringSubmatch(emoji); m != nil {
		return m[1] + ":" + m[2]
	}
	return emoji
}

var normalizedCustomPattern = regexp.MustCompile(`^([A-Za-z0-9_~]+):([0-9]+)$`)

// customEmojiID returns the numeric ID of a normalized custom emoji
// (name:id form), or "" for Unicode emoji.
func customEmojiID(normalized string) string {
	if m := normalizedCustomPattern.FindStringSubmatch(normalized); m != nil {
		return m[2]
	}
	return ""
}
