// ABOUTME: Handler tests for message and reaction tools against a fake Discord API.
// ABOUTME: Exercises clamping, previews, emoji validation, and partial failure.

package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient builds a Client pointed at a fake Discord API.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(ClientConfig{Token: "test-token", APIBase: srv.URL})
	require.NoError(t, err)
	return client
}

func TestSendMessagePreview(t *testing.T) {
	var gotBody map[string]string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /channels/123/messages", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"999"}`))
	})
	client := newTestClient(t, mux)
	h := &messageHandlers{client: client}

	long := ""
	for i := 0; i < 60; i++ {
		long += "a"
	}
	out, err := h.SendMessage(context.Background(), json.RawMessage(`{"channel_id":"123","content":"`+long+`"}`))
	require.NoError(t, err)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(out, &resp))
	assert.Equal(t, "999", resp["message_id"])
	assert.Equal(t, "123", resp["channel_id"])
	assert.Len(t, resp["content_preview"], 53) // 50 chars + "..."
	assert.Equal(t, long, gotBody["content"], "full content must be sent upstream")
}

func TestSendMessageMissingChannel(t *testing.T) {
	client := newTestClient(t, http.NewServeMux())
	h := &messageHandlers{client: client}

	_, err := h.SendMessage(context.Background(), json.RawMessage(`{"content":"hi"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel_id")
}

func TestReadMessagesClampsLimit(t *testing.T) {
	var gotLimit string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /channels/123/messages", func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"1","content":"hi","timestamp":"t","author":{"id":"2","username":"bob"}}]`))
	})
	client := newTestClient(t, mux)
	h := &messageHandlers{client: client}

	out, err := h.ReadMessages(context.Background(), json.RawMessage(`{"channel_id":"123","limit":5000}`))
	require.NoError(t, err)
	assert.Equal(t, "100", gotLimit, "limit must be clamped to 100")

	var msgs []Message
	require.NoError(t, json.Unmarshal(out, &msgs))
	require.Len(t, msgs, 1)
	assert.Equal(t, "bob", msgs[0].Author.Username)
	assert.NotNil(t, msgs[0].Reactions)
}

func TestAddReactionUnicode(t *testing.T) {
	var gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	}))
	h := &messageHandlers{client: client}

	out, err := h.AddReaction(context.Background(), json.RawMessage(`{"channel_id":"1","message_id":"2","emoji":"😀"}`))
	require.NoError(t, err)

	var result reactionResult
	require.NoError(t, json.Unmarshal(out, &result))
	assert.True(t, result.Success)
	assert.Equal(t, "😀", result.Emoji)
	assert.Contains(t, gotPath, "/reactions/%F0%9F%98%80/@me")
}

func TestAddReactionCustomEmojiValidated(t *testing.T) {
	var reactionCalled bool
	mux := http.NewServeMux()
	mux.HandleFunc("GET /channels/1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1","guild_id":"77"}`))
	})
	mux.HandleFunc("GET /guilds/77/emojis", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"123","name":"foo"}]`))
	})
	mux.HandleFunc("PUT /channels/1/messages/2/reactions/", func(w http.ResponseWriter, r *http.Request) {
		reactionCalled = true
		w.WriteHeader(http.StatusNoContent)
	})
	client := newTestClient(t, mux)
	h := &messageHandlers{client: client}

	t.Run("known emoji succeeds", func(t *testing.T) {
		out, err := h.AddReaction(context.Background(), json.RawMessage(`{"channel_id":"1","message_id":"2","emoji":"<:foo:123>"}`))
		require.NoError(t, err)
		var result reactionResult
		require.NoError(t, json.Unmarshal(out, &result))
		assert.True(t, result.Success)
		assert.True(t, reactionCalled)
	})

	t.Run("unknown emoji rejected before reaction call", func(t *testing.T) {
		reactionCalled = false
		out, err := h.AddReaction(context.Background(), json.RawMessage(`{"channel_id":"1","message_id":"2","emoji":"<:bad:999>"}`))
		require.NoError(t, err)
		var result reactionResult
		require.NoError(t, json.Unmarshal(out, &result))
		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "999")
		assert.Equal(t, "<:bad:999>", result.Emoji)
		assert.Equal(t, "2", result.MessageID)
		assert.False(t, reactionCalled, "reaction call must not be attempted after failed validation")
	})
}

func TestAddMultipleReactionsPartialFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /channels/1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1","guild_id":"77"}`))
	})
	mux.HandleFunc("GET /guilds/77/emojis", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`)) // no custom emoji in this guild
	})
	mux.HandleFunc("PUT /", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	client := newTestClient(t, mux)
	h := &messageHandlers{client: client}

	out, err := h.AddMultipleReactions(context.Background(),
		json.RawMessage(`{"channel_id":"1","message_id":"2","emojis":["😀","<:bad:999>"]}`))
	require.NoError(t, err)

	var result multipleReactionsResult
	require.NoError(t, json.Unmarshal(out, &result))
	assert.False(t, result.Success)
	assert.Equal(t, []string{"😀"}, result.SuccessfulReactions)
	require.Len(t, result.FailedReactions, 1)
	assert.Equal(t, "<:bad:999>", result.FailedReactions[0].Emoji)
	assert.Contains(t, result.Summary, "1 of 2")
}

func TestRemoveReaction(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	}))
	h := &messageHandlers{client: client}

	out, err := h.RemoveReaction(context.Background(), json.RawMessage(`{"channel_id":"1","message_id":"2","emoji":"<a:bar:456>"}`))
	require.NoError(t, err)

	var result reactionResult
	require.NoError(t, json.Unmarshal(out, &result))
	assert.True(t, result.Success)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Contains(t, gotPath, "/reactions/bar:456/@me")
}

func TestAddReactionUpstreamFailureIsStructured(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"Missing Permissions"}`))
	}))
	h := &messageHandlers{client: client}

	out, err := h.AddReaction(context.Background(), json.RawMessage(`{"channel_id":"1","message_id":"2","emoji":"😀"}`))
	require.NoError(t, err, "upstream rejection surfaces in the result, not as a handler error")

	var result reactionResult
	require.NoError(t, json.Unmarshal(out, &result))
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "Missing Permissions")
}
