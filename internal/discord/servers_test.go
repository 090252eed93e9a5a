// ABOUTME: Handler tests for guild tools against a fake Discord API.
// ABOUTME: Covers with_counts projection and member limit clamping.

package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetServerInfo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /guilds/42", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("with_counts"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id":"42","name":"My Guild","owner_id":"7",
			"approximate_member_count":150,"approximate_presence_count":12,
			"icon":"iconhash","premium_tier":1,"explicit_content_filter":2
		}`))
	})
	client := newTestClient(t, mux)
	h := &serverHandlers{client: client}

	out, err := h.GetServerInfo(context.Background(), json.RawMessage(`{"server_id":"42"}`))
	require.NoError(t, err)

	var info map[string]any
	require.NoError(t, json.Unmarshal(out, &info))
	assert.Equal(t, "My Guild", info["name"])
	assert.Equal(t, float64(150), info["member_count"])
	assert.Equal(t, float64(12), info["presence_count"])
	assert.Equal(t, "iconhash", info["icon_hash"])
	assert.Equal(t, float64(2), info["explicit_content_filter"])
}

func TestGetServerInfoMissingCounts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /guilds/42", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"42","name":"g","owner_id":"7"}`))
	})
	client := newTestClient(t, mux)
	h := &serverHandlers{client: client}

	out, err := h.GetServerInfo(context.Background(), json.RawMessage(`{"server_id":"42"}`))
	require.NoError(t, err)

	var info map[string]any
	require.NoError(t, json.Unmarshal(out, &info))
	assert.Equal(t, "N/A", info["member_count"])
	assert.Equal(t, "N/A", info["presence_count"])
}

func TestGetServerInfoMissingID(t *testing.T) {
	client := newTestClient(t, http.NewServeMux())
	h := &serverHandlers{client: client}

	_, err := h.GetServerInfo(context.Background(), json.RawMessage(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server_id")
}

func TestListMembersClampsLimit(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantLimit string
	}{
		{"over max", `{"server_id":"42","limit":5000}`, "1000"},
		{"under min", `{"server_id":"42","limit":0}`, "1"},
		{"default", `{"server_id":"42"}`, "100"},
		{"in range", `{"server_id":"42","limit":250}`, "250"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotLimit string
			mux := http.NewServeMux()
			mux.HandleFunc("GET /guilds/42/members", func(w http.ResponseWriter, r *http.Request) {
				gotLimit = r.URL.Query().Get("limit")
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`[{"user":{"id":"1","username":"alice"},"joined_at":"2024-01-01T00:00:00Z","roles":["r1"]}]`))
			})
			client := newTestClient(t, mux)
			h := &serverHandlers{client: client}

			out, err := h.ListMembers(context.Background(), json.RawMessage(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, gotLimit)

			var members []Member
			require.NoError(t, json.Unmarshal(out, &members))
			require.Len(t, members, 1)
			assert.Equal(t, "alice", members[0].Username)
			assert.Equal(t, []string{"r1"}, members[0].Roles)
		})
	}
}

func TestGetUserInfo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/9", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"9","username":"bot-user","discriminator":"0001","bot":true,"avatar":"hash"}`))
	})
	client := newTestClient(t, mux)
	h := &userHandlers{client: client}

	out, err := h.GetUserInfo(context.Background(), json.RawMessage(`{"user_id":"9"}`))
	require.NoError(t, err)

	var u map[string]any
	require.NoError(t, json.Unmarshal(out, &u))
	assert.Equal(t, "bot-user", u["username"])
	assert.Equal(t, true, u["is_bot"])
	assert.Equal(t, "hash", u["avatar_hash"])
}

func TestCreateTextChannelOptionalFields(t *testing.T) {
	var gotBody map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("POST /guilds/42/channels", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"55","name":"general","topic":null,"parent_id":null}`))
	})
	client := newTestClient(t, mux)
	h := &channelHandlers{client: client}

	t.Run("omits absent optionals", func(t *testing.T) {
		_, err := h.CreateTextChannel(context.Background(), json.RawMessage(`{"server_id":"42","name":"general"}`))
		require.NoError(t, err)
		assert.Equal(t, "general", gotBody["name"])
		assert.Equal(t, float64(0), gotBody["type"])
		_, hasTopic := gotBody["topic"]
		assert.False(t, hasTopic, "topic must be omitted entirely, not sent as null")
		_, hasParent := gotBody["parent_id"]
		assert.False(t, hasParent, "parent_id must be omitted entirely")
	})

	t.Run("includes present optionals", func(t *testing.T) {
		_, err := h.CreateTextChannel(context.Background(), json.RawMessage(`{"server_id":"42","name":"general","topic":"chat","category_id":"77"}`))
		require.NoError(t, err)
		assert.Equal(t, "chat", gotBody["topic"])
		assert.Equal(t, "77", gotBody["parent_id"])
	})
}

func TestDiscordPacksRegisterWithoutCollision(t *testing.T) {
	client := newTestClient(t, http.NewServeMux())

	names := map[string]bool{}
	total := 0
	for _, pack := range Packs(client) {
		for _, tool := range pack.Tools {
			require.False(t, names[tool.Definition.Name], "duplicate tool name %s", tool.Definition.Name)
			names[tool.Definition.Name] = true
			total++
		}
	}
	assert.Equal(t, 9, total, "the Discord adapter exposes nine tools")
}
