package discord_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"delight/pkg/discord"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ExecuteWebhook(t *testing.T) {
	var gotPath, gotQuery string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"111","channel_id":"222"}`))
	}))
	defer server.Close()

	client := discord.NewClient(discord.Config{WebhookURL: server.URL + "/webhook"})

	msg := discord.WebhookMessage{
		Embeds:     []discord.Embed{{Title: "🍽️ Nouvelle Commande Delight", Color: discord.ColorYellow}},
		Components: []discord.Component{discord.ActionRow(discord.Button("Traiter la commande", "process_order"))},
	}
	created, err := client.ExecuteWebhook(msg)
	require.NoError(t, err)

	assert.Equal(t, "/webhook", gotPath)
	assert.Equal(t, "wait=true", gotQuery)
	assert.Equal(t, "111", created.ID)
	assert.Equal(t, "222", created.ChannelID)

	var sent discord.WebhookMessage
	require.NoError(t, json.Unmarshal(gotBody, &sent))
	require.Len(t, sent.Embeds, 1)
	assert.Equal(t, "🍽️ Nouvelle Commande Delight", sent.Embeds[0].Title)
	require.Len(t, sent.Components, 1)
	assert.Equal(t, discord.ComponentTypeActionRow, sent.Components[0].Type)
}

func TestClient_ExecuteWebhook_NotConfigured(t *testing.T) {
	client := discord.NewClient(discord.Config{})

	_, err := client.ExecuteWebhook(discord.WebhookMessage{})
	assert.ErrorIs(t, err, discord.ErrWebhookNotConfigured)
}

func TestClient_ExecuteWebhook_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad webhook", http.StatusBadRequest)
	}))
	defer server.Close()

	client := discord.NewClient(discord.Config{WebhookURL: server.URL})

	_, err := client.ExecuteWebhook(discord.WebhookMessage{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestClient_EditMessage(t *testing.T) {
	var gotMethod, gotPath, gotAuth string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := discord.NewClient(discord.Config{BotToken: "bot-token", APIBase: server.URL})

	edit := discord.WebhookMessage{
		Embeds:     []discord.Embed{{Color: discord.ColorGreen}},
		Components: []discord.Component{},
	}
	require.NoError(t, client.EditMessage("222", "111", edit))

	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/channels/222/messages/111", gotPath)
	assert.Equal(t, "Bot bot-token", gotAuth)

	// The components key must be present (not omitted) so the edit can
	// strip every control from the message.
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(gotBody, &raw))
	assert.JSONEq(t, `[]`, string(raw["components"]))
}

func TestClient_EditMessage_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "missing access", http.StatusForbidden)
	}))
	defer server.Close()

	client := discord.NewClient(discord.Config{BotToken: "bot-token", APIBase: server.URL})

	err := client.EditMessage("222", "111", discord.WebhookMessage{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestClient_EditMessage_NoToken(t *testing.T) {
	client := discord.NewClient(discord.Config{})

	err := client.EditMessage("222", "111", discord.WebhookMessage{})
	assert.Error(t, err)
}
