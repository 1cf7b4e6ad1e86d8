package tool_hotelsearch

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagent/voyagent/src/agent"
	"github.com/voyagent/voyagent/src/aisdk"
	"github.com/voyagent/voyagent/src/travelapi"
)

func testToolbox(t *testing.T, handler http.HandlerFunc) *agent.DefaultToolbox {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := travelapi.NewClient(travelapi.Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)
	tool, err := Tool(client)
	require.NoError(t, err)

	toolbox := agent.NewToolbox[agent.Tool]()
	require.NoError(t, toolbox.RegisterTool(tool))
	toolbox.RegisterMiddleware(agent.LoggingMiddleware(slog.Default()))
	return toolbox
}

func call(t *testing.T, input HotelSearchInput) *aisdk.ToolCall {
	t.Helper()
	args, err := json.Marshal(input)
	require.NoError(t, err)
	return &aisdk.ToolCall{Function: aisdk.FunctionCall{Name: Name, Arguments: args}}
}

func TestExecuteThroughToolbox(t *testing.T) {
	toolbox := testToolbox(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "google_hotels", r.URL.Query().Get("engine"))
		assert.Equal(t, "new york", r.URL.Query().Get("q"))
		assert.Equal(t, "8", r.URL.Query().Get("sort_by"))
		assert.Equal(t, "1", r.URL.Query().Get("adults"), "adults defaults to 1")
		assert.Equal(t, "1", r.URL.Query().Get("rooms"), "rooms defaults to 1")

		w.Write([]byte(`{
			"properties": [{
				"name": "The Manhattan",
				"hotel_class": "4-star hotel",
				"overall_rating": 4.4
			}]
		}`))
	})

	resp, err := toolbox.ExecuteTool(context.Background(), call(t, HotelSearchInput{
		Query:        "new york",
		CheckInDate:  "2025-10-01",
		CheckOutDate: "2025-10-07",
		SortBy:       travelapi.SortByHighestRating,
	}))
	require.NoError(t, err)
	require.False(t, resp.IsError)

	var out HotelSearchOutput
	require.NoError(t, json.Unmarshal(resp.Content, &out))
	assert.Equal(t, "list", out.Kind)
	require.Len(t, out.Options, 1)
	assert.Equal(t, "The Manhattan", out.Options[0].Name)
}

func TestExecuteMissingRequiredField(t *testing.T) {
	toolbox := testToolbox(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no search expected for an invalid call")
	})

	resp, err := toolbox.ExecuteTool(context.Background(), call(t, HotelSearchInput{Query: "new york"}))
	require.NoError(t, err)
	assert.True(t, resp.IsError)
	assert.Contains(t, string(resp.Content), "check_in_date")
}

func TestExecuteUnknownTool(t *testing.T) {
	toolbox := testToolbox(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no search expected for an unknown tool")
	})

	_, err := toolbox.ExecuteTool(context.Background(), &aisdk.ToolCall{
		Function: aisdk.FunctionCall{Name: "book_cruise", Arguments: json.RawMessage(`{}`)},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
