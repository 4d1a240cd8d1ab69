package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsersOrderedByName(t *testing.T) {
	app, db := setupTestApp(t)

	createUser(t, db, "Charlie", "charlie@example.com")
	createUser(t, db, "Alice", "alice@example.com")
	createUser(t, db, "Bob", "bob@example.com")

	resp := doRequest(t, app, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The response is a bare array, not an envelope
	var users []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	require.NoError(t, resp.Body.Close())

	require.Len(t, users, 3)
	assert.Equal(t, "Alice", users[0]["name"])
	assert.Equal(t, "Bob", users[1]["name"])
	assert.Equal(t, "Charlie", users[2]["name"])
	assert.Equal(t, "alice@example.com", users[0]["email"])
}

func TestListUsersEmpty(t *testing.T) {
	app, _ := setupTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var users []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	require.NoError(t, resp.Body.Close())
	assert.Empty(t, users)
}
