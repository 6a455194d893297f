package blizzard

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacadeLookup(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/wow/mount/308", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{"id": 308})
	})

	game, err := client.Game("wow")
	require.NoError(t, err)
	assert.Contains(t, game.Categories(), "game_data")
	assert.Contains(t, game.Categories(), "profile")

	api, err := game.API("game_data")
	require.NoError(t, err)
	assert.Contains(t, api.Methods(), "get_mount")

	op, err := api.Method("get_mount")
	require.NoError(t, err)

	body, err := op.Do(context.Background(), Params{
		"region": "us", "locale": "en_US", "mount_id": "308",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 308, body["id"])
}

func TestFacadeUnknownLookups(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := client.Game("warcraft4")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	game, err := client.Game("wow")
	require.NoError(t, err)

	_, err = game.API("esports")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	api, err := game.API("game_data")
	require.NoError(t, err)

	_, err = api.Method("get_unicorn")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFacadeAndCallShareOperations(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	game, err := client.Game("hearthstone")
	require.NoError(t, err)
	api, err := game.API("game_data")
	require.NoError(t, err)

	fromFacade, err := api.Method("get_card")
	require.NoError(t, err)
	fromTable, err := client.Operation("get_card")
	require.NoError(t, err)

	assert.Same(t, fromTable, fromFacade)
}
