package blizzard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchPage(page, pageCount, perPage int) SearchPage {
	out := SearchPage{
		Page:        page,
		PageSize:    perPage,
		MaxPageSize: perPage,
		PageCount:   pageCount,
	}
	for i := 0; i < perPage; i++ {
		id := (page-1)*perPage + i
		var res SearchResult
		res.Key.Href = fmt.Sprintf("https://us.api.blizzard.com/data/wow/decor/%d", id)
		res.Data = map[string]interface{}{"id": float64(id)}
		out.Results = append(out.Results, res)
	}
	return out
}

func TestSearchDecodesEnvelope(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(searchPage(1, 1, 3))
	})

	page, err := client.Search(context.Background(), "search_decor", Params{
		"region": "us", "locale": "en_US", "name.en_US": "wall",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.PageCount)
	require.Len(t, page.Results, 3)
	assert.Contains(t, page.Results[0].Key.Href, "/data/wow/decor/0")
}

func TestSearchRejectsNonSearchMethods(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be issued")
	})

	_, err := client.Search(context.Background(), "get_achievement", Params{
		"region": "us", "locale": "en_US", "achievement_id": "6",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSearchAllConcatenatesPagesInOrder(t *testing.T) {
	const pageCount, perPage = 3, 2

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		page, err := strconv.Atoi(r.URL.Query().Get("_page"))
		require.NoError(t, err)
		require.True(t, page >= 1 && page <= pageCount)
		// Filter parameters are carried on every page request.
		assert.Equal(t, "wall", r.URL.Query().Get("name.en_US"))
		json.NewEncoder(w).Encode(searchPage(page, pageCount, perPage))
	})

	results, err := client.SearchAll(context.Background(), "search_decor", Params{
		"region": "us", "locale": "en_US", "name.en_US": "wall",
	})
	require.NoError(t, err)
	require.Len(t, results, pageCount*perPage)

	// Non-overlapping and ordered: IDs run 0..5.
	for i, res := range results {
		assert.EqualValues(t, i, res.Data["id"])
	}
}

func TestSearchAllSinglePage(t *testing.T) {
	var requests int
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		json.NewEncoder(w).Encode(searchPage(1, 1, 2))
	})

	results, err := client.SearchAll(context.Background(), "search_decor", Params{
		"region": "us", "locale": "en_US",
	})
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, 1, requests)
}

func TestSearchAllPropagatesPageErrors(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("_page") == "2" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(searchPage(1, 3, 2))
	})

	_, err := client.SearchAll(context.Background(), "search_decor", Params{
		"region": "us", "locale": "en_US",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServer)
}
