// Package blizzard is a client for the Blizzard game-data and profile
// APIs.
//
// The client binds one operation per endpoint declared in the registry
// at construction time, so the whole method surface is known and
// validated before the first call. Operations are reached either
// through the game/category facade or by method name:
//
//	logger := zerolog.New(os.Stderr)
//	client, err := blizzard.NewClient(clientID, clientSecret, blizzard.RegionUS, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	body, err := client.Call(ctx, "get_achievement", blizzard.Params{
//		"region":         "us",
//		"locale":         "en_US",
//		"achievement_id": "6",
//	})
//
// Every operation has a blocking form, Do, and a non-blocking form,
// Go, which returns a single-result channel. Both run the same
// validation, path expansion and error mapping; they differ only in
// how the caller awaits completion.
//
// Search endpoints accept filter parameters verbatim, dotted keys
// included:
//
//	page, err := client.Search(ctx, "search_decor", blizzard.Params{
//		"region":     "us",
//		"locale":     "en_US",
//		"name.en_US": "wall",
//	})
//
// SearchAll walks every page of a search with a bounded concurrent
// fan-out and concatenates the results in page order.
//
// Failures are typed: local parameter problems are ValidationError
// (raised before any network I/O), upstream failures are APIError.
// Both unwrap to taxonomy sentinels (ErrNotFound, ErrRateLimited,
// ErrAuthentication, ...) for errors.Is classification. The client
// never retries on its own; a 429's Retry-After hint is surfaced on
// the error for the caller to honor.
package blizzard
