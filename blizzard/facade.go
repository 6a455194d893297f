package blizzard

import "fmt"

// Game is the first level of the facade: all API categories for one
// game.
type Game struct {
	name string
	apis map[string]*API
}

// API is the second level of the facade: the bound operations of one
// game + API category.
type API struct {
	game     string
	category string
	ops      map[string]*Operation
}

// Game looks up a game namespace ("wow", "d3", "hearthstone", "sc2").
func (c *Client) Game(name string) (*Game, error) {
	g, ok := c.games[name]
	if !ok {
		return nil, &ValidationError{Param: "game", Message: fmt.Sprintf("unknown game %q", name)}
	}
	return g, nil
}

// API looks up an API category ("game_data", "profile", "community").
func (g *Game) API(category string) (*API, error) {
	a, ok := g.apis[category]
	if !ok {
		return nil, &ValidationError{Param: "api", Message: fmt.Sprintf("game %q has no API category %q", g.name, category)}
	}
	return a, nil
}

// Categories returns the game's API category names.
func (g *Game) Categories() []string {
	names := make([]string, 0, len(g.apis))
	for name := range g.apis {
		names = append(names, name)
	}
	return names
}

// Method looks up a bound operation by method name.
func (a *API) Method(name string) (*Operation, error) {
	op, ok := a.ops[name]
	if !ok {
		return nil, &ValidationError{Param: "method", Message: fmt.Sprintf("%s/%s has no method %q", a.game, a.category, name)}
	}
	return op, nil
}

// Methods returns the method names bound under this category.
func (a *API) Methods() []string {
	names := make([]string, 0, len(a.ops))
	for name := range a.ops {
		names = append(names, name)
	}
	return names
}
