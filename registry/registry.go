package registry

import (
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed configs/*.yaml
var configFS embed.FS

var placeholderRe = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// Registry holds the resolved endpoint descriptors from all loaded
// definition files, keyed by method name.
type Registry struct {
	configs map[string]*Config
	methods map[string]*Endpoint
}

// Load parses the endpoint definition files embedded in the package
// and resolves every pattern template reference. Malformed entries,
// references to undefined templates and duplicate method names are
// load-time failures.
func Load() (*Registry, error) {
	entries, err := fs.Glob(configFS, "configs/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded configs: %w", err)
	}
	sort.Strings(entries)

	sources := make([]Source, 0, len(entries))
	for _, name := range entries {
		data, err := configFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded config %s: %w", name, err)
		}
		sources = append(sources, Source{Name: name, Data: data})
	}

	return LoadSources(sources...)
}

// Source is one endpoint definition document. Name is used only for
// error reporting.
type Source struct {
	Name string
	Data []byte
}

// LoadSources parses the given definition documents into a registry.
func LoadSources(sources ...Source) (*Registry, error) {
	r := &Registry{
		configs: make(map[string]*Config),
		methods: make(map[string]*Endpoint),
	}

	for _, src := range sources {
		var fc fileConfig
		if err := yaml.Unmarshal(src.Data, &fc); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", src.Name, err)
		}
		if fc.Game == "" || fc.APIType == "" {
			return nil, fmt.Errorf("%w: %s: game and api_type are required", ErrInvalidDefinition, src.Name)
		}

		cfg := &Config{
			Game:      fc.Game,
			APIType:   fc.APIType,
			Version:   fc.Version,
			Templates: fc.Templates,
		}

		for _, fe := range fc.Endpoints {
			ep, err := resolve(&fc, fe)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", src.Name, err)
			}
			if prev, ok := r.methods[ep.Method]; ok {
				return nil, fmt.Errorf("%w: %s declared by both %s/%s and %s/%s",
					ErrDuplicateMethod, ep.Method, prev.Game, prev.APIType, ep.Game, ep.APIType)
			}
			r.methods[ep.Method] = ep
			cfg.Endpoints = append(cfg.Endpoints, ep)
		}

		key := configKey(fc.Game, fc.APIType)
		if _, ok := r.configs[key]; ok {
			return nil, fmt.Errorf("%w: %s: config %s defined twice", ErrInvalidDefinition, src.Name, key)
		}
		r.configs[key] = cfg
	}

	return r, nil
}

// resolve flattens one endpoint entry into a descriptor, expanding a
// pattern template reference if the entry uses one.
func resolve(fc *fileConfig, fe fileEndpoint) (*Endpoint, error) {
	if fe.Method == "" {
		return nil, fmt.Errorf("%w: endpoint entry with empty method name", ErrInvalidDefinition)
	}

	ep := &Endpoint{
		Method:      fe.Method,
		Game:        fc.Game,
		APIType:     fc.APIType,
		Description: fe.Description,
	}

	if fe.Template != "" {
		tpl, ok := fc.Templates[fe.Template]
		if !ok {
			return nil, fmt.Errorf("%w: %s referenced by %s", ErrUnknownTemplate, fe.Template, fe.Method)
		}

		path := strings.ReplaceAll(tpl.Path, "{resource}", fe.Resource)
		if fe.IDParam != "" {
			path = strings.ReplaceAll(path, "{id}", "{"+fe.IDParam+"}")
		}
		if strings.Contains(path, "{resource}") || strings.Contains(path, "{id}") {
			return nil, fmt.Errorf("%w: %s: template %s left unresolved placeholders in %s",
				ErrInvalidDefinition, fe.Method, fe.Template, path)
		}

		ep.Path = path
		ep.Required = append([]string(nil), tpl.Params...)
		ep.Optional = append([]string(nil), tpl.Optional...)
		ep.Namespace = tpl.Namespace
		ep.AcceptsFilters = tpl.AcceptsFilters
	} else {
		if fe.Path == "" {
			return nil, fmt.Errorf("%w: %s: neither path nor template given", ErrInvalidDefinition, fe.Method)
		}
		ep.Path = fe.Path
		ep.Required = append([]string(nil), fe.Params...)
		ep.Optional = append([]string(nil), fe.Optional...)
		ep.Namespace = fe.Namespace
		ep.AcceptsFilters = fe.AcceptsFilters
	}

	if !ep.Namespace.Valid() {
		return nil, fmt.Errorf("%w: %s: unknown namespace %q", ErrInvalidDefinition, fe.Method, ep.Namespace)
	}

	// Remaining placeholders are per-call path parameters. They are
	// required by definition.
	for _, m := range placeholderRe.FindAllStringSubmatch(ep.Path, -1) {
		ep.PathParams = append(ep.PathParams, m[1])
		if !contains(ep.Required, m[1]) {
			ep.Required = append(ep.Required, m[1])
		}
	}

	return ep, nil
}

// Descriptor returns the descriptor for the given method name.
func (r *Registry) Descriptor(method string) (*Endpoint, error) {
	ep, ok := r.methods[method]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}
	return ep, nil
}

// Methods returns all registered method names, sorted.
func (r *Registry) Methods() []string {
	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Config returns the parsed config for one game + API type.
func (r *Registry) Config(game, apiType string) (*Config, error) {
	cfg, ok := r.configs[configKey(game, apiType)]
	if !ok {
		return nil, fmt.Errorf("%w: no config for %s/%s", ErrUnknownMethod, game, apiType)
	}
	return cfg, nil
}

// Configs returns the keys of all loaded configs ("game/api_type"),
// sorted.
func (r *Registry) Configs() []string {
	keys := make([]string, 0, len(r.configs))
	for key := range r.configs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Endpoints returns the descriptors for one game + API type in
// definition order.
func (r *Registry) Endpoints(game, apiType string) []*Endpoint {
	cfg, ok := r.configs[configKey(game, apiType)]
	if !ok {
		return nil
	}
	return cfg.Endpoints
}

// Len returns the number of registered methods.
func (r *Registry) Len() int {
	return len(r.methods)
}

func configKey(game, apiType string) string {
	return game + "/" + apiType
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
