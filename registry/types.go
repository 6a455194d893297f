package registry

// Namespace classifies how an endpoint's data is partitioned upstream.
// Game-data endpoints use static or dynamic namespaces, profile
// endpoints use the profile namespace, and community-style endpoints
// use none at all.
type Namespace string

const (
	NamespaceNone    Namespace = ""
	NamespaceStatic  Namespace = "static"
	NamespaceDynamic Namespace = "dynamic"
	NamespaceProfile Namespace = "profile"
)

// Valid reports whether the namespace is one of the known kinds.
func (n Namespace) Valid() bool {
	switch n {
	case NamespaceNone, NamespaceStatic, NamespaceDynamic, NamespaceProfile:
		return true
	}
	return false
}

// Endpoint is a fully resolved endpoint descriptor. All pattern
// template references have been expanded at load time; the only
// placeholders left in Path are per-call path parameters. Descriptors
// are immutable once the registry has loaded them.
type Endpoint struct {
	Method         string
	Game           string
	APIType        string
	Path           string
	PathParams     []string
	Required       []string
	Optional       []string
	Namespace      Namespace
	AcceptsFilters bool
	Description    string
}

// Config is the parsed contents of one endpoint definition file: one
// game + API-type namespace and its endpoints.
type Config struct {
	Game      string
	APIType   string
	Version   string
	Templates map[string]PatternTemplate
	Endpoints []*Endpoint
}

// PatternTemplate is a reusable path/parameter skeleton referenced by
// name from endpoint entries. Templates exist only during loading;
// endpoints hold flattened copies, not live references.
type PatternTemplate struct {
	Path           string    `yaml:"path"`
	Params         []string  `yaml:"params"`
	Optional       []string  `yaml:"optional_params"`
	Namespace      Namespace `yaml:"namespace"`
	AcceptsFilters bool      `yaml:"accepts_filters"`
}

// fileConfig mirrors the YAML schema of a single definition file.
type fileConfig struct {
	Game      string                     `yaml:"game"`
	APIType   string                     `yaml:"api_type"`
	Version   string                     `yaml:"version"`
	Templates map[string]PatternTemplate `yaml:"pattern_templates"`
	Endpoints []fileEndpoint             `yaml:"endpoints"`
}

// fileEndpoint is a single endpoint entry. It either spells out a full
// path/parameter spec inline or references a pattern template by name
// and supplies only the varying fields.
type fileEndpoint struct {
	Method      string `yaml:"method"`
	Description string `yaml:"description"`

	// Template reference form.
	Template string `yaml:"template"`
	Resource string `yaml:"resource"`
	IDParam  string `yaml:"id_param"`

	// Inline form.
	Path           string    `yaml:"path"`
	Params         []string  `yaml:"params"`
	Optional       []string  `yaml:"optional_params"`
	Namespace      Namespace `yaml:"namespace"`
	AcceptsFilters bool      `yaml:"accepts_filters"`
}
