// Package registry loads declarative Blizzard endpoint definitions.
//
// Endpoint definitions live in versioned YAML files, one per game and
// API type. Each entry either spells out a full path/parameter spec
// inline or references a named pattern template and supplies only the
// varying fields (resource name, identifier parameter, description).
// Template references are expanded exactly once at load time: an
// endpoint descriptor handed out by the registry never contains an
// unresolved template reference, and a reference to an undefined
// template fails the load rather than a later call.
//
// The default definition files are embedded in the package, so the
// registry needs no files on disk:
//
//	reg, err := registry.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//	ep, err := reg.Descriptor("get_achievement")
//
// Additional or replacement definitions can be loaded from arbitrary
// sources with LoadSources. Duplicate method names across sources are
// a load-time failure, never a silent overwrite.
package registry
