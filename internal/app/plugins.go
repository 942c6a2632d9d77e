package app

import (
	"github.com/byavkin/pulsegen/generators/basic"
	"github.com/byavkin/pulsegen/generators/sequencing"
	"github.com/byavkin/pulsegen/internal/generation"
	"github.com/byavkin/pulsegen/internal/registry"
)

// corePlugins is the definitive list of generator plugins compiled into the
// pulsegen binary.
func corePlugins(provider generation.SettingsProvider) []registry.Plugin {
	return []registry.Plugin{
		&basic.Module{Provider: provider},
		&sequencing.Module{Provider: provider},
	}
}
