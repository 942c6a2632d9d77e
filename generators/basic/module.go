package basic

import (
	"github.com/byavkin/pulsegen/internal/generation"
	"github.com/byavkin/pulsegen/internal/registry"
)

// Module wires the basic generator into a registry.
type Module struct {
	Provider generation.SettingsProvider
}

// Register registers the generate operations of this package.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterGenerator(New(m.Provider))
}
