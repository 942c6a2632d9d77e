package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byavkin/pulsegen/internal/generation"
)

func TestRegisterGenerator_Harvest(t *testing.T) {
	t.Parallel()

	r := New()
	r.RegisterGenerator(&stubGenerator{})

	assert.Equal(t, []string{"laser_on", "pulsed_odmr"}, r.OperationNames())

	op, ok := r.Operation("pulsed_odmr")
	require.True(t, ok)
	assert.Equal(t, "GeneratePulsedODMR", op.Method)
	assert.Equal(t, "*registry.stubGenerator", op.Source)
	assert.Equal(t, "odmrArgs", op.ArgsType().Name())

	_, ok = r.Operation("rabi")
	assert.False(t, ok)
}

type laserOnV1 struct{ generation.Base }

func (g *laserOnV1) GenerateLaserOn(_ context.Context, _ *laserOnArgs) (*generation.Result, error) {
	return &generation.Result{}, nil
}

type laserOnV2 struct{ generation.Base }

func (g *laserOnV2) GenerateLaserOn(_ context.Context, _ *laserOnArgs) (*generation.Result, error) {
	return &generation.Result{}, nil
}

func TestRegisterGenerator_LastRegistrationWins(t *testing.T) {
	t.Parallel()

	r := New()
	r.RegisterGenerator(&laserOnV1{})
	r.RegisterGenerator(&laserOnV2{})

	op, ok := r.Operation("laser_on")
	require.True(t, ok)
	assert.Equal(t, "*registry.laserOnV2", op.Source)
}

type bareGenerator struct{}

type extraEmbed struct{}

type doubleEmbed struct {
	generation.Base
	extraEmbed
}

func (g *doubleEmbed) GenerateX(_ context.Context, _ *laserOnArgs) (*generation.Result, error) {
	return nil, nil
}

type badSignature struct{ generation.Base }

func (g *badSignature) GenerateOops(_ *laserOnArgs) (*generation.Result, error) {
	return nil, nil
}

type emptySuffix struct{ generation.Base }

func (g *emptySuffix) Generate(_ context.Context, _ *laserOnArgs) (*generation.Result, error) {
	return nil, nil
}

type noMethods struct{ generation.Base }

func TestRegisterGenerator_ShapePanics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		gen  any
	}{
		{name: "not a struct", gen: 42},
		{name: "missing base embed", gen: &bareGenerator{}},
		{name: "second embedded type", gen: &doubleEmbed{}},
		{name: "wrong method signature", gen: &badSignature{}},
		{name: "empty method suffix", gen: &emptySuffix{}},
		{name: "no generate methods", gen: &noMethods{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Panics(t, func() { New().RegisterGenerator(tt.gen) })
		})
	}
}

func TestOperationKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		suffix string
		want   string
	}{
		{suffix: "Rabi", want: "rabi"},
		{suffix: "LaserOn", want: "laser_on"},
		{suffix: "LaserMWOn", want: "laser_mw_on"},
		{suffix: "PulsedODMR", want: "pulsed_odmr"},
		{suffix: "T1Sequencing", want: "t1_sequencing"},
		{suffix: "HHTau", want: "hh_tau"},
		{suffix: "XY8", want: "xy8"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.suffix, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, operationKey(tt.suffix))
		})
	}
}

func TestParameters_ReturnsManifestOrder(t *testing.T) {
	t.Parallel()

	r := New()
	r.RegisterGenerator(&stubGenerator{})
	loadManifest(t, r, stubManifest)

	params, ok := r.Parameters("pulsed_odmr")
	require.True(t, ok)

	names := make([]string, 0, len(params))
	for _, p := range params {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"freq_start", "freq_step", "num_points", "name"}, names)

	_, ok = r.Parameters("rabi")
	assert.False(t, ok)
}

func TestQueryAccessors_ReturnCopies(t *testing.T) {
	t.Parallel()

	r := New()
	r.RegisterGenerator(&stubGenerator{})
	loadManifest(t, r, stubManifest)

	ops := r.Operations()
	require.Contains(t, ops, "laser_on")
	delete(ops, "laser_on")
	_, ok := r.Operation("laser_on")
	assert.True(t, ok, "mutating the returned map must not affect the registry")

	tables := r.OperationParameters()
	require.Contains(t, tables, "pulsed_odmr")
	tables["pulsed_odmr"][0].Name = "mangled"
	params, ok := r.Parameters("pulsed_odmr")
	require.True(t, ok)
	assert.Equal(t, "freq_start", params[0].Name)
}
