package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratedEntityName(t *testing.T) {
	t.Parallel()

	spec := LocationSpec{Type: "url", Target: "https://example.com/catalog-info.yaml"}

	name := GeneratedEntityName(spec)
	assert.True(t, strings.HasPrefix(name, "generated-"))
	assert.True(t, IsValidName(name), "generated name must be a valid entity name")

	// Deterministic for equal descriptors.
	assert.Equal(t, name, GeneratedEntityName(spec))

	// Distinct descriptors get distinct names.
	other := GeneratedEntityName(LocationSpec{Type: "url", Target: "https://example.com/other.yaml"})
	assert.NotEqual(t, name, other)
	otherType := GeneratedEntityName(LocationSpec{Type: "file", Target: spec.Target})
	assert.NotEqual(t, name, otherType)
}

func TestNewLocationEntity(t *testing.T) {
	t.Parallel()

	spec := LocationSpec{Type: "url", Target: "https://example.com/catalog-info.yaml"}
	entity := NewLocationEntity(spec)

	require.NoError(t, entity.Validate())
	assert.Equal(t, DefaultAPIVersion, entity.APIVersion)
	assert.Equal(t, KindLocation, entity.Kind)
	assert.Equal(t, DefaultNamespace, entity.Metadata.Namespace)
	assert.Equal(t, GeneratedEntityName(spec), entity.Metadata.Name)

	want := "url:https://example.com/catalog-info.yaml"
	assert.Equal(t, want, entity.Annotation(AnnotationManagedByLocation))
	assert.Equal(t, want, entity.Annotation(AnnotationManagedByOriginLocation))

	assert.Equal(t, "url", entity.Spec["type"])
	assert.Equal(t, "https://example.com/catalog-info.yaml", entity.Spec["target"])
}

func TestLocationSpecString(t *testing.T) {
	t.Parallel()

	spec := LocationSpec{Type: "url", Target: "https://x/catalog-info.yaml"}
	assert.Equal(t, "url:https://x/catalog-info.yaml", spec.String())

	loc := Location{ID: "123", Type: "url", Target: "https://x/catalog-info.yaml"}
	assert.Equal(t, spec, loc.Spec())
}
