package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entity  Entity
		wantRef string
	}{
		{
			name: "lowercases kind",
			entity: Entity{
				Kind:     KindComponent,
				Metadata: Metadata{Name: "bar", Namespace: "team-a"},
			},
			wantRef: "component:team-a/bar",
		},
		{
			name: "empty namespace falls back to default",
			entity: Entity{
				Kind:     KindLocation,
				Metadata: Metadata{Name: "generated-abc"},
			},
			wantRef: "location:default/generated-abc",
		},
		{
			name: "api kind",
			entity: Entity{
				Kind:     KindAPI,
				Metadata: Metadata{Name: "petstore", Namespace: "default"},
			},
			wantRef: "api:default/petstore",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantRef, tt.entity.Ref())
		})
	}
}

func TestEntityValidate(t *testing.T) {
	t.Parallel()

	valid := Entity{
		APIVersion: DefaultAPIVersion,
		Kind:       KindComponent,
		Metadata:   Metadata{Name: "bar"},
	}
	require.NoError(t, valid.Validate())

	missingKind := valid
	missingKind.Kind = ""
	assert.Error(t, missingKind.Validate())

	missingAPIVersion := valid
	missingAPIVersion.APIVersion = ""
	assert.Error(t, missingAPIVersion.Validate())

	badName := valid
	badName.Metadata.Name = "-leading-dash"
	assert.Error(t, badName.Validate())

	badNamespace := valid
	badNamespace.Metadata.Namespace = "has spaces"
	assert.Error(t, badNamespace.Validate())
}

func TestIsValidName(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidName("bar"))
	assert.True(t, IsValidName("my-component-2"))
	assert.True(t, IsValidName("a"))
	assert.False(t, IsValidName(""))
	assert.False(t, IsValidName("-bar"))
	assert.False(t, IsValidName("bar-"))
	assert.False(t, IsValidName(string(make([]byte, 64))))
}
