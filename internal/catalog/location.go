package catalog

import (
	"crypto/sha256"
	"encoding/hex"
)

// LocationSpec describes where catalog metadata originates, e.g. type
// "url" with a target pointing at a YAML manifest. It is transient input;
// nothing is persisted until the location is accepted.
type LocationSpec struct {
	Type   string `json:"type" yaml:"type"`
	Target string `json:"target" yaml:"target"`
}

// String returns the "<type>:<target>" form used in managed-by
// annotations and log lines.
func (s LocationSpec) String() string {
	return s.Type + ":" + s.Target
}

// Location is a persisted location record. The ID is assigned by the
// store on creation; the record is immutable apart from deletion.
type Location struct {
	ID     string `json:"id" yaml:"id"`
	Type   string `json:"type" yaml:"type"`
	Target string `json:"target" yaml:"target"`
}

// Spec returns the descriptor that the record was created from.
func (l *Location) Spec() LocationSpec {
	return LocationSpec{Type: l.Type, Target: l.Target}
}

// generatedNameLength is the number of hash hex digits kept in generated
// entity names. Names must stay within the 63 character entity name limit
// including the "generated-" prefix.
const generatedNameLength = 40

// GeneratedEntityName derives the deterministic metadata.name for the
// synthetic Location entity of a descriptor. The same type+target always
// yields the same name, so repeated dry runs of one location collide with
// themselves rather than accumulating.
func GeneratedEntityName(spec LocationSpec) string {
	sum := sha256.Sum256([]byte(spec.String()))
	return "generated-" + hex.EncodeToString(sum[:])[:generatedNameLength]
}

// NewLocationEntity synthesizes the Location-kind entity that represents
// a descriptor in the processing pipeline. Both managed-by annotations
// point at the descriptor itself: the location is its own origin.
func NewLocationEntity(spec LocationSpec) *Entity {
	return &Entity{
		APIVersion: DefaultAPIVersion,
		Kind:       KindLocation,
		Metadata: Metadata{
			Name:      GeneratedEntityName(spec),
			Namespace: DefaultNamespace,
			Annotations: map[string]string{
				AnnotationManagedByLocation:       spec.String(),
				AnnotationManagedByOriginLocation: spec.String(),
			},
		},
		Spec: map[string]any{
			"type":   spec.Type,
			"target": spec.Target,
		},
	}
}
