// Package catalog defines the entity model for the software catalog.
// The types are broadly compatible with backstage.io's descriptor format:
// https://backstage.io/docs/features/software-catalog/descriptor-format
package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// DefaultNamespace is the name of the implicit default namespace.
	// Entities with an empty metadata.namespace live here.
	DefaultNamespace = "default"

	// DefaultAPIVersion is the apiVersion stamped on entities this
	// service synthesizes.
	DefaultAPIVersion = "backstage.io/v1alpha1"
)

// Well-known annotation keys attached to entities during ingestion.
const (
	// AnnotationManagedByLocation records the location that an entity was
	// most recently read from, as "<type>:<target>".
	AnnotationManagedByLocation = "backstage.io/managed-by-location"

	// AnnotationManagedByOriginLocation records the location that started
	// the chain of discovery that produced an entity.
	AnnotationManagedByOriginLocation = "backstage.io/managed-by-origin-location"
)

// Entity kinds this service knows about. Kind is an open set; these are
// only the ones the service itself produces or special-cases.
const (
	KindLocation  = "Location"
	KindComponent = "Component"
	KindAPI       = "API"
)

// validNameRE matches valid entity names and namespaces: alphanumeric
// characters and "-", starting and ending with an alphanumeric character.
var validNameRE = regexp.MustCompile("^[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?$")

// Metadata holds identifying and auxiliary information shared by all
// entity kinds.
type Metadata struct {
	// Name of the entity. Unique within the catalog for a given
	// namespace + kind pair at any point in time.
	Name string `json:"name" yaml:"name"`
	// Namespace the entity belongs to. Empty means the default namespace.
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	// Title is a display name presented in UIs instead of Name when set.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	// Description is a short, one-line summary of the entity.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Labels are identifying key/value pairs.
	Labels map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
	// Annotations are non-identifying auxiliary key/value pairs, mostly
	// written by ingestion machinery and plugins.
	Annotations map[string]string `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	// Tags classify the entity.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Entity is a single catalog entity as read from or produced for the
// processing pipeline.
type Entity struct {
	APIVersion string         `json:"apiVersion" yaml:"apiVersion"`
	Kind       string         `json:"kind" yaml:"kind"`
	Metadata   Metadata       `json:"metadata" yaml:"metadata"`
	Spec       map[string]any `json:"spec,omitempty" yaml:"spec,omitempty"`
}

// QName returns the qualified entity name in the form <namespace>/<name>,
// substituting the default namespace when none is set.
func (e *Entity) QName() string {
	ns := e.Metadata.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}
	return ns + "/" + e.Metadata.Name
}

// Ref returns the fully qualified entity reference in the form
// <kind>:<namespace>/<name>, with the kind lowercased. Two entities with
// equal refs have the same identity in the catalog.
func (e *Entity) Ref() string {
	return strings.ToLower(e.Kind) + ":" + e.QName()
}

// Annotation returns the value of the named annotation, or "".
func (e *Entity) Annotation(key string) string {
	return e.Metadata.Annotations[key]
}

// Validate checks the structural fields every entity must carry.
// Spec contents are the processing pipeline's concern, not ours.
func (e *Entity) Validate() error {
	if e.APIVersion == "" {
		return fmt.Errorf("entity %s: apiVersion is required", e.QName())
	}
	if e.Kind == "" {
		return fmt.Errorf("entity %s: kind is required", e.QName())
	}
	if !IsValidName(e.Metadata.Name) {
		return fmt.Errorf("invalid entity name %q", e.Metadata.Name)
	}
	if e.Metadata.Namespace != "" && !IsValidName(e.Metadata.Namespace) {
		return fmt.Errorf("invalid entity namespace %q", e.Metadata.Namespace)
	}
	return nil
}

// IsValidName reports whether s is a valid entity name or namespace.
func IsValidName(s string) bool {
	return len(s) > 0 && len(s) <= 63 && validNameRE.MatchString(s)
}
