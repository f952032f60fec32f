package components

import (
	"math"

	"github.com/pthm-cable/tickphys/physics"
)

// FieldDescriptor describes a component field for UI display.
type FieldDescriptor struct {
	ID           string  // Unique identifier
	Label        string  // Display name
	Format       string  // Printf format (e.g., "%.2f")
	Min          float32 // Minimum value (for bars)
	Max          float32 // Maximum value (for bars)
	IsCentered   bool    // True for centered bar display
	IsBar        bool    // True to render as progress bar
	ShowWhenZero bool    // Show even when value is zero
	Group        string  // Logical grouping
}

// BodyView gathers everything the inspector shows for one entity.
// Any pointer may be nil when the entity lacks that component.
type BodyView struct {
	Body   physics.Body
	Shape  *Shape
	Health *Health
	Wander *Wander
}

// BodyFieldDescriptors returns metadata for the inspector panel.
// Field IDs must match cases in GetBodyValue().
func BodyFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "id", Label: "Body", Format: "%.0f", ShowWhenZero: true, Group: "physics"},
		{ID: "radius", Label: "Radius", Format: "%.1f", Group: "physics"},
		{ID: "x", Label: "X", Format: "%+.1f", ShowWhenZero: true, Group: "physics"},
		{ID: "y", Label: "Y", Format: "%+.1f", ShowWhenZero: true, Group: "physics"},
		{ID: "speed", Label: "Speed", Format: "%.1f", Min: 0, Max: 200, IsBar: true, Group: "motion"},
		{ID: "heading", Label: "Heading", Format: "%.2f", Min: -math.Pi, Max: math.Pi, IsCentered: true, Group: "motion"},
		{ID: "health", Label: "Health", Format: "%.0f", Min: 0, Max: 1, IsBar: true, ShowWhenZero: true, Group: "gameplay"},
	}
}

// BodyGroups returns the logical groupings for body fields.
func BodyGroups() []string {
	return []string{"physics", "motion", "gameplay"}
}

// GetBodyValue extracts a field value by ID.
func GetBodyValue(v *BodyView, fieldID string) float32 {
	switch fieldID {
	case "id":
		return float32(v.Body.ID)
	case "radius":
		return float32(v.Body.Radius)
	case "x":
		return float32(v.Body.Position.X)
	case "y":
		return float32(v.Body.Position.Y)
	case "speed":
		return float32(math.Hypot(v.Body.Velocity.X, v.Body.Velocity.Y))
	case "heading":
		if v.Wander != nil {
			return v.Wander.Heading
		}
		return float32(math.Atan2(v.Body.Velocity.Y, v.Body.Velocity.X))
	case "health":
		if v.Health != nil {
			return v.Health.Fraction()
		}
		return 0
	default:
		return 0
	}
}
