package components

// Health tracks contact damage taken by an entity.
type Health struct {
	Value float32 `inspect:"bar,of:Max"`
	Max   float32 `inspect:"label,fmt:%.0f"`
	Alive bool    `inspect:"bool"`
}

// Fraction returns Value/Max clamped to [0, 1].
func (h *Health) Fraction() float32 {
	if h.Max <= 0 {
		return 0
	}
	f := h.Value / h.Max
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// ContactDamage is the damage this entity deals to whatever it overlaps.
type ContactDamage struct {
	PerHit float32 `inspect:"label,fmt:%.2f"`
}

// Wander drives an entity's velocity with a drifting heading.
type Wander struct {
	Heading  float32 `inspect:"angle"`          // radians
	Speed    float32 `inspect:"label,fmt:%.1f"` // units per second
	TurnRate float32 `inspect:"skip"`           // max heading change, radians per second
}
