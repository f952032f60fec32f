package components

// Transform is the render-visible position of an entity. Only the transform
// sync system writes it after spawn.
type Transform struct {
	X, Y float32
}

// Shape describes how an entity is drawn.
type Shape struct {
	Radius float32 `inspect:"label,fmt:%.1f"`
	Kind   Kind    `inspect:"label"`
}
