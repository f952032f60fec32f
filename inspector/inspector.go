// Package inspector turns a selected body into labelled, widget-tagged
// fields. It has no drawing code; the ui package renders its sections.
package inspector

import (
	"strconv"

	"github.com/pthm-cable/tickphys/components"
)

// Section is a titled group of fields.
type Section struct {
	Title  string
	Fields []Field
}

// Sections builds the inspector layout for a body: the descriptor-driven
// summary groups first, then one section per attached component.
func Sections(v *components.BodyView) []Section {
	var out []Section

	descs := components.BodyFieldDescriptors()
	for _, group := range components.BodyGroups() {
		s := Section{Title: group}
		for _, d := range descs {
			if d.Group != group {
				continue
			}
			if group == "gameplay" && v.Health == nil {
				continue
			}
			value := components.GetBodyValue(v, d.ID)
			if value == 0 && !d.ShowWhenZero {
				continue
			}
			s.Fields = append(s.Fields, descriptorField(d, value))
		}
		if len(s.Fields) > 0 {
			out = append(out, s)
		}
	}

	if v.Shape != nil {
		out = append(out, Section{Title: "Shape", Fields: ExtractFields(v.Shape)})
	}
	if v.Health != nil {
		out = append(out, Section{Title: "Health", Fields: ExtractFields(v.Health)})
	}
	if v.Wander != nil {
		out = append(out, Section{Title: "Wander", Fields: ExtractFields(v.Wander)})
	}
	return out
}

func descriptorField(d components.FieldDescriptor, value float32) Field {
	f := Field{
		Name:    d.Label,
		Value:   value,
		Widget:  WidgetLabel,
		Options: map[string]string{"fmt": d.Format},
	}
	switch {
	case d.IsCentered:
		f.Widget = WidgetAngle
	case d.IsBar:
		f.Widget = WidgetBar
		f.Options["max"] = strconv.FormatFloat(float64(d.Max), 'g', -1, 32)
	}
	return f
}
