package schema

// Action names understood by every widget
const (
	ActionDefault     = "default"
	ActionDoNothing   = "do_nothing"
	ActionToggleLabel = "toggle_label"
	ActionUpdateLabel = "update_label"
	ActionExec        = "exec"
)

// Base returns a schema holding the label trio every widget starts with.
func Base(label, labelAlt string) *Schema {
	return New().
		Add("label", String(label).Describe("Primary label format")).
		Add("label_alt", String(labelAlt).Describe("Alternate label format, shown after toggle_label")).
		Add("class_name", String("").Describe("Extra style class added to the widget container"))
}

// AnimationOption is the click animation block.
func AnimationOption() *Option {
	return Dict(New().
		Add("enabled", Bool(true)).
		Add("type", String("fadeInOut")).
		Add("duration", Integer(200).AtLeast(0)),
	).Describe("Click animation")
}

// ShadowOption is a drop shadow block (label_shadow, container_shadow, ...).
func ShadowOption() *Option {
	return Dict(New().
		Add("enabled", Bool(false)).
		Add("color", String("black")).
		Add("offset", List([]any{1, 1}, Integer(0))).
		Add("radius", Integer(3)),
	).Describe("Drop shadow")
}

// CallbacksOption maps mouse buttons to action strings.
func CallbacksOption(left, middle, right string) *Option {
	return Dict(New().
		Add("on_left", String(left)).
		Add("on_middle", String(middle)).
		Add("on_right", String(right)),
	).Describe("Actions run on mouse clicks")
}

// PaddingOption is a four sided padding block.
func PaddingOption() *Option {
	return Dict(New().
		Add("top", Integer(0)).
		Add("left", Integer(0)).
		Add("bottom", Integer(0)).
		Add("right", Integer(0)),
	).Describe("Container padding in pixels")
}

// RewriteOption is an ordered list of regex rewrite rules.
func RewriteOption() *Option {
	rule := Dict(New().
		Add("pattern", String("").Require()).
		Add("replacement", String("").Require()).
		Add("case", NullableString().Enum("lower", "upper", "title", "capitalize")).
		Add("ignore_case", Bool(true)),
	)
	return List(nil, rule).Describe("Regex rewrite rules applied to raw field values in order")
}

// MenuOption is the popup menu block shared by clock calendars, volume and
// disk menus.
func MenuOption(extra *Schema) *Option {
	menu := New().
		Add("blur", Bool(true)).
		Add("round_corners", Bool(true)).
		Add("round_corners_type", String("normal").Enum("normal", "small")).
		Add("border_color", String("System")).
		Add("alignment", String("right").Enum("left", "center", "right")).
		Add("direction", String("down").Enum("up", "down")).
		Add("offset_top", Integer(6)).
		Add("offset_left", Integer(0))
	return Dict(menu.Extend(extra)).Describe("Popup menu")
}

// Decorated appends the blocks shared by most widgets: animation, container
// padding, label and container shadows, and callbacks.
func Decorated(s *Schema, left, middle, right string) *Schema {
	return s.
		Add("animation", AnimationOption()).
		Add("container_padding", PaddingOption()).
		Add("label_shadow", ShadowOption()).
		Add("container_shadow", ShadowOption()).
		Add("callbacks", CallbacksOption(left, middle, right))
}

