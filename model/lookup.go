package model

import (
	"fmt"
	"strconv"
	"strings"
)

// LineFontTable maps line font pattern numbers to display names.
type LineFontTable map[int]string

// DefaultLineFonts returns a new table of the standard line font patterns.
func DefaultLineFonts() LineFontTable {
	return LineFontTable{
		0: "Default",
		1: "Solid",
		2: "Dashed",
		3: "Phantom",
		4: "Centerline",
		5: "Dotted",
	}
}

// Name resolves a raw line font pattern field. A blank field is "Default";
// a negative value points at a Line Font Definition entity.
func (t LineFontTable) Name(field string) string {
	field = strings.TrimSpace(field)
	if field == "" {
		return t[0]
	}
	n, err := strconv.Atoi(field)
	if err != nil {
		return field
	}
	if n < 0 {
		return fmt.Sprintf("Definition(%d)", -n)
	}
	if name, ok := t[n]; ok {
		return name
	}
	return fmt.Sprintf("Pattern(%d)", n)
}

// EntityTypeName returns the name of an IGES entity type number, or
// "Entity <n>" for types it does not know.
func EntityTypeName(n int) string {
	switch n {
	case 0:
		return "Null"
	case 100:
		return "Circular Arc"
	case 102:
		return "Composite Curve"
	case 104:
		return "Conic Arc"
	case 106:
		return "Copious Data"
	case 108:
		return "Plane"
	case 110:
		return "Line"
	case 112:
		return "Parametric Spline Curve"
	case 114:
		return "Parametric Spline Surface"
	case 116:
		return "Point"
	case 118:
		return "Ruled Surface"
	case 120:
		return "Surface of Revolution"
	case 122:
		return "Tabulated Cylinder"
	case 123:
		return "Direction"
	case 124:
		return "Transformation Matrix"
	case 125:
		return "Flash"
	case 126:
		return "Rational B-Spline Curve"
	case 128:
		return "Rational B-Spline Surface"
	case 130:
		return "Offset Curve"
	case 140:
		return "Offset Surface"
	case 141:
		return "Boundary"
	case 142:
		return "Curve on a Parametric Surface"
	case 143:
		return "Bounded Surface"
	case 144:
		return "Trimmed Parametric Surface"
	case 186:
		return "Manifold Solid B-Rep Object"
	case 190:
		return "Plane Surface"
	case 192:
		return "Right Circular Cylindrical Surface"
	case 194:
		return "Right Circular Conical Surface"
	case 196:
		return "Spherical Surface"
	case 198:
		return "Toroidal Surface"
	case 202:
		return "Angular Dimension"
	case 206:
		return "Diameter Dimension"
	case 212:
		return "General Note"
	case 214:
		return "Leader (Arrow)"
	case 216:
		return "Linear Dimension"
	case 222:
		return "Radius Dimension"
	case 228:
		return "General Symbol"
	case 230:
		return "Sectioned Area"
	case 302:
		return "Associativity Definition"
	case 304:
		return "Line Font Definition"
	case 308:
		return "Subfigure Definition"
	case 310:
		return "Text Font Definition"
	case 312:
		return "Text Display Template"
	case 314:
		return "Color Definition"
	case 402:
		return "Associativity Instance"
	case 404:
		return "Drawing"
	case 406:
		return "Property"
	case 408:
		return "Singular Subfigure Instance"
	case 410:
		return "View"
	case 502:
		return "Vertex"
	case 504:
		return "Edge"
	case 508:
		return "Loop"
	case 510:
		return "Face"
	case 514:
		return "Shell"
	default:
		return fmt.Sprintf("Entity %d", n)
	}
}

// Status is the decoded directory entry status number: four two-digit fields.
type Status struct {
	BlankStatus       int // 0 visible, 1 blanked
	SubordinateSwitch int // 0 independent, 1 physically, 2 logically, 3 both
	EntityUseFlag     int // 0 geometry, 1 annotation, 2 definition, ...
	Hierarchy         int // 0 global top down, 1 global defer, 2 use property
}

// Visible reports whether the entity is not blanked.
func (s Status) Visible() bool {
	return s.BlankStatus == 0
}

// ParseStatus decodes an 8-column status number. Blank digits count as zero.
func ParseStatus(field string) (Status, error) {
	field = strings.TrimSpace(field)
	if len(field) > 8 {
		return Status{}, fmt.Errorf("status number %q is longer than 8 digits", field)
	}
	field = strings.Repeat("0", 8-len(field)) + field
	var parts [4]int
	for i := range parts {
		n, err := strconv.Atoi(field[i*2 : i*2+2])
		if err != nil || n < 0 {
			return Status{}, fmt.Errorf("status number %q is not numeric", field)
		}
		parts[i] = n
	}
	return Status{
		BlankStatus:       parts[0],
		SubordinateSwitch: parts[1],
		EntityUseFlag:     parts[2],
		Hierarchy:         parts[3],
	}, nil
}
