package ot

// FVarTable describes a variable font's design-variation axes and named
// instances ('fvar'). Axes is non-empty exactly when the font is
// variable; see Font.IsVariable.
type FVarTable struct {
	tableBase
	Axes      []VariationAxis
	Instances []NamedInstance
}

// VariationAxis is one entry of the font's axis array: a 4-byte tag
// (e.g. "wght", "wdth", "ital", "opsz") with its allowed range and
// default value, all in user coordinates.
type VariationAxis struct {
	Tag                    Tag
	MinValue               float64
	DefaultValue           float64
	MaxValue               float64
	Flags                  uint16
	AxisNameID             uint16
}

// NamedInstance is one preset point in the variation space (e.g. "Bold
// Condensed"), given as one user-space coordinate per axis, in axis
// order.
type NamedInstance struct {
	SubfamilyNameID uint16
	PostScriptNameID uint16
	Coordinates     []float64
}

func newFVarTable(tag Tag, b binarySegm, offset, size uint32) *FVarTable {
	t := &FVarTable{}
	t.tableBase = tableBase{data: b, name: tag, offset: offset, length: size}
	t.self = t
	return t
}

// AsFVar converts a generic TableSelf to a *FVarTable, or nil if the
// underlying table is not an fvar table.
func (tself TableSelf) AsFVar() *FVarTable {
	t, _ := safeSelf(tself).(*FVarTable)
	return t
}

// AxisIndex returns the position of an axis by tag, or -1 if absent.
func (t *FVarTable) AxisIndex(tag Tag) int {
	if t == nil {
		return -1
	}
	for i, a := range t.Axes {
		if a.Tag == tag {
			return i
		}
	}
	return -1
}

func parseFVar(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < 16 {
		ec.addError(tag, "Size", "fvar table too small", SeverityCritical, offset)
		return nil, errFontFormat("fvar table incomplete")
	}
	t := newFVarTable(tag, b, offset, size)
	axesArrayOffset := int(b.U16(4))
	axisCount := int(b.U16(8))
	axisSize := int(b.U16(10))
	instanceCount := int(b.U16(12))
	instanceSize := int(b.U16(14))
	if axisSize < 20 || instanceSize < 4 {
		return nil, errFontFormat("fvar: implausible record size")
	}
	need := axesArrayOffset + axisCount*axisSize
	if need > len(b) {
		return nil, errFontFormat("fvar: axis array out of bounds")
	}
	axes := make([]VariationAxis, axisCount)
	for i := 0; i < axisCount; i++ {
		rec := b[axesArrayOffset+i*axisSize:]
		axes[i] = VariationAxis{
			Tag:          Tag(rec.U32(0)),
			MinValue:     fixed16dot16(rec.U32(4)),
			DefaultValue: fixed16dot16(rec.U32(8)),
			MaxValue:     fixed16dot16(rec.U32(12)),
			Flags:        rec.U16(16),
			AxisNameID:   rec.U16(18),
		}
	}
	t.Axes = axes

	instArrayOffset := axesArrayOffset + axisCount*axisSize
	instances := make([]NamedInstance, 0, instanceCount)
	for i := 0; i < instanceCount; i++ {
		start := instArrayOffset + i*instanceSize
		if start+4+axisCount*4 > len(b) {
			break // tolerate a truncated instance array rather than aborting fvar
		}
		rec := b[start:]
		coords := make([]float64, axisCount)
		for a := 0; a < axisCount; a++ {
			coords[a] = fixed16dot16(rec.U32(4 + a*4))
		}
		inst := NamedInstance{
			SubfamilyNameID: rec.U16(0),
			Coordinates:     coords,
		}
		if instanceSize >= 6+axisCount*4 {
			inst.PostScriptNameID = rec.U16(4 + axisCount*4)
		}
		instances = append(instances, inst)
	}
	t.Instances = instances
	return t, nil
}

// fixed16dot16 decodes a 16.16 signed fixed-point value as used by fvar,
// avar, and the variation-axis user-coordinate space generally.
func fixed16dot16(v uint32) float64 {
	return float64(int32(v)) / 65536
}
