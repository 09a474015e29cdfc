package ot

import "fmt"

// HMtxTable contains horizontal metric information for every glyph in the
// font. Each of the first NumberOfHMetrics entries carries both an
// advance width and a left side bearing; any remaining glyphs (numGlyphs
// - NumberOfHMetrics of them) carry only a left side bearing and repeat
// the advance width of the final long-metric entry. NumberOfHMetrics is
// copied from 'hhea' at wiring time, since hmtx cannot be parsed on its
// own.
type HMtxTable struct {
	tableBase
	NumberOfHMetrics int
	numGlyphs        int
	longMetrics      []HMetricRecord
	leftSideBearings []int16
}

// HMetricRecord is one long horizontal metric record from table hmtx.
type HMetricRecord struct {
	AdvanceWidth    uint16
	LeftSideBearing int16
}

func newHMtxTable(tag Tag, b binarySegm, offset, size uint32) *HMtxTable {
	t := &HMtxTable{}
	t.tableBase = tableBase{data: b, name: tag, offset: offset, length: size}
	t.self = t
	return t
}

// AsHMtx converts a generic TableSelf to a *HMtxTable, or nil if the
// underlying table is not an hmtx table.
func (tself TableSelf) AsHMtx() *HMtxTable {
	t, _ := safeSelf(tself).(*HMtxTable)
	return t
}

func (t *HMtxTable) parseAll(numGlyphs, numberOfHMetrics int) error {
	if t == nil {
		return nil
	}
	if numGlyphs < 0 {
		return fmt.Errorf("invalid glyph count %d", numGlyphs)
	}
	if numberOfHMetrics < 0 || numberOfHMetrics > numGlyphs {
		return fmt.Errorf("invalid numberOfHMetrics %d (numGlyphs=%d)", numberOfHMetrics, numGlyphs)
	}
	required := numberOfHMetrics*4 + (numGlyphs-numberOfHMetrics)*2
	if required > len(t.data) {
		return fmt.Errorf("hmtx table too small: need %d bytes, have %d", required, len(t.data))
	}
	longMetrics := make([]HMetricRecord, numberOfHMetrics)
	for i := 0; i < numberOfHMetrics; i++ {
		aw, err := t.data.u16(i * 4)
		if err != nil {
			return fmt.Errorf("cannot parse hmtx long metric %d: %w", i, err)
		}
		lsb, err := t.data.u16(i*4 + 2)
		if err != nil {
			return fmt.Errorf("cannot parse hmtx long metric lsb %d: %w", i, err)
		}
		longMetrics[i] = HMetricRecord{AdvanceWidth: aw, LeftSideBearing: int16(lsb)}
	}
	lsbCount := numGlyphs - numberOfHMetrics
	leftSideBearings := make([]int16, lsbCount)
	base := numberOfHMetrics * 4
	for i := 0; i < lsbCount; i++ {
		lsb, err := t.data.u16(base + i*2)
		if err != nil {
			return fmt.Errorf("cannot parse hmtx lsb %d: %w", i, err)
		}
		leftSideBearings[i] = int16(lsb)
	}
	t.NumberOfHMetrics = numberOfHMetrics
	t.numGlyphs = numGlyphs
	t.longMetrics = longMetrics
	t.leftSideBearings = leftSideBearings
	return nil
}

// LongMetrics returns a copy of all long horizontal metrics records.
func (t *HMtxTable) LongMetrics() []HMetricRecord {
	if t == nil || len(t.longMetrics) == 0 {
		return nil
	}
	metrics := make([]HMetricRecord, len(t.longMetrics))
	copy(metrics, t.longMetrics)
	return metrics
}

// LeftSideBearings returns a copy of trailing LSB records.
func (t *HMtxTable) LeftSideBearings() []int16 {
	if t == nil || len(t.leftSideBearings) == 0 {
		return nil
	}
	lsbs := make([]int16, len(t.leftSideBearings))
	copy(lsbs, t.leftSideBearings)
	return lsbs
}

// GlyphCount returns the glyph count used when decoding this hmtx table.
func (t *HMtxTable) GlyphCount() int {
	if t == nil {
		return 0
	}
	return t.numGlyphs
}

// HMetrics returns the advance width and left side bearing for a glyph.
func (t *HMtxTable) HMetrics(g GlyphIndex) (uint16, int16, bool) {
	if t == nil || t.numGlyphs == 0 || int(g) < 0 || int(g) >= t.numGlyphs {
		return 0, 0, false
	}
	if int(g) < len(t.longMetrics) {
		m := t.longMetrics[int(g)]
		return m.AdvanceWidth, m.LeftSideBearing, true
	}
	if len(t.longMetrics) == 0 {
		return 0, 0, false
	}
	i := int(g) - len(t.longMetrics)
	if i < 0 || i >= len(t.leftSideBearings) {
		return 0, 0, false
	}
	return t.longMetrics[len(t.longMetrics)-1].AdvanceWidth, t.leftSideBearings[i], true
}

func parseHMtx(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	return newHMtxTable(tag, b, offset, size), nil
}

// VMtxTable is the vertical counterpart of HMtxTable: advance heights and
// top side bearings, sized by vhea.NumOfLongVerMetrics instead of
// hhea.NumberOfHMetrics. Present only alongside a 'vhea' table.
type VMtxTable struct {
	tableBase
	NumberOfVMetrics int
	numGlyphs        int
	longMetrics      []VMetricRecord
	topSideBearings  []int16
}

// VMetricRecord is one long vertical metric record from table vmtx.
type VMetricRecord struct {
	AdvanceHeight  uint16
	TopSideBearing int16
}

func newVMtxTable(tag Tag, b binarySegm, offset, size uint32) *VMtxTable {
	t := &VMtxTable{}
	t.tableBase = tableBase{data: b, name: tag, offset: offset, length: size}
	t.self = t
	return t
}

// AsVMtx converts a generic TableSelf to a *VMtxTable, or nil if the
// underlying table is not a vmtx table.
func (tself TableSelf) AsVMtx() *VMtxTable {
	t, _ := safeSelf(tself).(*VMtxTable)
	return t
}

func (t *VMtxTable) parseAll(numGlyphs, numberOfVMetrics int) error {
	if t == nil {
		return nil
	}
	if numGlyphs < 0 {
		return fmt.Errorf("invalid glyph count %d", numGlyphs)
	}
	if numberOfVMetrics < 0 || numberOfVMetrics > numGlyphs {
		return fmt.Errorf("invalid numberOfVMetrics %d (numGlyphs=%d)", numberOfVMetrics, numGlyphs)
	}
	required := numberOfVMetrics*4 + (numGlyphs-numberOfVMetrics)*2
	if required > len(t.data) {
		return fmt.Errorf("vmtx table too small: need %d bytes, have %d", required, len(t.data))
	}
	longMetrics := make([]VMetricRecord, numberOfVMetrics)
	for i := 0; i < numberOfVMetrics; i++ {
		ah, err := t.data.u16(i * 4)
		if err != nil {
			return fmt.Errorf("cannot parse vmtx long metric %d: %w", i, err)
		}
		tsb, err := t.data.u16(i*4 + 2)
		if err != nil {
			return fmt.Errorf("cannot parse vmtx long metric tsb %d: %w", i, err)
		}
		longMetrics[i] = VMetricRecord{AdvanceHeight: ah, TopSideBearing: int16(tsb)}
	}
	tsbCount := numGlyphs - numberOfVMetrics
	topSideBearings := make([]int16, tsbCount)
	base := numberOfVMetrics * 4
	for i := 0; i < tsbCount; i++ {
		tsb, err := t.data.u16(base + i*2)
		if err != nil {
			return fmt.Errorf("cannot parse vmtx tsb %d: %w", i, err)
		}
		topSideBearings[i] = int16(tsb)
	}
	t.NumberOfVMetrics = numberOfVMetrics
	t.numGlyphs = numGlyphs
	t.longMetrics = longMetrics
	t.topSideBearings = topSideBearings
	return nil
}

// VMetrics returns the advance height and top side bearing for a glyph.
func (t *VMtxTable) VMetrics(g GlyphIndex) (uint16, int16, bool) {
	if t == nil || t.numGlyphs == 0 || int(g) < 0 || int(g) >= t.numGlyphs {
		return 0, 0, false
	}
	if int(g) < len(t.longMetrics) {
		m := t.longMetrics[int(g)]
		return m.AdvanceHeight, m.TopSideBearing, true
	}
	if len(t.longMetrics) == 0 {
		return 0, 0, false
	}
	i := int(g) - len(t.longMetrics)
	if i < 0 || i >= len(t.topSideBearings) {
		return 0, 0, false
	}
	return t.longMetrics[len(t.longMetrics)-1].AdvanceHeight, t.topSideBearings[i], true
}

func parseVMtx(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	return newVMtxTable(tag, b, offset, size), nil
}
