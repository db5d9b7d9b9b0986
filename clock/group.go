package clock

import (
	"fmt"

	"omibyte.io/clocktree/register"
)

// Group is the source table shared by every branch with the same selector
// encoding. Slots that are not populated hold Undefined.
type Group struct {
	Name  string
	Slots [8]Source
}

// Source returns the source a selector value denotes.
func (g *Group) Source(sel uint32) Source {
	if sel >= uint32(len(g.Slots)) {
		return Undefined
	}
	return g.Slots[sel]
}

// Selector returns the selector value for src.
func (g *Group) Selector(src Source) (uint32, bool) {
	if src == Undefined {
		return 0, false
	}
	for i, s := range g.Slots {
		if s == src {
			return uint32(i), true
		}
	}
	return 0, false
}

func (g *Group) Contains(src Source) bool {
	_, ok := g.Selector(src)
	return ok
}

// Sources lists the populated slots in selector order.
func (g *Group) Sources() []Source {
	var out []Source
	for _, s := range g.Slots {
		if s != Undefined {
			out = append(out, s)
		}
	}
	return out
}

// selectorFor validates src against the group and the selector field.
func (g *Group) selectorFor(src Source, field register.Field) (uint32, error) {
	sel, ok := g.Selector(src)
	if !ok || !field.Fits(sel) {
		return 0, fmt.Errorf("%w: %v is not a %s source", ErrValueOutOfRange, src, g.Name)
	}
	return sel, nil
}

var (
	GroupHCLK = &Group{Name: "HCLK", Slots: [8]Source{
		0: ExternalCrystal,
		1: RtcCrystal,
		2: Pll,
		3: InternalLowSpeedRC,
		7: InternalRC,
	}}

	GroupPLL = &Group{Name: "PLL", Slots: [8]Source{
		0: ExternalCrystal,
		1: InternalRC,
	}}

	GroupTimer = &Group{Name: "TMR", Slots: [8]Source{
		0: ExternalCrystal,
		1: RtcCrystal,
		2: ApbDerived,
		5: InternalLowSpeedRC,
		7: InternalRC,
	}}

	GroupUART = &Group{Name: "UART", Slots: [8]Source{
		0: ExternalCrystal,
		1: Pll,
		2: RtcCrystal,
		3: InternalRC,
	}}

	GroupSPI = &Group{Name: "SPI", Slots: [8]Source{
		0: ExternalCrystal,
		1: Pll,
		2: ApbDerived,
		3: InternalRC,
	}}

	GroupSDH = &Group{Name: "SDH", Slots: [8]Source{
		0: ExternalCrystal,
		1: Pll,
		2: MainClock,
		3: InternalRC,
	}}

	GroupWDT = &Group{Name: "WDT", Slots: [8]Source{
		1: RtcCrystal,
		3: InternalLowSpeedRC,
	}}

	GroupRTC = &Group{Name: "RTC", Slots: [8]Source{
		0: RtcCrystal,
		1: InternalLowSpeedRC,
	}}

	GroupCLKO = &Group{Name: "CLKO", Slots: [8]Source{
		0: ExternalCrystal,
		1: RtcCrystal,
		2: MainClock,
		3: InternalRC,
		4: InternalHighSpeedRC,
	}}

	// Groups lists every group table of the device.
	Groups = []*Group{GroupHCLK, GroupPLL, GroupTimer, GroupUART, GroupSPI, GroupSDH, GroupWDT, GroupRTC, GroupCLKO}
)
