package clock

import (
	"fmt"
	"io"
	"log/slog"

	"omibyte.io/clocktree/chip"
	"omibyte.io/clocktree/pinmux"
	"omibyte.io/clocktree/register"
)

type Option func(t *Tree)

// WithLogger routes the tree's debug records to l.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tree) {
		t.log = l
	}
}

// Tree is the clock tree of one device. It owns the frequencies discovered
// at runtime (the external crystal and the PLL) alongside the register file
// the nodes are programmed through.
type Tree struct {
	regs *register.File
	log  *slog.Logger

	hxtFrequency uint32
	pllFrequency uint32

	// Leaves
	HIRC   *Oscillator
	LIRC   *Oscillator
	HIRC48 *Oscillator
	LXT    *Oscillator
	HXT    *ExternalOscillator
	PLL    *PLL

	// Buses
	HCLK  *HCLK
	PCLK0 *APBBranch
	PCLK1 *APBBranch

	// Peripheral branches
	UART0 *ExtendedBranch
	UART1 *ExtendedBranch
	SDH0  *ExtendedBranch
	TMR0  *GenericBranch
	TMR1  *GenericBranch
	TMR2  *GenericBranch
	TMR3  *GenericBranch
	SPI0  *GenericBranch
	WDT   *GenericBranch
	RTC   *GenericBranch
	EADC  *DividedBranch
	EMAC  *DividedBranch

	CLKO *ClockOutput

	nodes  []node
	byName map[string]node
}

// New builds the tree on top of regs. regs is expected to use the chip
// register map.
func New(regs *register.File, options ...Option) (*Tree, error) {
	if regs.Len() < chip.NumRegisters {
		return nil, fmt.Errorf("%w: register file holds %d words, need %d", register.ErrNoRegister, regs.Len(), chip.NumRegisters)
	}

	t := &Tree{
		regs:   regs,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		byName: map[string]node{},
	}
	for _, option := range options {
		option(t)
	}

	t.HIRC = t.oscillator("hirc", InternalRC, 12_000_000, chip.CLK_PWRCTL_HIRCEN, chip.CLK_STATUS_HIRCSTB)
	t.LIRC = t.oscillator("lirc", InternalLowSpeedRC, 10_000, chip.CLK_PWRCTL_LIRCEN, chip.CLK_STATUS_LIRCSTB)
	t.HIRC48 = t.oscillator("hirc48", InternalHighSpeedRC, 48_000_000, chip.CLK_PWRCTL_HIRC48EN, chip.CLK_STATUS_HIRC48STB)
	t.LXT = t.oscillator("lxt", RtcCrystal, 32_768, chip.CLK_PWRCTL_LXTEN, chip.CLK_STATUS_LXTSTB)
	t.LXT.pads = []pad{{pinmux.PF5, pinmux.X32In}, {pinmux.PF4, pinmux.X32Out}}

	t.HXT = &ExternalOscillator{
		tree:   t,
		enable: chip.CLK_PWRCTL_HXTEN,
		gain:   chip.CLK_PWRCTL_HXTGAIN,
		status: chip.CLK_STATUS_HXTSTB,
		pads:   []pad{{pinmux.PF3, pinmux.XT1In}, {pinmux.PF2, pinmux.XT1Out}},
	}
	t.add(t.HXT)

	t.PLL = &PLL{tree: t}
	t.add(t.PLL)

	t.HCLK = &HCLK{
		ExtendedBranch: ExtendedBranch{
			branch: branch{
				tree:     t,
				name:     "hclk",
				selector: chip.CLK_CLKSEL0_HCLKSEL,
				group:    GroupHCLK,
			},
			divider: Divider{Field: chip.CLK_CLKDIV0_HCLKDIV},
		},
		waitStates: chip.FMC_CYCCTL_CYCLE,
		powerLevel: chip.SYS_PLCTL_PLSEL,
	}
	t.add(t.HCLK)

	t.PCLK0 = t.apb("pclk0", chip.CLK_PCLKDIV_APB0DIV)
	t.PCLK1 = t.apb("pclk1", chip.CLK_PCLKDIV_APB1DIV)

	t.UART0 = t.extended("uart0", GroupUART, chip.CLK_CLKSEL1_UART0SEL, chip.CLK_CLKDIV0_UART0DIV, chip.CLK_APBCLK0_UART0CKEN, nil)
	t.UART1 = t.extended("uart1", GroupUART, chip.CLK_CLKSEL1_UART1SEL, chip.CLK_CLKDIV0_UART1DIV, chip.CLK_APBCLK0_UART1CKEN, nil)
	t.SDH0 = t.extended("sdh0", GroupSDH, chip.CLK_CLKSEL0_SDH0SEL, chip.CLK_CLKDIV0_SDH0DIV, chip.CLK_AHBCLK_SDH0CKEN, nil)

	t.TMR0 = t.generic("tmr0", GroupTimer, chip.CLK_CLKSEL1_TMR0SEL, chip.CLK_APBCLK0_TMR0CKEN, t.PCLK0)
	t.TMR1 = t.generic("tmr1", GroupTimer, chip.CLK_CLKSEL1_TMR1SEL, chip.CLK_APBCLK0_TMR1CKEN, t.PCLK0)
	t.TMR2 = t.generic("tmr2", GroupTimer, chip.CLK_CLKSEL1_TMR2SEL, chip.CLK_APBCLK0_TMR2CKEN, t.PCLK1)
	t.TMR3 = t.generic("tmr3", GroupTimer, chip.CLK_CLKSEL1_TMR3SEL, chip.CLK_APBCLK0_TMR3CKEN, t.PCLK1)
	t.SPI0 = t.generic("spi0", GroupSPI, chip.CLK_CLKSEL2_SPI0SEL, chip.CLK_APBCLK0_SPI0CKEN, t.PCLK1)
	t.WDT = t.generic("wdt", GroupWDT, chip.CLK_CLKSEL1_WDTSEL, chip.CLK_APBCLK0_WDTCKEN, nil)
	t.RTC = t.generic("rtc", GroupRTC, chip.CLK_CLKSEL3_RTCSEL, chip.CLK_APBCLK0_RTCCKEN, nil)

	t.EADC = t.divided("eadc", t.PCLK1, chip.CLK_CLKDIV0_EADCDIV, chip.CLK_APBCLK0_EADCCKEN)
	t.EMAC = t.divided("emac", t.HCLK, chip.CLK_CLKDIV3_EMACDIV, chip.CLK_AHBCLK_EMACCKEN)

	t.CLKO = &ClockOutput{
		branch: branch{
			tree:     t,
			name:     "clko",
			selector: chip.CLK_CLKSEL1_CLKOSEL,
			group:    GroupCLKO,
			gate:     chip.CLK_APBCLK0_CLKOCKEN,
		},
	}
	t.add(t.CLKO)

	if err := t.sortTopologically(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tree) add(n node) {
	t.nodes = append(t.nodes, n)
	t.byName[n.Name()] = n
}

func (t *Tree) oscillator(name string, src Source, freq uint32, enable, status register.Field) *Oscillator {
	o := &Oscillator{tree: t, name: name, source: src, frequency: freq, enable: enable, status: status}
	t.add(o)
	return o
}

func (t *Tree) apb(name string, field register.Field) *APBBranch {
	b := &APBBranch{
		tree:    t,
		name:    name,
		divider: Divider{Field: field, Encoding: PowerOfTwo, MaxExponent: 4},
	}
	t.add(b)
	return b
}

func (t *Tree) extended(name string, group *Group, sel, div, gate register.Field, bus *APBBranch) *ExtendedBranch {
	b := &ExtendedBranch{
		branch:  branch{tree: t, name: name, selector: sel, group: group, gate: gate, bus: bus},
		divider: Divider{Field: div},
	}
	t.add(b)
	return b
}

func (t *Tree) generic(name string, group *Group, sel, gate register.Field, bus *APBBranch) *GenericBranch {
	b := &GenericBranch{branch: branch{tree: t, name: name, selector: sel, group: group, gate: gate, bus: bus}}
	t.add(b)
	return b
}

func (t *Tree) divided(name string, parent node, div, gate register.Field) *DividedBranch {
	b := &DividedBranch{tree: t, name: name, parent: parent, divider: Divider{Field: div}, gate: gate}
	t.add(b)
	return b
}

// Logger returns the logger given to New.
func (t *Tree) Logger() *slog.Logger {
	return t.log
}

// Registers returns the register file the tree programs.
func (t *Tree) Registers() *register.File {
	return t.regs
}

// Clock looks a node up by its lower-case name, e.g. "hclk" or "uart0".
func (t *Tree) Clock(name string) (Clock, error) {
	if n, ok := t.byName[name]; ok {
		return n, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownClock, name)
}

// Names lists every node, dependencies first.
func (t *Tree) Names() []string {
	names := make([]string, len(t.nodes))
	for i, n := range t.nodes {
		names[i] = n.Name()
	}
	return names
}

// protected runs fn inside the register unlock/lock pair.
func (t *Tree) protected(fn func() error) error {
	return t.regs.Protected(fn)
}
