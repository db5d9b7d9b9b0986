// Package board describes how a board brings its clock tree up: which
// oscillators it fits, how the PLL and buses are set, and which peripheral
// clocks it starts. Profiles are read from YAML.
package board

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"omibyte.io/clocktree/clock"
	"omibyte.io/clocktree/pinmux"
)

//go:embed boards.yaml
var rawBoards []byte
var boards Boards

// Profile is the clock setup of one board. Zero values leave the
// corresponding node as it is after reset.
type Profile struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Aliases     []string          `yaml:"aliases"`
	HXT         uint32            `yaml:"hxt"`
	LXT         bool              `yaml:"lxt"`
	HIRC48      bool              `yaml:"hirc48"`
	PLL         *PLL              `yaml:"pll"`
	HCLK        *Branch           `yaml:"hclk"`
	Buses       map[string]uint32 `yaml:"buses"`
	Clocks      map[string]Branch `yaml:"clocks"`
	ClockOutput *ClockOutput      `yaml:"clko"`
}

type PLL struct {
	Source     clock.Source `yaml:"source"`
	Multiplier uint32       `yaml:"multiplier"`
	Divisor    uint32       `yaml:"divisor"`
}

// Branch configures a peripheral clock. Divisor defaults to 1; Source is
// ignored by branches without a selector.
type Branch struct {
	Source  clock.Source `yaml:"source"`
	Divisor uint32       `yaml:"divisor"`
}

type ClockOutput struct {
	Pin     pinmux.Pin   `yaml:"pin"`
	Source  clock.Source `yaml:"source"`
	Divisor uint32       `yaml:"divisor"`
}

type Boards []Profile

// Find looks a profile up by name or alias, ignoring case.
func (b Boards) Find(name string) (Profile, error) {
	name = strings.ToLower(name)
	for _, p := range b {
		if p.Name == name || slices.Contains(p.Aliases, name) {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("%w: %q", ErrBoardNotFound, name)
}

// Names lists the profile names in file order.
func (b Boards) Names() []string {
	names := make([]string, len(b))
	for i, p := range b {
		names[i] = p.Name
	}
	return names
}

// Decode reads a board list. Unknown keys are rejected.
func Decode(r io.Reader) (Boards, error) {
	var doc struct {
		Boards []Profile `yaml:"boards"`
	}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	for i, p := range doc.Boards {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: board %d has no name", ErrInvalidProfile, i)
		}
		doc.Boards[i].Name = strings.ToLower(p.Name)
		for j, alias := range p.Aliases {
			doc.Boards[i].Aliases[j] = strings.ToLower(alias)
		}
	}
	return doc.Boards, nil
}

// Load reads a board list from a file.
func Load(path string) (Boards, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

// Builtin returns the profiles shipped with the package.
func Builtin() Boards {
	return slices.Clone(boards)
}

// Find looks a built-in profile up.
func Find(name string) (Profile, error) {
	return boards.Find(name)
}

func init() {
	b, err := Decode(bytes.NewReader(rawBoards))
	if err != nil {
		panic(err)
	}
	boards = b
}
