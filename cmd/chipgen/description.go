package main

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

var ErrInvalidDescription = errors.New("invalid chip description")

type Description struct {
	Device    string     `yaml:"device"`
	Package   string     `yaml:"package"`
	Lock      *Lock      `yaml:"lock"`
	Registers []Register `yaml:"registers"`
}

type Lock struct {
	Register string   `yaml:"register"`
	Keys     []uint32 `yaml:"keys"`
}

type Register struct {
	Name      string  `yaml:"name"`
	Reset     uint32  `yaml:"reset"`
	Protected bool    `yaml:"protected"`
	Fields    []Field `yaml:"fields"`
}

type Field struct {
	Name   string `yaml:"name"`
	Offset uint8  `yaml:"offset"`
	Width  uint8  `yaml:"width"`
}

func (d *Description) index(name string) int {
	return slices.IndexFunc(d.Registers, func(r Register) bool {
		return r.Name == name
	})
}

// Validate rejects overlapping fields, fields leaving the 32-bit word and
// duplicate register names.
func (d *Description) Validate() error {
	if len(d.Package) == 0 {
		return fmt.Errorf("%w: missing package name", ErrInvalidDescription)
	}

	if d.Lock != nil && d.index(d.Lock.Register) < 0 {
		return fmt.Errorf("%w: unknown lock register %s", ErrInvalidDescription, d.Lock.Register)
	}

	for i, reg := range d.Registers {
		if d.index(reg.Name) != i {
			return fmt.Errorf("%w: duplicate register %s", ErrInvalidDescription, reg.Name)
		}

		var used uint64
		for _, field := range reg.Fields {
			if field.Width == 0 || int(field.Offset)+int(field.Width) > 32 {
				return fmt.Errorf("%w: %s.%s does not fit a 32-bit word", ErrInvalidDescription, reg.Name, field.Name)
			}

			mask := (uint64(1)<<field.Width - 1) << field.Offset
			if used&mask != 0 {
				return fmt.Errorf("%w: %s.%s overlaps another field", ErrInvalidDescription, reg.Name, field.Name)
			}
			used |= mask
		}
	}
	return nil
}
