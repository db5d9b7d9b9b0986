package main

import (
	"fmt"
	"strings"

	"golang.org/x/tools/imports"
)

func writePreamble(w *strings.Builder, source string, pkg string) {
	fmt.Fprintf(w, "// Code generated by chipgen from %s. DO NOT EDIT.\n\n", source)
	fmt.Fprintf(w, "package %s\n\n", pkg)
}

// Generate renders the register map as Go source.
func Generate(desc *Description, source string) ([]byte, error) {
	var w strings.Builder
	writePreamble(&w, source, desc.Package)

	// The import list is completed by imports.Process below.
	fmt.Fprintf(&w, "import \"omibyte.io/clocktree/register\"\n\n")

	fmt.Fprintf(&w, "// Device is the part this register map describes.\nconst Device = %q\n\n", desc.Device)

	// Register indices
	fmt.Fprintln(&w, "const (")
	for i, reg := range desc.Registers {
		fmt.Fprintf(&w, "%s = %d\n", reg.Name, i)
	}
	fmt.Fprintf(&w, "\nNumRegisters = %d\n", len(desc.Registers))
	fmt.Fprintln(&w, ")")
	fmt.Fprintln(&w)

	// Fields
	fmt.Fprintln(&w, "var (")
	for _, reg := range desc.Registers {
		for _, field := range reg.Fields {
			fmt.Fprintf(&w, "%s_%s = register.Field{Register: %s, Offset: %d, Width: %d}\n",
				reg.Name, field.Name, reg.Name, field.Offset, field.Width)
		}
	}
	fmt.Fprintln(&w, ")")
	fmt.Fprintln(&w)

	// Register names
	fmt.Fprintln(&w, "// RegisterNames maps a register index to its name.")
	fmt.Fprintln(&w, "var RegisterNames = [NumRegisters]string{")
	for _, reg := range desc.Registers {
		fmt.Fprintf(&w, "%s: %q,\n", reg.Name, reg.Name)
	}
	fmt.Fprintln(&w, "}")
	fmt.Fprintln(&w)

	// Reset values
	fmt.Fprintln(&w, "// ResetValues holds the power-on value of every register.")
	fmt.Fprintln(&w, "var ResetValues = [NumRegisters]uint32{")
	for _, reg := range desc.Registers {
		if reg.Reset != 0 {
			fmt.Fprintf(&w, "%s: 0x%08X,\n", reg.Name, reg.Reset)
		}
	}
	fmt.Fprintln(&w, "}")
	fmt.Fprintln(&w)

	// Write protection
	var protected []string
	for _, reg := range desc.Registers {
		if reg.Protected {
			protected = append(protected, reg.Name)
		}
	}
	fmt.Fprintln(&w, "// Protected lists the registers guarded by the register lock.")
	fmt.Fprintf(&w, "var Protected = []int{%s}\n\n", strings.Join(protected, ", "))

	fmt.Fprintln(&w, "// NewFile returns a zeroed register file wired with the device's write protection.")
	fmt.Fprintln(&w, "func NewFile() *register.File {")
	if desc.Lock != nil {
		keys := make([]string, len(desc.Lock.Keys))
		for i, key := range desc.Lock.Keys {
			keys[i] = fmt.Sprintf("0x%02X", key)
		}
		fmt.Fprintf(&w, "return register.NewFile(NumRegisters, register.WithLock(%s, %s), register.WithProtected(Protected...))\n",
			desc.Lock.Register, strings.Join(keys, ", "))
	} else {
		fmt.Fprintln(&w, "return register.NewFile(NumRegisters)")
	}
	fmt.Fprintln(&w, "}")

	// Format the final output
	src := w.String()
	buf, err := imports.Process(desc.Package+".go", []byte(src), nil)
	if err != nil {
		return nil, fmt.Errorf("error formatting output: %v", err)
	}
	return buf, nil
}
