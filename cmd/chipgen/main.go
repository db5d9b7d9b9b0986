package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	input  string
	output string
)

func init() {
	flag.StringVar(&input, "in", "", "input chip description (.yaml)")
	flag.StringVar(&output, "out", "", "output file")
}

func main() {
	flag.Parse()
	if len(input) == 0 || len(output) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	buf, err := os.ReadFile(input)
	if err != nil {
		log.Fatal("file io error: ", err)
	}

	var desc Description
	if err = yaml.Unmarshal(buf, &desc); err != nil {
		log.Fatalf("%s: yaml decode error: %v", input, err)
	}

	if err = desc.Validate(); err != nil {
		log.Fatalf("%s: %v", input, err)
	}

	fmt.Printf("Device:\t\t%s\n", desc.Device)
	fmt.Printf("Registers:\t%d\n", len(desc.Registers))

	src, err := Generate(&desc, filepath.Base(input))
	if err != nil {
		log.Fatal("generator error: ", err)
	}

	if err = os.WriteFile(output, src, 0644); err != nil {
		log.Fatal("file io error: ", err)
	}

	fmt.Println("Done.")
}
