// Package chip is the register map of the M480 clock controller and the
// handful of SYS/GPIO registers the clock tree touches.
package chip

//go:generate go run ../cmd/chipgen -in m480.yaml -out m480.go
