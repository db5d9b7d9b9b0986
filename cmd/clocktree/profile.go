package main

import (
	"errors"
	"fmt"

	"omibyte.io/clocktree/board"
)

var errNoBoard = errors.New("no board given")

// catalog returns the built-in boards, or the boards in file.
func catalog(file string) (board.Boards, error) {
	if file == "" {
		return board.Builtin(), nil
	}
	return board.Load(file)
}

// selectProfile picks name from the catalog. A file holding a single board
// needs no name.
func selectProfile(file, name string) (board.Profile, error) {
	boards, err := catalog(file)
	if err != nil {
		return board.Profile{}, err
	}

	if name == "" {
		if file != "" && len(boards) == 1 {
			return boards[0], nil
		}
		return board.Profile{}, fmt.Errorf("%w, pick one of %v", errNoBoard, boards.Names())
	}
	return boards.Find(name)
}
