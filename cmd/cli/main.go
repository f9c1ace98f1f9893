package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rhyrak/go-timetable/internal/parser"
)

const (
	exitParseError  = 1
	exitMissingFile = 2
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if errors.Is(err, parser.ErrMissingFile) {
		return exitMissingFile
	}
	return exitParseError
}
