// Copyright 2025, The Duna Authors

// Duna runs a MIPS build script: the script assembles an instruction
// stream and data segment, and the simulator executes it. The process
// exits with the simulated program's exit status.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/dunasim/duna/emulator"
	"github.com/dunasim/duna/mips"
)

func main() {
	var bits int
	var verbose bool

	flag.IntVar(&bits, "b", 32, "Register width in bits (32 or 64)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: usage: duna [-b bits] [-v] program.star", os.Args[0])
	}

	var fam = mips.Mips32
	switch bits {
	case 32:
	case 64:
		fam = mips.Mips64
	default:
		log.Fatalf("%v: unsupported register width: %v", os.Args[0], bits)
	}

	path := flag.Arg(0)
	prog, err := loadProgram(path, emulator.DefaultLayout)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}

	emu := emulator.New(fam, prog.insts, prog.data, prog.layout)
	emu.Verbose = verbose

	os.Exit(int(emu.Run()))
}
