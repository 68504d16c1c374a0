package nes

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// cpuFrequency is the NTSC 2A03 clock rate, used by the debugger's "Ns"
// step command to translate wall-clock seconds into CPU cycles.
const cpuFrequency = 1789773

// Debugger drives a Console one instruction (or several) at a time from
// stdin commands, for inspecting CPU/PPU state interactively.
//
// Commands:
//
//	s [N][s|d]   step N instructions (default 1); "s" suffix steps N
//	             seconds worth of cycles, "d" suffix prints state each step
//	p [target]   print console state, or one of cpu/ppu/controller
//	br 0xNNNN    set a breakpoint at a PC value
//	r            reset
//	q            quit
type Debugger struct {
	console     *Console
	breakpoints []uint16
}

// NewDebugger wraps console for interactive stepping.
func NewDebugger(console *Console) *Debugger {
	return &Debugger{console: console}
}

func (d *Debugger) printState() {
	fmt.Println("--------------------------------------------------")
	fmt.Printf("Executed cycles: %d\n", d.console.cpu.Cycles())
	fmt.Printf("CPU:  PC=0x%04x, A=0x%02x, X=0x%02x, Y=0x%02x, flags=0x%02x\n",
		d.console.cpu.pc, d.console.cpu.a, d.console.cpu.x, d.console.cpu.y, d.console.cpu.getFlags())
	fmt.Printf("PPU: cycle=%d, scanline=%d, v=0x%04x\n",
		d.console.ppu.cycle, d.console.ppu.scanline, d.console.ppu.v)
}

func (d *Debugger) printCommand(args []string) {
	if len(args) < 2 {
		d.printState()
		return
	}
	switch args[1] {
	case "c", "cpu":
		fmt.Printf("%+v\n", *d.console.cpu)
	case "p", "ppu":
		fmt.Printf("%+v\n", *d.console.ppu)
	case "ct", "controller":
		fmt.Printf("%+v\n", *d.console.controller)
	default:
		fmt.Printf("unknown print target %q\n", args[1])
	}
}

func (d *Debugger) checkBreak() bool {
	pc := d.console.cpu.PC()
	for _, bp := range d.breakpoints {
		if bp == pc {
			fmt.Printf("Break at: 0x%04x\n", bp)
			return true
		}
	}
	return false
}

func (d *Debugger) stepCommand(args []string) int {
	if len(args) < 2 {
		return d.console.Step()
	}
	re := regexp.MustCompile("^([0-9]+)")
	if !re.MatchString(args[1]) {
		return 0
	}
	num, _ := strconv.Atoi(re.FindString(args[1]))
	unit := args[1][len(args[1])-1]
	cycles := 0
	switch unit {
	case 's':
		target := cpuFrequency * num
		for cycles < target {
			cycles += d.console.Step()
			if d.checkBreak() {
				return cycles
			}
		}
	case 'd':
		for i := 0; i < num; i++ {
			cycles += d.console.Step()
			d.printState()
			if d.checkBreak() {
				return cycles
			}
		}
	default:
		for i := 0; i < num; i++ {
			cycles += d.console.Step()
			if d.checkBreak() {
				return cycles
			}
		}
	}
	return cycles
}

func (d *Debugger) breakPointCommand(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("breakpoint: missing address")
	}
	var addr int
	if _, err := fmt.Sscanf(args[1], "0x%x", &addr); err != nil {
		return fmt.Errorf("breakpoint: %w", err)
	}
	d.breakpoints = append(d.breakpoints, uint16(addr))
	return nil
}

// Run reads one command line from stdin and executes it, returning false
// once a quit command has been issued.
func (d *Debugger) Run() bool {
	fmt.Printf("Debugger mode, 'q' to quit \n>> ")
	in := bufio.NewReader(os.Stdin)
	line, err := in.ReadString('\n')
	if err != nil {
		return false
	}
	args := strings.Split(strings.TrimSuffix(line, "\n"), " ")
	switch args[0] {
	case "p", "print":
		d.printCommand(args)
	case "s", "step":
		cycles := d.stepCommand(args)
		d.printState()
		fmt.Printf("Executed %d CPU cycles, %d PPU cycles.\n", cycles, 3*cycles)
	case "br", "breakpoint":
		if err := d.breakPointCommand(args); err != nil {
			fmt.Println(err)
		}
	case "r", "reset":
		d.console.Reset()
	case "q", "quit":
		fmt.Println("Quitting.")
		return false
	default:
		fmt.Printf("unknown command %q\n", line)
	}
	return true
}
