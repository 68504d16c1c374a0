package nes

import (
	"fmt"
	"image"

	"github.com/golang/glog"
	"github.com/nescore/nesgo/internal/rom"
)

// Observer receives Console signals: ("frame-ready", *image.RGBA) at
// roughly 60 Hz while running, and ("nes-reset", nil) after an explicit
// Reset. LoadROM and LoadROMBytes also reset the console, but they do so
// before returning it, so no observer can be registered to receive that
// first "nes-reset".
type Observer func(signal string, payload interface{})

// Config controls ambient, non-functional console behavior.
type Config struct {
	// Verbose enables a glog.V(2) line per Step (cycles consumed and pc).
	// The CPU's tolerant-NOP decode log is controlled by glog's own -v
	// flag, not by this field.
	Verbose bool
}

// Console is the aggregate that owns every peer (CPU, PPU, APU,
// controller, mapper) and drives the master 1:3 CPU:PPU clock. It is the
// sole owner; peers hold only the non-owning back-references documented
// on CPUBus and PPU for DMA stalls and NMI signaling.
type Console struct {
	cpu        *CPU
	ppu        *PPU
	apu        *APU
	controller *Controller
	cartridge  *Cartridge
	config     Config

	observers []Observer
}

// NewConsole wires a fresh Console around cartridge.
func NewConsole(cartridge *Cartridge, config Config) *Console {
	controller := NewController()
	ppuBus := NewPPUBus(NewRAM(), cartridge.Mapper)
	ppu := NewPPU(ppuBus)
	apu := NewAPU()
	cpuBus := NewCPUBus(NewRAM(), ppu, apu, cartridge.Mapper, controller)
	cpu := NewCPU(cpuBus)
	cpuBus.attachCPU(cpu)
	ppu.attachCPU(cpu)

	return &Console{
		cpu:        cpu,
		ppu:        ppu,
		apu:        apu,
		controller: controller,
		cartridge:  cartridge,
		config:     config,
	}
}

// LoadROM reads path as an iNES file and returns a Console ready to run.
// Any parse error (bad magic, truncated payload, unsupported mapper) is
// returned rather than panicking.
func LoadROM(path string, config Config) (*Console, error) {
	img, err := rom.Load(path)
	if err != nil {
		return nil, fmt.Errorf("nes: loading ROM: %w", err)
	}
	return newConsoleFromImage(img, config)
}

// LoadROMBytes parses data as an iNES image already held in memory.
func LoadROMBytes(data []byte, config Config) (*Console, error) {
	img, err := rom.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("nes: parsing ROM: %w", err)
	}
	return newConsoleFromImage(img, config)
}

func newConsoleFromImage(img *rom.Image, config Config) (*Console, error) {
	cartridge, err := NewCartridge(img)
	if err != nil {
		return nil, fmt.Errorf("nes: %w", err)
	}
	console := NewConsole(cartridge, config)
	console.Reset()
	return console, nil
}

// AddObserver registers o to receive "frame-ready" and "nes-reset"
// signals. Observers are invoked synchronously from Step/Reset.
func (c *Console) AddObserver(o Observer) {
	c.observers = append(c.observers, o)
}

func (c *Console) notify(signal string, payload interface{}) {
	for _, o := range c.observers {
		o(signal, payload)
	}
}

// Reset puts the CPU and PPU back to their power-on/reset state and
// emits "nes-reset" to observers.
func (c *Console) Reset() {
	c.cpu.Reset()
	c.ppu.Reset()
	c.notify("nes-reset", nil)
}

// Step runs one CPU instruction (or DMA-stall tick) and the matching 3x
// PPU dot-cycles, emitting "frame-ready" whenever the PPU completes a
// frame. It returns the number of CPU cycles consumed.
func (c *Console) Step() int {
	cycles := c.cpu.Tick()
	for i := 0; i < cycles; i++ {
		c.apu.Step()
	}
	for i := 0; i < cycles*3; i++ {
		c.ppu.Step()
		if done, frame := c.ppu.Frame(); done {
			c.notify("frame-ready", frame)
		}
	}
	if c.config.Verbose {
		glog.V(2).Infof("console: stepped %d cycles, pc=$%04x", cycles, c.cpu.PC())
	}
	return cycles
}

// Frame returns the PPU's picture buffer and true only while the PPU sits
// on the dot at which a frame completes; at any other time it returns nil
// and false. Earlier frames are not retained.
func (c *Console) Frame() (*image.RGBA, bool) {
	done, frame := c.ppu.Frame()
	return frame, done
}

// SetAudioOut attaches the channel the host drains for APU samples.
func (c *Console) SetAudioOut(out chan float32) {
	c.apu.SetAudioOut(out)
}

// SetButtons latches the current controller #1 button state.
func (c *Console) SetButtons(buttons [8]bool) {
	c.controller.Set(buttons)
}

// Start runs Step in a loop until stop is closed or receives a value (there
// is no separate Stop method), calling tick after
// every step so the host can pace itself (e.g. against vsync). It blocks
// the calling goroutine; callers that want it backgrounded should run it
// in their own goroutine.
func (c *Console) Start(stop <-chan struct{}, tick func()) {
	for {
		select {
		case <-stop:
			return
		default:
			c.Step()
			if tick != nil {
				tick()
			}
		}
	}
}
