// Command nesgo runs an iNES ROM in a window, rendering PPU frames via
// OpenGL and streaming APU samples via portaudio.
package main

import (
	"flag"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/golang/glog"

	"github.com/nescore/nesgo/nes"
)

const (
	windowWidth  = 256 * 2
	windowHeight = 240 * 2
)

// Shaders for blitting the PPU's RGBA frame buffer onto a full-screen
// quad as a single 2D texture.
const (
	vertexShaderSrc = `
  #version 330

  attribute vec3 position;
  attribute vec2 uv;
  varying vec2 vuv;
  void main(void){
    gl_Position = vec4(position, 1.0);
    vuv = uv;
  }
  ` + "\x00"

	fragmentShaderSrc = `
  #version 330

  varying vec2 vuv;
  uniform sampler2D texture;
  void main(void){
    gl_FragColor = texture2D(texture, vuv);
  }
  ` + "\x00"
)

var (
	vertexPosition = []float32{1, 1, -1, 1, -1, -1, 1, -1}
	vertexUV       = []float32{1, 0, 0, 0, 0, 1, 1, 1}
)

func compileShader(code string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	ccode, free := gl.Strs(code)
	defer free()
	gl.ShaderSource(shader, 1, ccode, nil)
	gl.CompileShader(shader)
	var result int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &result)
	if result == gl.FALSE {
		var length int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &length)
		log := strings.Repeat("\x00", int(length+1))
		gl.GetShaderInfoLog(shader, length, nil, gl.Str(log))
		return 0, fmt.Errorf("compiling shader: %s", log)
	}
	return shader, nil
}

func newProgram() (uint32, error) {
	vs, err := compileShader(vertexShaderSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragmentShaderSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)
	var result int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &result)
	if result == gl.FALSE {
		var length int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &length)
		log := strings.Repeat("\x00", int(length+1))
		gl.GetProgramInfoLog(program, length, nil, gl.Str(log))
		return 0, fmt.Errorf("linking program: %s", log)
	}
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)
	return program, nil
}

func updateTexture(program uint32, frame *image.RGBA) {
	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(frame.Rect.Size().X), int32(frame.Rect.Size().Y),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(frame.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	positionLocation := uint32(gl.GetAttribLocation(program, gl.Str("position\x00")))
	uvLocation := uint32(gl.GetAttribLocation(program, gl.Str("uv\x00")))
	textureLocation := gl.GetUniformLocation(program, gl.Str("texture\x00"))
	gl.EnableVertexAttribArray(positionLocation)
	gl.EnableVertexAttribArray(uvLocation)
	gl.Uniform1i(textureLocation, 0)
	gl.VertexAttribPointer(positionLocation, 2, gl.FLOAT, false, 0, gl.Ptr(vertexPosition))
	gl.VertexAttribPointer(uvLocation, 2, gl.FLOAT, false, 0, gl.Ptr(vertexUV))
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.DrawArrays(gl.TRIANGLE_FAN, 0, 4)
}

// readKeys maps WASD + FGHJ to the NES pad.
func readKeys(window *glfw.Window) [8]bool {
	var keys [8]bool
	keys[nes.ButtonRight] = window.GetKey(glfw.KeyD) == glfw.Press
	keys[nes.ButtonLeft] = window.GetKey(glfw.KeyA) == glfw.Press
	keys[nes.ButtonDown] = window.GetKey(glfw.KeyS) == glfw.Press
	keys[nes.ButtonUp] = window.GetKey(glfw.KeyW) == glfw.Press
	keys[nes.ButtonStart] = window.GetKey(glfw.KeyG) == glfw.Press
	keys[nes.ButtonSelect] = window.GetKey(glfw.KeyF) == glfw.Press
	keys[nes.ButtonB] = window.GetKey(glfw.KeyH) == glfw.Press
	keys[nes.ButtonA] = window.GetKey(glfw.KeyJ) == glfw.Press
	return keys
}

func main() {
	romPath := flag.String("rom", "", "path to an iNES (.nes) ROM file")
	verbose := flag.Bool("verbose", false, "enable verbose console logging")
	debug := flag.Bool("debug", false, "drive the console from an interactive stdin debugger instead of the GUI")
	flag.Parse()
	if *romPath == "" {
		glog.Fatalf("nesgo: -rom is required")
	}

	console, err := nes.LoadROM(*romPath, nes.Config{Verbose: *verbose})
	if err != nil {
		glog.Fatalf("nesgo: %v", err)
	}

	if *debug {
		debugger := nes.NewDebugger(console)
		for debugger.Run() {
		}
		return
	}

	audio, err := newAudioOutput()
	if err != nil {
		glog.Fatalf("nesgo: %v", err)
	}
	defer audio.terminate()
	console.SetAudioOut(audio.channel)

	if err := glfw.Init(); err != nil {
		glog.Fatalf("nesgo: glfw init: %v", err)
	}
	defer glfw.Terminate()
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	window, err := glfw.CreateWindow(windowWidth, windowHeight, "nesgo", nil, nil)
	if err != nil {
		glog.Fatalf("nesgo: creating window: %v", err)
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		glog.Fatalf("nesgo: gl init: %v", err)
	}
	program, err := newProgram()
	if err != nil {
		glog.Fatalf("nesgo: %v", err)
	}
	gl.UseProgram(program)

	console.AddObserver(func(signal string, payload interface{}) {
		if signal != "frame-ready" {
			return
		}
		frame := payload.(*image.RGBA)
		updateTexture(program, frame)
		console.SetButtons(readKeys(window))
		window.SwapBuffers()
		glfw.PollEvents()
	})

	for !window.ShouldClose() {
		time.Sleep(time.Millisecond)
		console.Step()
	}
}
