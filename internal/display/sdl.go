package display

import (
	"fmt"
	"runtime"
	"time"

	"github.com/golang/glog"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/costdin/core-war/internal/vm"
)

const (
	// canvasWidth is how many core cells one pixel row shows.
	canvasWidth = 100

	windowWidth  = 1000
	windowHeight = 800
	pixelScale   = 10

	// presentInterval throttles canvas presentation to ~24 fps.
	presentInterval = time.Second / 24

	// eventBuffer sizes the channel between the executor goroutine and
	// the render worker. When the worker falls behind, events are
	// dropped rather than blocking the machine.
	eventBuffer = 8192
)

var warriorColors = []sdl.Color{
	{R: 255, G: 0, B: 0, A: 255},
	{R: 0, G: 0, B: 255, A: 255},
	{R: 0, G: 255, B: 0, A: 255},
	{R: 255, G: 255, B: 0, A: 255},
	{R: 255, G: 0, B: 255, A: 255},
	{R: 255, G: 255, B: 255, A: 255},
}

var warriorLightColors = []sdl.Color{
	{R: 255, G: 114, B: 118, A: 255},
	{R: 164, G: 219, B: 232, A: 255},
	{R: 162, G: 228, B: 184, A: 255},
	{R: 241, G: 235, B: 156, A: 255},
	{R: 241, G: 178, B: 220, A: 255},
	{R: 240, G: 240, B: 240, A: 255},
}

// SdlDisplay renders the core on an SDL pixel canvas. All SDL state lives
// on a dedicated worker goroutine; Notify only places events on a
// buffered channel, so the executor is never blocked on rendering.
type SdlDisplay struct {
	events chan vm.VmEvent
	done   chan struct{}
}

// NewSdlDisplay opens the window and starts the render worker. It returns
// once SDL is initialized or failed to.
func NewSdlDisplay() (*SdlDisplay, error) {
	d := &SdlDisplay{
		events: make(chan vm.VmEvent, eventBuffer),
		done:   make(chan struct{}),
	}

	ready := make(chan error, 1)
	go d.run(ready)
	if err := <-ready; err != nil {
		return nil, err
	}
	return d, nil
}

// Notify forwards an event to the render worker. Program terminations are
// logged immediately; everything else is dropped if the worker's buffer
// is full.
func (d *SdlDisplay) Notify(event vm.VmEvent) {
	if event.Type == vm.TerminatedProgram {
		glog.Infof("Warrior %d terminated after %d rounds", event.WarriorID, event.Round)
		return
	}

	select {
	case d.events <- event:
	default:
	}
}

// Close stops the render worker and tears down the window.
func (d *SdlDisplay) Close() {
	close(d.events)
	<-d.done
}

// run owns the SDL window, renderer and event pump. SDL requires its
// calls to stay on one OS thread.
func (d *SdlDisplay) run(ready chan<- error) {
	runtime.LockOSThread()
	defer close(d.done)

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		ready <- fmt.Errorf("failed to initialize SDL video: %w", err)
		return
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow("core-war",
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		windowWidth, windowHeight, sdl.WINDOW_SHOWN)
	if err != nil {
		ready <- fmt.Errorf("failed to create window: %w", err)
		return
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		ready <- fmt.Errorf("failed to create renderer: %w", err)
		return
	}
	defer renderer.Destroy()
	renderer.SetScale(pixelScale, pixelScale)

	ready <- nil
	lastPresent := time.Now()

	for {
		sdl.PollEvent()

		event, ok := <-d.events
		if !ok {
			return
		}
		d.draw(renderer, event)

		if time.Since(lastPresent) > presentInterval {
			renderer.Present()
			lastPresent = time.Now()
		}
	}
}

// draw paints one event onto the canvas: passed-over cells in the
// warrior's solid color, the current thread head in its light color.
func (d *SdlDisplay) draw(renderer *sdl.Renderer, event vm.VmEvent) {
	solid := warriorColors[event.WarriorID%len(warriorColors)]
	light := warriorLightColors[event.WarriorID%len(warriorLightColors)]

	switch event.Type {
	case vm.TerminatedThread:
		setColor(renderer, solid)
		renderer.DrawPoint(point(event.MovedFrom))
	case vm.Jump:
		setColor(renderer, solid)
		renderer.DrawPoint(point(event.MovedFrom))
		setColor(renderer, light)
		renderer.DrawPoint(point(event.Offset))
	case vm.Change:
		setColor(renderer, solid)
		renderer.DrawPoint(point(event.Offset))
	}
}

func setColor(renderer *sdl.Renderer, color sdl.Color) {
	renderer.SetDrawColor(color.R, color.G, color.B, color.A)
}

func point(offset int) (int32, int32) {
	return int32(offset % canvasWidth), int32(offset / canvasWidth)
}
