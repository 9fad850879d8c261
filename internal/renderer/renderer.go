package renderer

import (
	"fmt"

	"github.com/gopxl/pixel/v2"
	"github.com/gopxl/pixel/v2/backends/opengl"
	"github.com/gopxl/pixel/v2/ext/imdraw"
	"github.com/gopxl/pixel/v2/ext/text"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/dronet-sim/dronet/internal/sim"
)

// Run opens a window and draws the simulation, advancing one step per
// frame. Must be called on the main thread via opengl.Run.
func Run(runner *sim.Runner, width, height float64) {
	cfg := opengl.WindowConfig{
		Title:  "dronet",
		Bounds: pixel.R(0, 0, width, height),
	}
	win, err := opengl.NewWindow(cfg)
	if err != nil {
		panic(err)
	}
	defer win.Destroy()

	atlas := text.NewAtlas(basicfont.Face7x13, text.ASCII)
	depot := runner.Depot()

	for !win.Closed() {
		runner.Step()

		win.Clear(colornames.Black)

		imDepot := imdraw.New(nil)
		imDepot.Color = colornames.Red
		imDepot.Push(pixel.V(depot.Coords.X, depot.Coords.Y))
		imDepot.Circle(8, 0)
		imDepot.Color = colornames.Darkred
		imDepot.Push(pixel.V(depot.Coords.X, depot.Coords.Y))
		imDepot.Circle(depot.CommunicationRange, 1)
		imDepot.Draw(win)

		for _, d := range runner.Drones() {
			imPath := imdraw.New(nil)
			imPath.Color = colornames.Dimgray
			for _, wp := range d.Path {
				imPath.Push(pixel.V(wp.X, wp.Y))
			}
			imPath.Polygon(1)
			imPath.Draw(win)

			imDrone := imdraw.New(nil)
			imDrone.Color = colornames.Green
			if d.Diverting() {
				imDrone.Color = colornames.Orange
			}
			imDrone.Push(pixel.V(d.Coords.X, d.Coords.Y))
			imDrone.Circle(5, 0)

			imDroneTxt := text.New(pixel.V(d.Coords.X+10, d.Coords.Y), atlas)
			fmt.Fprintln(imDroneTxt, "Id:", d.ID)
			fmt.Fprintf(imDroneTxt, "Buf: %d\n", d.BufferLength())
			fmt.Fprintf(imDroneTxt, "%s\n", d.State())

			imDrone.Draw(win)
			imDroneTxt.Draw(win, pixel.IM)
		}

		stepTxt := text.New(pixel.V(10, height-20), atlas)
		fmt.Fprintf(stepTxt, "step: %d delivered: %d", runner.CurrentStep(), runner.Metrics().DeliveredPackets())
		stepTxt.Draw(win, pixel.IM)

		win.Update()
	}
}
