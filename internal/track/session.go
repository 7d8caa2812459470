package track

import (
	"image"

	"racer/internal/race"
)

// Car names used in events and telemetry.
const (
	PlayerName   = "player"
	ComputerName = "computer"
)

// NewSession builds a race on this course. Car sizes and collision masks
// come from the sprites, so loaded assets drive the physics too.
func (d *Definition) NewSession(sp *Sprites) *race.Session {
	pSpec := d.Player.Car.spec()
	pSpec.Width, pSpec.Height = sp.PlayerCar.Rect.Dx(), sp.PlayerCar.Rect.Dy()
	player := race.NewCar(PlayerName, pSpec, d.Player.Start.pose(), d.Player.ResetAngle)

	cSpec := d.Computer.Car.spec()
	cSpec.Width, cSpec.Height = sp.ComputerCar.Rect.Dx(), sp.ComputerCar.Rect.Dy()
	computer := race.NewComputerCar(
		race.NewCar(ComputerName, cSpec, d.Computer.Start.pose(), d.Computer.ResetAngle),
		race.NewPath(d.Waypoints()),
		d.Computer.WaypointRadius,
	)

	finish := race.FinishLine{
		Mask:   race.MaskFromImage(sp.Finish),
		Offset: image.Pt(d.Finish.X, d.Finish.Y),
		Entry:  d.entrySide(),
	}

	return race.NewSession(player, race.MaskFromImage(sp.PlayerCar), computer, race.MaskFromImage(sp.Border), finish)
}
