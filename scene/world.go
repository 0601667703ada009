package scene

import (
	"github.com/lixenwraith/weathr/parameter"
	"github.com/lixenwraith/weathr/parameter/visual"
)

// Horizon returns the first ground row
func Horizon(grid Size) int {
	return max(grid.Height-parameter.GroundHeight, 0)
}

// HouseAt returns the top-left cell of the house standing on the horizon
// ok is false when the grid cannot fit the house below the sprite band
func HouseAt(grid Size) (row, col int, ok bool) {
	h := len(visual.HouseShape)
	if grid.Height < spriteMinHeight+parameter.GroundHeight+h {
		return 0, 0, false
	}
	if grid.Width < visual.HouseWidth+2*parameter.HouseMargin {
		return 0, 0, false
	}
	return Horizon(grid) - h, grid.Width/2 - visual.HouseWidth/2, true
}

// ChimneyAt returns the chimney top cell smoke rises from
func ChimneyAt(grid Size) (row, col int, ok bool) {
	row, col, ok = HouseAt(grid)
	if !ok {
		return 0, 0, false
	}
	return row, col + visual.HouseChimneyCol, true
}
