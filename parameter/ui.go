package parameter

import "time"

// HUD layout
const (
	// HUDRow and HUDCol place the status line
	HUDRow = 1
	HUDCol = 2

	// AttributionMargin is the right-edge gap for the provider attribution
	AttributionMargin = 2

	// SpinnerInterval advances the loading spinner
	SpinnerInterval = 100 * time.Millisecond
)

// SpinnerFrames is the loading spinner cycle
var SpinnerFrames = [4]rune{'|', '/', '-', '\\'}

// Keys
const (
	KeyQuit      = 'q'
	KeyQuitUpper = 'Q'
	KeyToggleHUD = 'h'
)
