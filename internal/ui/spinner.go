package ui

// spinnerFrames is the rolling wheel of ngp.c's display_status, cycled
// once per tick while a search's store is still Scanning.
var spinnerFrames = [4]string{"/", "-", "\\", "|"}

func spinnerFrame(tick int) string {
	return spinnerFrames[tick%len(spinnerFrames)]
}
