package layout

// BrowserLayout holds calculated pane dimensions for both browser modes.
type BrowserLayout struct {
	Width  int
	Height int

	ContentHeight int // height minus status bar

	// Grid mode: list on the left, payload above response on the right.
	ListWidth      int
	DetailWidth    int
	PayloadHeight  int
	ResponseHeight int

	// Fullscreen mode: payload and response side by side.
	LeftWidth  int
	RightWidth int
}

const (
	statusBarHeight = 1
	minListWidth    = 24
	maxListWidth    = 60
)

// Calculate computes the browser layout from terminal dimensions.
func Calculate(width, height int) BrowserLayout {
	l := BrowserLayout{
		Width:         width,
		Height:        height,
		ContentHeight: height - statusBarHeight,
	}
	if l.ContentHeight < 1 {
		l.ContentHeight = 1
	}

	if width < minListWidth*2 {
		l.ListWidth = width / 2
	} else {
		l.ListWidth = clamp(width*2/5, minListWidth, maxListWidth)
	}
	l.DetailWidth = width - l.ListWidth

	l.PayloadHeight = l.ContentHeight / 2
	l.ResponseHeight = l.ContentHeight - l.PayloadHeight

	l.LeftWidth = width / 2
	l.RightWidth = width - l.LeftWidth

	return l
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
