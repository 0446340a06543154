package styles

// Plain glyphs so output stays readable without a Nerd Font.
const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "!"
	IconInfo    = "i"
	IconBullet  = "▸"
	IconClock   = "◷"
)
