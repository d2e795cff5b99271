package core

// Color is a semantic foreground color for a screen cell.
// Hosts translate it into ANSI 256 codes or RGBA values.
type Color uint8

// Palette used by the game renderers.
const (
	ColorDefault Color = iota
	ColorSky           // background streaks
	ColorWall          // wall body
	ColorWallCap       // wall lip facing the gap
	ColorPlayer        // player body
	ColorFlame         // jet exhaust
	ColorGround        // floor line
	ColorLabel         // score / prompt text
	ColorHurt          // game-over tint
	ColorMuted         // secondary HUD text
)
