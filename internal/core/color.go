package core

// Color represents a foreground color for a screen cell.
// UI colors map to ANSI codes; tile colors map to the 12-color tile palette.
type Color uint8

// Predefined colors for UI elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightWhite
	ColorGray
)

// Tile palette colors, one per engine color index.
const (
	ColorTile0 Color = iota + 32
	ColorTile1
	ColorTile2
	ColorTile3
	ColorTile4
	ColorTile5
	ColorTile6
	ColorTile7
	ColorTile8
	ColorTile9
	ColorTile10
	ColorTile11
)

// TilePaletteSize is the number of distinct tile colors.
const TilePaletteSize = 12

// TileColor returns the screen color for engine color index i.
// Indexes outside the palette wrap around.
func TileColor(i int) Color {
	if i < 0 {
		i = -i
	}
	return ColorTile0 + Color(i%TilePaletteSize)
}

// IsTile reports whether c is one of the tile palette colors.
func (c Color) IsTile() bool {
	return c >= ColorTile0 && c <= ColorTile11
}
