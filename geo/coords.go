package geo

import "strconv"

// Coord is a longitude/latitude pair in decimal degrees.
type Coord struct {
	Lon, Lat float64
}

// Format renders a coordinate to 6 decimal places, as link-attribution
// output requires.
func (c Coord) Format() (lon, lat string) {
	return strconv.FormatFloat(c.Lon, 'f', 6, 64), strconv.FormatFloat(c.Lat, 'f', 6, 64)
}
