// Package geo converts between the WKT point representation PostGIS
// stores and the longitude/latitude pairs the API serves. All geometry
// math (distance predicates, SRID handling) stays in the database.
package geo

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is a WGS84 coordinate pair. WKT and PostGIS order axes as
// (longitude latitude); the JSON shape keeps that order explicit.
type Point struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// ParsePointWKT parses a WKT point such as "POINT(-73.9857 40.7484)".
// An optional "SRID=n;" prefix (EWKT) is tolerated and ignored.
func ParsePointWKT(wkt string) (Point, error) {
	s := strings.TrimSpace(wkt)

	if strings.HasPrefix(strings.ToUpper(s), "SRID=") {
		idx := strings.Index(s, ";")
		if idx < 0 {
			return Point{}, fmt.Errorf("invalid WKT point %q: malformed SRID prefix", wkt)
		}
		s = strings.TrimSpace(s[idx+1:])
	}

	upper := strings.ToUpper(s)
	if !strings.HasPrefix(upper, "POINT") {
		return Point{}, fmt.Errorf("invalid WKT point %q: expected POINT geometry", wkt)
	}

	open := strings.Index(s, "(")
	end := strings.LastIndex(s, ")")
	if open < 0 || end < open {
		return Point{}, fmt.Errorf("invalid WKT point %q: missing coordinate list", wkt)
	}

	fields := strings.Fields(s[open+1 : end])
	if len(fields) != 2 {
		return Point{}, fmt.Errorf("invalid WKT point %q: expected two coordinates, got %d", wkt, len(fields))
	}

	lng, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Point{}, fmt.Errorf("invalid WKT point %q: bad longitude: %w", wkt, err)
	}

	lat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Point{}, fmt.Errorf("invalid WKT point %q: bad latitude: %w", wkt, err)
	}

	return Point{Longitude: lng, Latitude: lat}, nil
}

// FormatPointWKT renders a point in the form ST_GeomFromText accepts.
func FormatPointWKT(p Point) string {
	return fmt.Sprintf("POINT(%s %s)",
		strconv.FormatFloat(p.Longitude, 'f', -1, 64),
		strconv.FormatFloat(p.Latitude, 'f', -1, 64),
	)
}
