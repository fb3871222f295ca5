// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package crs reprojects query points into the archive's native projected
// coordinate system. Source systems are named by EPSG-style code or raw
// proj4 definition; the target is the proj4 descriptor read from the
// archive metadata. Transforms go through github.com/ctessum/geom/proj so
// ellipsoid and datum handling matches standard geodesy tooling.
package crs

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ctessum/geom/proj"

	"github.com/pdiddy/gridpoint/pkg/types"
)

// epsgDefinitions registers the EPSG codes accepted as input systems.
// Values are proj4 definitions with the same ellipsoid/datum parameters
// the corresponding authority entries declare.
var epsgDefinitions = map[string]string{
	"EPSG:4326": "+proj=longlat +datum=WGS84 +no_defs",
	"EPSG:4269": "+proj=longlat +datum=NAD83 +no_defs",
	"EPSG:3857": "+proj=merc +a=6378137 +b=6378137 +lat_ts=0 +lon_0=0 +x_0=0 +y_0=0 +k=1 +units=m +nadgrids=@null +no_defs",
	"EPSG:5070": "+proj=aea +lat_1=29.5 +lat_2=45.5 +lat_0=23 +lon_0=-96 +x_0=0 +y_0=0 +datum=NAD83 +units=m +no_defs",
}

// Resolve turns a CRS identifier into a proj4 definition. Identifiers are
// either registered EPSG codes or raw proj4 strings (starting with "+").
func Resolve(identifier string) (string, error) {
	id := strings.TrimSpace(identifier)
	if strings.HasPrefix(id, "+") {
		return id, nil
	}
	def, ok := epsgDefinitions[strings.ToUpper(id)]
	if !ok {
		return "", &types.InvalidCoordinateSystemError{
			CRS: identifier,
			Err: fmt.Errorf("not a registered EPSG code (%s) or proj4 definition", strings.Join(knownCodes(), ", ")),
		}
	}
	return def, nil
}

// Reproject transforms point into the target system and returns the
// projected (x, y). When the source and target definitions are the same
// system the input is returned exactly, with no transform round trip.
func Reproject(point types.GeoPoint, targetProj4 string) (float64, float64, error) {
	srcDef, err := Resolve(point.CRS)
	if err != nil {
		return 0, 0, err
	}

	if sameDefinition(srcDef, targetProj4) {
		return point.X, point.Y, nil
	}

	src, err := proj.Parse(srcDef)
	if err != nil {
		return 0, 0, &types.InvalidCoordinateSystemError{CRS: point.CRS, Err: err}
	}
	dst, err := proj.Parse(targetProj4)
	if err != nil {
		return 0, 0, &types.InvalidCoordinateSystemError{CRS: targetProj4, Err: err}
	}

	transform, err := src.NewTransform(dst)
	if err != nil {
		return 0, 0, &types.InvalidCoordinateSystemError{CRS: point.CRS, Err: err}
	}
	// NewTransform returns a nil Transformer when the parsed systems are
	// equal, which the textual comparison above can miss (e.g. "+x_0=0"
	// versus "+x_0=0.0"). Nil means identity.
	if transform == nil {
		return point.X, point.Y, nil
	}

	x, y, err := transform(point.X, point.Y)
	if err != nil {
		return 0, 0, &types.ProjectionDomainError{X: point.X, Y: point.Y, CRS: point.CRS, Err: err}
	}
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return 0, 0, &types.ProjectionDomainError{
			X: point.X, Y: point.Y, CRS: point.CRS,
			Err: fmt.Errorf("transform produced a non-finite coordinate"),
		}
	}
	return x, y, nil
}

// sameDefinition compares proj4 definitions as unordered parameter sets,
// so formatting and parameter order do not defeat the identity check.
func sameDefinition(a, b string) bool {
	fa, fb := strings.Fields(a), strings.Fields(b)
	if len(fa) != len(fb) {
		return false
	}
	sort.Strings(fa)
	sort.Strings(fb)
	for i := range fa {
		if fa[i] != fb[i] {
			return false
		}
	}
	return true
}

func knownCodes() []string {
	codes := make([]string, 0, len(epsgDefinitions))
	for code := range epsgDefinitions {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
