// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"fmt"
	"strings"
	"time"
)

// cfSteps maps CF time unit names to their duration.
var cfSteps = map[string]time.Duration{
	"seconds": time.Second,
	"minutes": time.Minute,
	"hours":   time.Hour,
	"days":    24 * time.Hour,
}

// epochLayouts are the timestamp formats accepted after "since".
var epochLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// decodeCFTimes converts a raw time coordinate into UTC instants using a
// CF units string such as "hours since 1990-01-01 00:00:00".
func decodeCFTimes(values []float64, units string) ([]time.Time, error) {
	unit, epochStr, ok := strings.Cut(strings.TrimSpace(units), " since ")
	if !ok {
		return nil, fmt.Errorf("time units %q: want \"<unit> since <epoch>\"", units)
	}

	step, ok := cfSteps[strings.ToLower(strings.TrimSpace(unit))]
	if !ok {
		return nil, fmt.Errorf("time units %q: unsupported unit %q", units, unit)
	}

	var epoch time.Time
	var err error
	epochStr = strings.TrimSpace(epochStr)
	for _, layout := range epochLayouts {
		if epoch, err = time.ParseInLocation(layout, epochStr, time.UTC); err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("time units %q: unparseable epoch %q", units, epochStr)
	}

	times := make([]time.Time, len(values))
	for i, v := range values {
		times[i] = epoch.Add(time.Duration(v * float64(step)))
	}
	return times, nil
}
