package gs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// BoundingBox is a page box in PostScript points, lower-left origin.
type BoundingBox struct {
	LLX, LLY, URX, URY float64
	// HiRes is set when the box came from %%HiResBoundingBox.
	HiRes bool
}

var (
	bboxLine      = regexp.MustCompile(`%%BoundingBox:\s+(-?\d+)\s+(-?\d+)\s+(-?\d+)\s+(-?\d+)`)
	hiResBBoxLine = regexp.MustCompile(`%%HiResBoundingBox:\s+(-?[\d.]+)\s+(-?[\d.]+)\s+(-?[\d.]+)\s+(-?[\d.]+)`)
)

// ParseBoundingBox extracts the page bounding box from the combined
// output of a bbox-device probe. The high-resolution box is preferred
// over the integer one when both are present.
func ParseBoundingBox(output string) (BoundingBox, error) {
	var box BoundingBox
	found := false

	for _, line := range strings.Split(output, "\n") {
		if m := hiResBBoxLine.FindStringSubmatch(line); m != nil {
			if b, err := boxFromMatch(m); err == nil {
				b.HiRes = true
				box = b
				found = true
			}
			continue
		}
		if box.HiRes {
			continue
		}
		if m := bboxLine.FindStringSubmatch(line); m != nil {
			if b, err := boxFromMatch(m); err == nil {
				box = b
				found = true
			}
		}
	}

	if !found {
		return BoundingBox{}, fmt.Errorf("no bounding box in probe output")
	}
	if box.URX <= box.LLX || box.URY <= box.LLY {
		return BoundingBox{}, fmt.Errorf("degenerate bounding box [%s %s %s %s]",
			trim(box.LLX), trim(box.LLY), trim(box.URX), trim(box.URY))
	}
	return box, nil
}

func boxFromMatch(m []string) (BoundingBox, error) {
	vals := make([]float64, 4)
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return BoundingBox{}, err
		}
		vals[i] = v
	}
	return BoundingBox{LLX: vals[0], LLY: vals[1], URX: vals[2], URY: vals[3]}, nil
}

// trim formats a coordinate without trailing zeros, matching the way
// the probe reports it.
func trim(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
