package method

import (
	"cmp"
	"fmt"
	"strings"
)

// Location represents a defining source location
type Location struct {
	File string
	Line int
}

// Compare orders locations by file path first, then by line
func (l Location) Compare(other Location) int {
	if ret := strings.Compare(l.File, other.File); ret != 0 {
		return ret
	}
	return cmp.Compare(l.Line, other.Line)
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// CompareLocations is a comparison function usable with slices.SortFunc
func CompareLocations(a, b Location) int {
	return a.Compare(b)
}
