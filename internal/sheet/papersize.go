package sheet

import (
	"fmt"
	"math"
	"strings"
)

// PaperSize is a physical page size in centimeters.
type PaperSize struct {
	Name     string
	WidthCM  float64
	HeightCM float64
}

// Standard paper sizes.
var paperSizes = map[string]PaperSize{
	"letter": {Name: "Letter", WidthCM: 21.6, HeightCM: 27.9},
	"a4":     {Name: "A4", WidthCM: 21.0, HeightCM: 29.7},
	"office": {Name: "Office", WidthCM: 21.6, HeightCM: 33.0},
}

// PaperSizeByName looks up a standard paper size, case-insensitively.
func PaperSizeByName(name string) (PaperSize, error) {
	size, ok := paperSizes[strings.ToLower(name)]
	if !ok {
		return PaperSize{}, fmt.Errorf("unknown paper size %q (have letter, a4, office)", name)
	}
	return size, nil
}

// CustomPaperSize builds a paper size from explicit centimeter dimensions.
func CustomPaperSize(widthCM, heightCM float64) (PaperSize, error) {
	if widthCM <= 0 || heightCM <= 0 {
		return PaperSize{}, fmt.Errorf("paper dimensions must be positive, got %.1fx%.1f", widthCM, heightCM)
	}
	return PaperSize{Name: "Custom", WidthCM: widthCM, HeightCM: heightCM}, nil
}

// Pixels converts the physical size to pixel dimensions at the print DPI.
func (p PaperSize) Pixels() (width, height int) {
	width = int(math.Floor(p.WidthCM * DPI / 2.54))
	height = int(math.Floor(p.HeightCM * DPI / 2.54))
	return width, height
}
