package dvtest

import "github.com/samcharles93/dvfile/pkg/dv"

// Reference mirrors the two-timepoint, three-wavelength acquisition used as
// the acceptance file: 32×32 pixels, 3 planes, uint16 samples.
func Reference() Stack {
	return Stack{
		NX:          32,
		NY:          32,
		Planes:      3,
		Waves:       3,
		Times:       2,
		Mode:        dv.PixelUint16,
		MX:          1,
		MY:          1,
		MZ:          1,
		Min:         215,
		Max:         1743,
		Mean:        775.83331,
		WaveLengths: []int16{528, 617, 685},
		Titles:      []string{"reference stack"},
		Pixel:       referencePixel,
	}
}

var referenceHeads = map[int][]float64{
	0: {326, 326, 284},
	1: {522, 522, 516},
}

func referencePixel(section, y, x int) float64 {
	if head, ok := referenceHeads[section]; ok && y == 0 && x < len(head) {
		return head[x]
	}
	return float64(215 + (section*97+y*31+x*7)%1529)
}
