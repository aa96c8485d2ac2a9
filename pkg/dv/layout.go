package dv

// Field offsets inside the 1024 byte header.
//
//	Offset  Size  Field
//	------  ----  -------------------------------------------------------
//	   0    3×4   nx, ny, nz (nz = planes × waves × times)
//	  12     4    mode (PixelType)
//	  16    3×4   nxst, nyst, nzst   first col/row/section index
//	  28    3×4   mx, my, mz         sampling intervals
//	  40    3×4   xlen, ylen, zlen   pixel spacing (f32)
//	  52    3×4   alpha, beta, gamma cell angles (f32)
//	  64    3×4   mapc, mapr, maps   axis mapping
//	  76    3×4   amin, amax, amean  wave 1 statistics (f32)
//	  88     4    ispg               space group
//	  92     4    inbsym             extended header bytes
//	  96     2    nDVID              byte order marker
//	  98     2    nblank
//	 100     4    ntst               starting time index
//	 104    24    ibyte              unused
//	 128    4×2   nint, nreal, nres, nzfact
//	 136    6×4   min2, max2, min3, max3, min4, max4 (f32)
//	 160    6×2   file_type, lens, n1, n2, v1, v2
//	 172    2×4   min5, max5 (f32)
//	 180     2    num_times
//	 182     2    interleaved
//	 184    3×4   tilt_x, tilt_y, tilt_z (f32)
//	 196    6×2   num_waves, iwav1..iwav5
//	 208    3×4   zorig, xorig, yorig (f32)
//	 220     4    nlab
//	 224   800    10 × 80 byte titles
const (
	OffNX          = 0
	OffNY          = 4
	OffNZ          = 8
	OffMode        = 12
	OffNXStart     = 16
	OffNYStart     = 20
	OffNZStart     = 24
	OffMX          = 28
	OffMY          = 32
	OffMZ          = 36
	OffXLen        = 40
	OffYLen        = 44
	OffZLen        = 48
	OffAlpha       = 52
	OffBeta        = 56
	OffGamma       = 60
	OffMapC        = 64
	OffMapR        = 68
	OffMapS        = 72
	OffMin         = 76
	OffMax         = 80
	OffMean        = 84
	OffSpaceGroup  = 88
	OffExtHeader   = 92
	OffDVID        = MarkerOffset
	OffBlank       = 98
	OffTimeStart   = 100
	OffIBytes      = 104
	OffNInt        = 128
	OffNReal       = 130
	OffNRes        = 132
	OffZFactor     = 134
	OffMin2        = 136
	OffFileType    = 160
	OffLens        = 162
	OffN1          = 164
	OffN2          = 166
	OffV1          = 168
	OffV2          = 170
	OffMin5        = 172
	OffMax5        = 176
	OffNumTimes    = 180
	OffInterleaved = 182
	OffTiltX       = 184
	OffTiltY       = 188
	OffTiltZ       = 192
	OffNumWaves    = 196
	OffWave1       = 198
	OffZOrigin     = 208
	OffXOrigin     = 212
	OffYOrigin     = 216
	OffNLabels     = 220
	OffLabels      = 224

	ibyteSize = 24
)
