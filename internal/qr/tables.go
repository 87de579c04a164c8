// Package qr holds the static ISO/IEC 18004 symbol tables and the symbol
// construction machinery shared by the encoder and the decoder: capacities,
// error-correction block layouts, alignment centres, version/format
// codewords, mask functions, the bit-plane matrix and the snake traversal.
package qr

// Mode is the payload alphabet, with the 4-bit wire codes from the standard.
type Mode uint8

const (
	Numeric      Mode = 0b0001
	AlphaNumeric Mode = 0b0010
	EightBit     Mode = 0b0100
)

func (m Mode) String() string {
	switch m {
	case Numeric:
		return "Numeric"
	case AlphaNumeric:
		return "AlphaNumeric"
	case EightBit:
		return "EightBit"
	}
	return "Unknown"
}

// ECLevel is the error correction level. The values are the 2-bit wire
// codes, which double as indices into the per-level tables below.
type ECLevel uint8

const (
	ECM ECLevel = 0 // ~15% correction capability
	ECL ECLevel = 1 // ~7%
	ECH ECLevel = 2 // ~30%
	ECQ ECLevel = 3 // ~25%
)

func (e ECLevel) String() string {
	switch e {
	case ECL:
		return "L"
	case ECM:
		return "M"
	case ECQ:
		return "Q"
	case ECH:
		return "H"
	}
	return "?"
}

const (
	VersionMin = 1
	VersionMax = 40

	// QuietZone is the light border, in modules, renderers must add.
	QuietZone = 4

	ModulesMin = 17 + 4*VersionMin
	ModulesMax = 17 + 4*VersionMax
)

// NModules returns the module count per side for a version.
func NModules(version int) int { return 17 + 4*version }

// ModulePixelBounds estimates the possible module sizes in pixels for a
// symbol within an image: at least a version 40 symbol covering half the
// image, at most a version 1 symbol covering the whole image.
func ModulePixelBounds(width, height int) (int, int) {
	minDim := min(width, height)
	maxDim := max(width, height)
	const cover = 2
	lo := max(1, maxDim/cover/ModulesMax)
	hi := max(2, minDim/ModulesMin)
	return lo, hi
}

// lengthLimits<Mode>[ec][v-1] is the data capacity of version v, used by
// VersionFromLength. Indexed by ECLevel wire code.
var lengthLimitsNumeric = [4][40]uint16{
	{
		34, 63, 101, 149, 202, 255, 293, 365, 432, 513,
		604, 691, 796, 871, 991, 1082, 1212, 1346, 1500, 1600,
		1708, 1872, 2059, 2188, 2395, 2544, 2701, 2857, 3035, 3289,
		3486, 3693, 3909, 4134, 4343, 4588, 4775, 5039, 5313, 5596,
	},
	{
		41, 77, 127, 187, 255, 322, 370, 461, 552, 652,
		772, 883, 1022, 1101, 1250, 1408, 1548, 1725, 1903, 2061,
		2232, 2409, 2620, 2812, 3057, 3283, 3517, 3669, 3909, 4158,
		4417, 4686, 4965, 5253, 5529, 5836, 6153, 6479, 6743, 7089,
	},
	{
		17, 34, 58, 82, 106, 139, 154, 202, 235, 288,
		331, 374, 427, 468, 530, 602, 674, 746, 813, 919,
		969, 1056, 1108, 1228, 1286, 1425, 1501, 1581, 1677, 1782,
		1897, 2022, 2157, 2301, 2361, 2524, 2625, 2735, 2927, 3057,
	},
	{
		27, 48, 77, 111, 144, 178, 207, 259, 312, 364,
		427, 489, 580, 621, 703, 775, 876, 948, 1063, 1159,
		1224, 1358, 1468, 1588, 1718, 1804, 1933, 2085, 2181, 2358,
		2473, 2670, 2805, 2949, 3081, 3244, 3417, 3599, 3791, 3993,
	},
}

var lengthLimitsAlphaNumeric = [4][40]uint16{
	{
		20, 38, 61, 90, 122, 154, 178, 221, 262, 311,
		366, 419, 483, 528, 600, 656, 734, 816, 909, 970,
		1035, 1134, 1248, 1326, 1451, 1542, 1637, 1732, 1839, 1994,
		2113, 2238, 2369, 2506, 2632, 2780, 2894, 3054, 3220, 3391,
	},
	{
		25, 47, 77, 114, 154, 195, 224, 279, 335, 395,
		468, 535, 619, 667, 758, 854, 938, 1046, 1153, 1249,
		1352, 1460, 1588, 1704, 1853, 1990, 2132, 2223, 2369, 2520,
		2677, 2840, 3009, 3183, 3351, 3537, 3729, 3927, 4087, 4296,
	},
	{
		10, 20, 35, 50, 64, 84, 93, 122, 143, 174,
		200, 227, 259, 283, 321, 365, 408, 452, 493, 557,
		587, 640, 672, 744, 779, 864, 910, 958, 1016, 1080,
		1150, 1226, 1307, 1394, 1431, 1530, 1591, 1658, 1774, 1852,
	},
	{
		16, 29, 47, 67, 87, 108, 125, 157, 189, 221,
		259, 296, 352, 376, 426, 470, 531, 574, 644, 702,
		742, 823, 890, 963, 1041, 1094, 1172, 1263, 1322, 1429,
		1499, 1618, 1700, 1787, 1867, 1966, 2071, 2181, 2298, 2420,
	},
}

var lengthLimitsEightBit = [4][40]uint16{
	{
		14, 26, 42, 62, 84, 106, 122, 152, 180, 213,
		251, 287, 331, 362, 412, 450, 504, 560, 624, 666,
		711, 779, 857, 911, 997, 1059, 1125, 1190, 1264, 1370,
		1452, 1538, 1628, 1722, 1809, 1911, 1989, 2099, 2213, 2331,
	},
	{
		17, 32, 53, 78, 106, 134, 154, 192, 230, 271,
		321, 367, 425, 458, 520, 586, 644, 718, 792, 858,
		929, 1003, 1091, 1171, 1273, 1367, 1465, 1528, 1628, 1732,
		1840, 1952, 2068, 2188, 2303, 2431, 2563, 2699, 2809, 2953,
	},
	{
		7, 14, 24, 34, 44, 58, 64, 84, 98, 119,
		137, 155, 177, 194, 220, 250, 280, 310, 338, 382,
		403, 439, 461, 511, 535, 593, 625, 658, 698, 742,
		790, 842, 898, 958, 983, 1051, 1093, 1139, 1219, 1273,
	},
	{
		11, 20, 32, 46, 60, 74, 86, 108, 130, 151,
		177, 203, 241, 258, 292, 322, 364, 394, 442, 482,
		509, 565, 611, 661, 715, 751, 805, 868, 908, 982,
		1030, 1112, 1168, 1228, 1283, 1351, 1423, 1499, 1579, 1663,
	},
}

// VersionFromLength returns the smallest version able to hold length
// payload units in the given mode and EC level, or false when even
// version 40 is too small.
func VersionFromLength(length int, mode Mode, ec ECLevel) (int, bool) {
	var limits *[40]uint16
	switch mode {
	case Numeric:
		limits = &lengthLimitsNumeric[ec]
	case AlphaNumeric:
		limits = &lengthLimitsAlphaNumeric[ec]
	default:
		limits = &lengthLimitsEightBit[ec]
	}
	for v := 0; v < 40; v++ {
		if int(limits[v]) >= length {
			return v + 1, true
		}
	}
	return 0, false
}

// DataCapacity returns the payload capacity (in mode units: digits,
// alphanumeric characters, or bytes) of a (version, mode, ec) symbol.
func DataCapacity(version int, mode Mode, ec ECLevel) int {
	bytes := NCodewords(version) - NECCodewords(version, ec)
	bits := 8*bytes - 4 - NCountBits(version, mode)
	switch mode {
	case EightBit:
		return bits / 8
	case AlphaNumeric:
		cap := (bits / 11) * 2
		if bits >= (cap/2)*11+6 {
			return cap + 1
		}
		return cap
	default: // Numeric
		cap := (bits / 10) * 3
		if bits >= (cap/3)*10+7 {
			return cap + 2
		}
		if bits >= (cap/3)*10+4 {
			return cap + 1
		}
		return cap
	}
}

// NCountBits returns the width of the character count field.
func NCountBits(version int, mode Mode) int {
	switch {
	case mode == EightBit && version < 10:
		return 8
	case mode == EightBit:
		return 16
	case mode == AlphaNumeric && version < 10:
		return 9
	case mode == AlphaNumeric && version < 27:
		return 11
	case mode == AlphaNumeric:
		return 13
	case version < 10:
		return 10
	case version < 27:
		return 12
	default:
		return 14
	}
}

// Mask reports whether mask m inverts the module at column j, row i.
func Mask(m, j, i int) bool {
	switch m {
	case 0:
		return (i+j)%2 == 0
	case 1:
		return i%2 == 0
	case 2:
		return j%3 == 0
	case 3:
		return (i+j)%3 == 0
	case 4:
		return (i/2+j/3)%2 == 0
	case 5:
		return (i*j)%2+(i*j)%3 == 0
	case 6:
		return ((i*j)%2+(i*j)%3)%2 == 0
	case 7:
		return ((i+j)%2+(i*j)%3)%2 == 0
	}
	return false
}

var codewordCounts = [40]int{
	26, 44, 70, 100, 134, 172, 196, 242, 292, 346,
	404, 466, 532, 581, 655, 733, 815, 901, 991, 1085,
	1156, 1258, 1364, 1474, 1588, 1706, 1828, 1921, 2051, 2185,
	2323, 2465, 2611, 2761, 2876, 3034, 3196, 3362, 3532, 3706,
}

// NCodewords returns the total codeword count of a version.
func NCodewords(version int) int { return codewordCounts[version-1] }

var remainderBits = [40]int{
	0, 7, 7, 7, 7, 7, 0, 0, 0, 0, 0, 0, 0, 3, 3, 3, 3, 3, 3, 3, 4, 4, 4, 4, 4, 4, 4, 3, 3, 3, 3, 3, 3, 3, 0, 0, 0, 0, 0, 0,
}

// NRemainderBits returns the number of filler bits after the last codeword.
func NRemainderBits(version int) int { return remainderBits[version-1] }

var ecCodewordCounts = [40][4]int{
	{10, 7, 17, 13},
	{16, 10, 28, 22},
	{26, 15, 44, 36},
	{36, 20, 64, 52},
	{48, 26, 88, 72},
	{64, 36, 112, 96},
	{72, 40, 130, 108},
	{88, 48, 156, 132},
	{110, 60, 192, 160},
	{130, 72, 224, 192},
	{150, 80, 264, 224},
	{176, 96, 308, 260},
	{198, 104, 352, 288},
	{216, 120, 384, 320},
	{240, 132, 432, 360},
	{280, 144, 480, 408},
	{308, 168, 532, 448},
	{338, 180, 588, 504},
	{364, 196, 650, 546},
	{416, 224, 700, 600},
	{442, 224, 750, 644},
	{476, 252, 816, 690},
	{504, 270, 900, 750},
	{560, 300, 960, 810},
	{588, 312, 1050, 870},
	{644, 336, 1110, 952},
	{700, 360, 1200, 1020},
	{728, 390, 1260, 1050},
	{784, 420, 1350, 1140},
	{812, 450, 1440, 1200},
	{868, 480, 1530, 1290},
	{924, 510, 1620, 1350},
	{980, 540, 1710, 1440},
	{1036, 570, 1800, 1530},
	{1064, 570, 1890, 1590},
	{1120, 600, 1980, 1680},
	{1204, 630, 2100, 1770},
	{1260, 660, 2220, 1860},
	{1316, 720, 2310, 1950},
	{1372, 750, 2430, 2040},
}

// NECCodewords returns the number of error correction codewords.
func NECCodewords(version int, ec ECLevel) int { return ecCodewordCounts[version-1][ec] }

// versionInfos[v-7] is the 18-bit BCH codeword carrying version v.
var versionInfos = [34]uint32{
	0x7c94, 0x85bc, 0x9a99, 0xa4d3, 0xbbf6, 0xc762, 0xd847,
	0xe60d, 0xf928, 0x10b78, 0x1145d, 0x12a17, 0x13532, 0x149a6,
	0x15683, 0x168c9, 0x177ec, 0x18ec4, 0x191e1, 0x1afab, 0x1b08e,
	0x1cc1a, 0x1d33f, 0x1ed75, 0x1f250, 0x209d5, 0x216f0, 0x228ba,
	0x2379f, 0x24b0b, 0x2542e, 0x26a64, 0x27541, 0x28c69,
}

// VersionInfo returns the 18-bit version information codeword (version ≥ 7).
func VersionInfo(version int) uint32 { return versionInfos[version-7] }

// formatInfos[mask + 8*ec] is the masked 15-bit format codeword.
var formatInfos = [32]uint16{
	0x5412, 0x5125, 0x5e7c, 0x5b4b, 0x45f9, 0x40ce, 0x4f97, 0x4aa0,
	0x77c4, 0x72f3, 0x7daa, 0x789d, 0x662f, 0x6318, 0x6c41, 0x6976,
	0x1689, 0x13be, 0x1ce7, 0x19d0, 0x762, 0x255, 0xd0c, 0x83b,
	0x355f, 0x3068, 0x3f31, 0x3a06, 0x24b4, 0x2183, 0x2eda, 0x2bed,
}

// FormatInfo returns the 15-bit format information codeword.
func FormatInfo(mask int, ec ECLevel) uint16 { return formatInfos[mask+8*int(ec)] }

// alignmentCenters[v] lists the alignment pattern centre coordinates of
// version v along each axis (Table E.1). Version 1 has none.
var alignmentCenters = [41][]int{
	2: {6, 18},
	3: {6, 22},
	4: {6, 26},
	5: {6, 30},
	6: {6, 34},
	7: {6, 22, 38},
	8: {6, 24, 42},
	9: {6, 26, 46},
	10: {6, 28, 50},
	11: {6, 30, 54},
	12: {6, 32, 58},
	13: {6, 34, 62},
	14: {6, 26, 46, 66},
	15: {6, 26, 48, 70},
	16: {6, 26, 50, 74},
	17: {6, 30, 54, 78},
	18: {6, 30, 56, 82},
	19: {6, 30, 58, 86},
	20: {6, 34, 62, 90},
	21: {6, 28, 50, 72, 94},
	22: {6, 26, 50, 74, 98},
	23: {6, 30, 54, 78, 102},
	24: {6, 28, 54, 80, 106},
	25: {6, 32, 58, 84, 110},
	26: {6, 30, 58, 86, 114},
	27: {6, 34, 62, 90, 118},
	28: {6, 26, 50, 74, 98, 122},
	29: {6, 30, 54, 78, 102, 126},
	30: {6, 26, 52, 78, 104, 130},
	31: {6, 30, 56, 82, 108, 134},
	32: {6, 34, 60, 86, 112, 138},
	33: {6, 30, 58, 86, 114, 142},
	34: {6, 34, 62, 90, 118, 146},
	35: {6, 30, 54, 78, 102, 126, 150},
	36: {6, 24, 50, 76, 102, 128, 154},
	37: {6, 28, 54, 80, 106, 132, 158},
	38: {6, 32, 58, 84, 110, 136, 162},
	39: {6, 26, 54, 82, 110, 138, 166},
	40: {6, 30, 58, 86, 114, 142, 170},
}

// AlignmentPatterns returns the centre coordinates along one axis.
func AlignmentPatterns(version int) []int { return alignmentCenters[version] }

// AlignmentPositions returns the centre (x, y) of every alignment pattern:
// the Cartesian product of the centre coordinates minus the three corners
// occupied by finder patterns.
func AlignmentPositions(version int) [][2]int {
	pats := alignmentCenters[version]
	n := len(pats)
	var out [][2]int
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			good := true
			if i == 0 {
				good = j > 0 && j < n-1
			} else if j == 0 {
				good = i > 0 && i < n-1
			}
			if good {
				out = append(out, [2]int{pats[i], pats[j]})
			}
		}
	}
	return out
}

// NVersionBits is the size of one version information block.
const NVersionBits = 3 * 6

// VersionBitPos returns the (a, b) offset of version information bit n
// within its 3×6 block.
func VersionBitPos(n int) (int, int) {
	p := versionBitPositions[n]
	return p[0], p[1]
}

var versionBitPositions = [NVersionBits][2]int{
	{0, 0}, {1, 0}, {2, 0},
	{0, 1}, {1, 1}, {2, 1},
	{0, 2}, {1, 2}, {2, 2},
	{0, 3}, {1, 3}, {2, 3},
	{0, 4}, {1, 4}, {2, 4},
	{0, 5}, {1, 5}, {2, 5},
}

// NFormatBits is the length of the format information codeword.
const NFormatBits = 15

var formatBitPositions = [NFormatBits][2][2]int{
	{{8, 0}, {-1, 8}},
	{{8, 1}, {-2, 8}},
	{{8, 2}, {-3, 8}},
	{{8, 3}, {-4, 8}},
	{{8, 4}, {-5, 8}},
	{{8, 5}, {-6, 8}},
	{{8, 7}, {-7, 8}},
	{{8, 8}, {-8, 8}},
	{{7, 8}, {8, -7}},
	{{5, 8}, {8, -6}},
	{{4, 8}, {8, -5}},
	{{3, 8}, {8, -4}},
	{{2, 8}, {8, -3}},
	{{1, 8}, {8, -2}},
	{{0, 8}, {8, -1}},
}

// FormatBitPositions returns the two (x, y) module positions of format
// information bit n for a symbol with nModules per side.
func FormatBitPositions(n, nModules int) [2][2]int {
	p := formatBitPositions[n]
	for c := 0; c <= 1; c++ {
		for a := 0; a <= 1; a++ {
			if p[c][a] < 0 {
				p[c][a] += nModules
			}
		}
	}
	return p
}

// FormatBitBlackPosition returns the always-dark module next to the SW
// finder pattern.
func FormatBitBlackPosition(nModules int) (int, int) { return 8, nModules - 8 }

// ECB describes one group of error correction blocks: N blocks of C total
// codewords carrying K data codewords each, with correction capacity R.
type ECB struct {
	N, C, K, R int
}

// ECBlocks returns the one or two block groups of a (version, ec) symbol.
// The second group has N == 0 when absent.
func ECBlocks(version int, ec ECLevel) [2]ECB {
	e := ecBlockTable[version-1][ec]
	return [2]ECB{
		{N: e[0][0], C: e[0][1], K: e[0][2], R: e[0][3]},
		{N: e[1][0], C: e[1][1], K: e[1][2], R: e[1][3]},
	}
}

// ecBlockTable[v-1][ec] holds {n, c, k, r} for each of the two groups,
// indexed by ECLevel wire code (M, L, H, Q).
var ecBlockTable = [40][4][2][4]int{
	{ // version 1
		{{1, 26, 16, 4}, {0, 0, 0, 0}},
		{{1, 26, 19, 2}, {0, 0, 0, 0}},
		{{1, 26, 9, 8}, {0, 0, 0, 0}},
		{{1, 26, 13, 6}, {0, 0, 0, 0}},
	},
	{ // version 2
		{{1, 44, 28, 8}, {0, 0, 0, 0}},
		{{1, 44, 34, 4}, {0, 0, 0, 0}},
		{{1, 44, 16, 14}, {0, 0, 0, 0}},
		{{1, 44, 22, 11}, {0, 0, 0, 0}},
	},
	{ // version 3
		{{1, 70, 44, 13}, {0, 0, 0, 0}},
		{{1, 70, 55, 7}, {0, 0, 0, 0}},
		{{2, 35, 13, 11}, {0, 0, 0, 0}},
		{{2, 35, 17, 9}, {0, 0, 0, 0}},
	},
	{ // version 4
		{{2, 50, 32, 9}, {0, 0, 0, 0}},
		{{1, 100, 80, 10}, {0, 0, 0, 0}},
		{{4, 25, 9, 8}, {0, 0, 0, 0}},
		{{2, 50, 24, 13}, {0, 0, 0, 0}},
	},
	{ // version 5
		{{2, 67, 43, 12}, {0, 0, 0, 0}},
		{{1, 134, 108, 13}, {0, 0, 0, 0}},
		{{2, 33, 11, 11}, {2, 34, 12, 11}},
		{{2, 33, 15, 9}, {2, 34, 16, 9}},
	},
	{ // version 6
		{{4, 43, 27, 8}, {0, 0, 0, 0}},
		{{2, 86, 68, 9}, {0, 0, 0, 0}},
		{{4, 43, 15, 14}, {0, 0, 0, 0}},
		{{4, 43, 19, 12}, {0, 0, 0, 0}},
	},
	{ // version 7
		{{4, 49, 31, 9}, {0, 0, 0, 0}},
		{{2, 98, 78, 10}, {0, 0, 0, 0}},
		{{4, 39, 13, 13}, {1, 40, 14, 13}},
		{{2, 32, 14, 9}, {4, 33, 15, 9}},
	},
	{ // version 8
		{{2, 60, 38, 11}, {2, 61, 39, 11}},
		{{2, 121, 97, 12}, {0, 0, 0, 0}},
		{{4, 40, 14, 13}, {2, 41, 15, 13}},
		{{4, 40, 18, 11}, {2, 41, 19, 11}},
	},
	{ // version 9
		{{3, 58, 36, 11}, {2, 59, 37, 11}},
		{{2, 146, 116, 15}, {0, 0, 0, 0}},
		{{4, 36, 12, 12}, {4, 37, 13, 12}},
		{{4, 36, 16, 10}, {4, 37, 17, 10}},
	},
	{ // version 10
		{{4, 69, 43, 13}, {1, 70, 44, 13}},
		{{2, 86, 68, 9}, {2, 87, 69, 9}},
		{{6, 43, 15, 14}, {2, 44, 16, 14}},
		{{6, 43, 19, 12}, {2, 44, 20, 12}},
	},
	{ // version 11
		{{1, 80, 50, 15}, {4, 81, 51, 15}},
		{{4, 101, 81, 10}, {0, 0, 0, 0}},
		{{3, 36, 12, 12}, {8, 37, 13, 12}},
		{{4, 50, 22, 14}, {4, 51, 23, 14}},
	},
	{ // version 12
		{{6, 58, 36, 11}, {2, 59, 37, 11}},
		{{2, 116, 92, 12}, {2, 117, 93, 12}},
		{{7, 42, 14, 14}, {4, 43, 15, 14}},
		{{4, 46, 20, 13}, {6, 47, 21, 13}},
	},
	{ // version 13
		{{8, 59, 37, 11}, {1, 60, 38, 11}},
		{{4, 133, 107, 13}, {0, 0, 0, 0}},
		{{12, 33, 11, 11}, {4, 34, 12, 11}},
		{{8, 44, 20, 12}, {4, 45, 21, 12}},
	},
	{ // version 14
		{{4, 64, 40, 12}, {5, 65, 41, 12}},
		{{3, 145, 115, 15}, {1, 146, 116, 15}},
		{{11, 36, 12, 12}, {5, 37, 13, 12}},
		{{11, 36, 16, 10}, {5, 37, 17, 10}},
	},
	{ // version 15
		{{5, 65, 41, 12}, {5, 66, 42, 12}},
		{{5, 109, 87, 11}, {1, 110, 88, 11}},
		{{11, 36, 12, 12}, {7, 37, 13, 12}},
		{{5, 54, 24, 15}, {7, 55, 25, 15}},
	},
	{ // version 16
		{{7, 73, 45, 14}, {3, 74, 46, 14}},
		{{5, 122, 98, 12}, {1, 123, 99, 12}},
		{{3, 45, 15, 15}, {13, 46, 16, 15}},
		{{15, 43, 19, 12}, {2, 44, 20, 12}},
	},
	{ // version 17
		{{10, 74, 46, 14}, {1, 75, 47, 14}},
		{{1, 135, 107, 14}, {5, 136, 108, 14}},
		{{2, 42, 14, 14}, {17, 43, 15, 14}},
		{{1, 50, 22, 14}, {15, 51, 23, 14}},
	},
	{ // version 18
		{{9, 69, 43, 13}, {4, 70, 44, 13}},
		{{5, 150, 120, 15}, {1, 151, 121, 15}},
		{{2, 42, 14, 14}, {19, 43, 15, 14}},
		{{17, 50, 22, 14}, {1, 51, 23, 14}},
	},
	{ // version 19
		{{3, 70, 44, 13}, {11, 71, 45, 13}},
		{{3, 141, 113, 14}, {4, 142, 114, 14}},
		{{9, 39, 13, 13}, {16, 40, 14, 13}},
		{{17, 47, 21, 13}, {4, 48, 22, 13}},
	},
	{ // version 20
		{{3, 67, 41, 13}, {13, 68, 42, 13}},
		{{3, 135, 107, 14}, {5, 136, 108, 14}},
		{{15, 43, 15, 14}, {10, 44, 16, 14}},
		{{15, 54, 24, 15}, {5, 55, 25, 15}},
	},
	{ // version 21
		{{17, 68, 42, 13}, {0, 0, 0, 0}},
		{{4, 144, 116, 14}, {4, 145, 117, 14}},
		{{19, 46, 16, 15}, {6, 47, 17, 15}},
		{{17, 50, 22, 14}, {6, 51, 23, 14}},
	},
	{ // version 22
		{{17, 74, 46, 14}, {0, 0, 0, 0}},
		{{2, 139, 111, 14}, {7, 140, 112, 14}},
		{{34, 37, 13, 12}, {0, 0, 0, 0}},
		{{7, 54, 24, 15}, {16, 55, 25, 15}},
	},
	{ // version 23
		{{4, 75, 47, 14}, {14, 76, 48, 14}},
		{{4, 151, 121, 15}, {5, 152, 122, 15}},
		{{16, 45, 15, 15}, {14, 46, 16, 15}},
		{{11, 54, 24, 15}, {14, 55, 25, 15}},
	},
	{ // version 24
		{{6, 73, 45, 14}, {14, 74, 46, 14}},
		{{6, 147, 117, 15}, {4, 148, 118, 15}},
		{{30, 46, 16, 15}, {2, 47, 17, 15}},
		{{11, 54, 24, 15}, {16, 55, 25, 15}},
	},
	{ // version 25
		{{8, 75, 47, 14}, {13, 76, 48, 14}},
		{{8, 132, 106, 13}, {4, 133, 107, 13}},
		{{22, 45, 15, 15}, {13, 46, 16, 15}},
		{{7, 54, 24, 15}, {22, 55, 25, 15}},
	},
	{ // version 26
		{{19, 74, 46, 14}, {4, 75, 47, 14}},
		{{10, 142, 114, 14}, {2, 143, 115, 14}},
		{{33, 46, 16, 15}, {4, 47, 17, 15}},
		{{28, 50, 22, 14}, {6, 51, 23, 14}},
	},
	{ // version 27
		{{22, 73, 45, 14}, {3, 74, 46, 14}},
		{{8, 152, 122, 15}, {4, 153, 123, 15}},
		{{12, 45, 15, 15}, {28, 46, 16, 15}},
		{{8, 53, 23, 15}, {26, 54, 24, 15}},
	},
	{ // version 28
		{{3, 73, 45, 14}, {23, 74, 46, 14}},
		{{3, 147, 117, 15}, {10, 148, 118, 15}},
		{{11, 45, 15, 15}, {31, 46, 16, 15}},
		{{4, 54, 24, 15}, {31, 55, 25, 15}},
	},
	{ // version 29
		{{21, 73, 45, 14}, {7, 74, 46, 14}},
		{{7, 146, 116, 15}, {7, 147, 117, 15}},
		{{19, 45, 15, 15}, {26, 46, 16, 15}},
		{{1, 53, 23, 15}, {37, 54, 24, 15}},
	},
	{ // version 30
		{{19, 75, 47, 14}, {10, 76, 48, 14}},
		{{5, 145, 115, 15}, {10, 146, 116, 15}},
		{{23, 45, 15, 15}, {25, 46, 16, 15}},
		{{15, 54, 24, 15}, {25, 55, 25, 15}},
	},
	{ // version 31
		{{2, 74, 46, 14}, {29, 75, 47, 14}},
		{{13, 145, 115, 15}, {3, 146, 116, 15}},
		{{23, 45, 15, 15}, {28, 46, 16, 15}},
		{{42, 54, 24, 15}, {1, 55, 25, 15}},
	},
	{ // version 32
		{{10, 74, 46, 14}, {23, 75, 47, 14}},
		{{17, 145, 115, 15}, {0, 0, 0, 0}},
		{{19, 45, 15, 15}, {35, 46, 16, 15}},
		{{10, 54, 24, 15}, {35, 55, 25, 15}},
	},
	{ // version 33
		{{14, 74, 46, 14}, {21, 75, 47, 14}},
		{{17, 145, 115, 15}, {1, 146, 116, 15}},
		{{11, 45, 15, 15}, {46, 46, 16, 15}},
		{{29, 54, 24, 15}, {19, 55, 25, 15}},
	},
	{ // version 34
		{{14, 74, 46, 14}, {23, 75, 47, 14}},
		{{13, 145, 115, 15}, {6, 146, 116, 15}},
		{{59, 46, 16, 15}, {1, 47, 17, 15}},
		{{44, 54, 24, 15}, {7, 55, 25, 15}},
	},
	{ // version 35
		{{12, 75, 47, 14}, {26, 76, 48, 14}},
		{{12, 151, 121, 15}, {7, 152, 122, 15}},
		{{22, 45, 15, 15}, {41, 46, 16, 15}},
		{{39, 54, 24, 15}, {14, 55, 25, 15}},
	},
	{ // version 36
		{{6, 75, 47, 14}, {34, 76, 48, 14}},
		{{6, 151, 121, 15}, {14, 152, 122, 15}},
		{{2, 45, 15, 15}, {64, 46, 16, 15}},
		{{46, 54, 24, 15}, {10, 55, 25, 15}},
	},
	{ // version 37
		{{29, 74, 46, 14}, {14, 75, 47, 14}},
		{{17, 152, 122, 15}, {4, 153, 123, 15}},
		{{24, 45, 15, 15}, {46, 46, 16, 15}},
		{{49, 54, 24, 15}, {10, 55, 25, 15}},
	},
	{ // version 38
		{{13, 74, 46, 14}, {32, 75, 47, 14}},
		{{4, 152, 122, 15}, {18, 153, 123, 15}},
		{{42, 45, 15, 15}, {32, 46, 16, 15}},
		{{48, 54, 24, 15}, {14, 55, 25, 15}},
	},
	{ // version 39
		{{40, 75, 47, 14}, {7, 76, 48, 14}},
		{{20, 147, 117, 15}, {4, 148, 118, 15}},
		{{10, 45, 15, 15}, {67, 46, 16, 15}},
		{{43, 54, 24, 15}, {22, 55, 25, 15}},
	},
	{ // version 40
		{{18, 75, 47, 14}, {31, 76, 48, 14}},
		{{19, 148, 118, 15}, {6, 149, 119, 15}},
		{{20, 45, 15, 15}, {61, 46, 16, 15}},
		{{34, 54, 24, 15}, {34, 55, 25, 15}},
	},
}

// alnumToASCIITable maps alphanumeric values 0..44 to ASCII. Index 44 is
// the ':' slot but deliberately reads back as '0', matching the reverse
// table's ':' → 44 mapping on the decode side.
var alnumToASCIITable = [45]byte{
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9',
	'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J',
	'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R', 'S', 'T',
	'U', 'V', 'W', 'X', 'Y', 'Z',
	' ', '$', '%', '*', '+', '-', '.', '/', 0x30,
}

// AlnumToASCII maps an alphanumeric value (0..44) to its ASCII character.
func AlnumToASCII(v byte) byte {
	if v > 44 {
		panic("qr: invalid alphanumeric value")
	}
	return alnumToASCIITable[v]
}

// ASCIIToAlnum maps an ASCII byte to its alphanumeric value. The second
// return is false for bytes outside the alphanumeric alphabet.
func ASCIIToAlnum(c byte) (byte, bool) {
	v := asciiToAlnumTable[c]
	return v, v <= 44
}

var asciiToAlnumTable = func() (t [256]byte) {
	for i := range t {
		t[i] = 255
	}
	for v := byte(0); v < 44; v++ {
		t[alnumToASCIITable[v]] = v
	}
	t[':'] = 44
	return
}()
