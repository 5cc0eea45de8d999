package bigz

import "github.com/agbru/bigcalc/internal/bn"

// MinBase and MaxBase bound the radix accepted by the conversions.
const (
	MinBase = 2
	MaxBase = 36
)

// radix describes the largest power of a base that fits in one word,
// value == base**digits, and log2 of the base for sizing text.
type radix struct {
	digits int
	value  bn.Word
	log2   float64
}

var radixTable = [MaxBase + 1]radix{
	2:  {63, 9223372036854775808, 1.0},
	3:  {40, 12157665459056928801, 1.584962500721156},
	4:  {31, 4611686018427387904, 2.0},
	5:  {27, 7450580596923828125, 2.321928094887362},
	6:  {24, 4738381338321616896, 2.584962500721156},
	7:  {22, 3909821048582988049, 2.807354922057604},
	8:  {21, 9223372036854775808, 3.0},
	9:  {20, 12157665459056928801, 3.169925001442312},
	10: {19, 10000000000000000000, 3.321928094887362},
	11: {18, 5559917313492231481, 3.4594316186372973},
	12: {17, 2218611106740436992, 3.584962500721156},
	13: {17, 8650415919381337933, 3.700439718141092},
	14: {16, 2177953337809371136, 3.807354922057604},
	15: {16, 6568408355712890625, 3.9068905956085187},
	16: {15, 1152921504606846976, 4.0},
	17: {15, 2862423051509815793, 4.087462841250339},
	18: {15, 6746640616477458432, 4.169925001442312},
	19: {15, 15181127029874798299, 4.247927513443585},
	20: {14, 1638400000000000000, 4.321928094887363},
	21: {14, 3243919932521508681, 4.392317422778761},
	22: {14, 6221821273427820544, 4.459431618637297},
	23: {14, 11592836324538749809, 4.523561956057013},
	24: {13, 876488338465357824, 4.584962500721156},
	25: {13, 1490116119384765625, 4.643856189774724},
	26: {13, 2481152873203736576, 4.700439718141092},
	27: {13, 4052555153018976267, 4.754887502163468},
	28: {13, 6502111422497947648, 4.807354922057604},
	29: {13, 10260628712958602189, 4.857980995127572},
	30: {13, 15943230000000000000, 4.906890595608519},
	31: {12, 787662783788549761, 4.954196310386875},
	32: {12, 1152921504606846976, 5.0},
	33: {12, 1667889514952984961, 5.044394119358453},
	34: {12, 2386420683693101056, 5.087462841250339},
	35: {12, 3379220508056640625, 5.129283016944966},
	36: {12, 4738381338321616896, 5.169925001442312},
}

const digitChars = "0123456789abcdefghijklmnopqrstuvwxyz"

// digitValue maps an ASCII byte to its digit value in any base up to 36,
// or 0xff when the byte is not a digit. Letters are case-insensitive.
var digitValue = func() (t [256]byte) {
	for i := range t {
		t[i] = 0xff
	}
	for i := 0; i < len(digitChars); i++ {
		t[digitChars[i]] = byte(i)
		if c := digitChars[i]; c >= 'a' {
			t[c-'a'+'A'] = byte(i)
		}
	}
	return t
}()

func validBase(base int) bool { return base >= MinBase && base <= MaxBase }
