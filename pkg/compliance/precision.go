package compliance

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/svgbudget/pkg/svg"
)

var (
	pathDataRe = regexp.MustCompile(`(^|\s)d="([^"]*)"`)
	numberRe   = regexp.MustCompile(`[-+]?(?:[0-9]*\.[0-9]+|[0-9]+\.?)(?:[eE][-+]?[0-9]+)?`)
)

// ReducePrecision returns a stage that rounds every numeric literal inside
// d="..." attributes to the given number of decimal places. Command letters
// and separators are left as they are.
func ReducePrecision(decimals int) Stage {
	return TextStage(fmt.Sprintf("precision-%d", decimals), func(text string) string {
		return reducePrecision(text, decimals)
	})
}

func reducePrecision(text string, decimals int) string {
	return pathDataRe.ReplaceAllStringFunc(text, func(attr string) string {
		m := pathDataRe.FindStringSubmatch(attr)
		data := numberRe.ReplaceAllStringFunc(m[2], func(lit string) string {
			return roundLiteral(lit, decimals)
		})
		return m[1] + `d="` + data + `"`
	})
}

// roundLiteral rounds one number. Integer literals are kept verbatim so
// packed arc flags ("0110") are not reinterpreted. Above zero decimals a
// rounded form longer than the original (".5" -> "0.5") is discarded; at
// zero decimals the integer form always wins.
func roundLiteral(lit string, decimals int) string {
	if !strings.ContainsAny(lit, ".eE") {
		return lit
	}
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return lit
	}
	out := svg.Round(v, decimals)
	if decimals > 0 && len(out) > len(lit) {
		return lit
	}
	return out
}
