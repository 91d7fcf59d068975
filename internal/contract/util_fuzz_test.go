package contract

import (
	"strconv"
	"strings"
	"testing"
)

// FuzzFormatThousands checks that stripping separators gives back the number.
func FuzzFormatThousands(f *testing.F) {
	for _, seed := range []int{0, 7, 1000, -1000, 123456789} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, n int) {
		if n == -n && n != 0 { // math.MinInt
			return
		}
		out := FormatThousands(n)
		back, err := strconv.Atoi(strings.ReplaceAll(out, ",", ""))
		if err != nil || back != n {
			t.Fatalf("FormatThousands(%d) = %q", n, out)
		}
	})
}
