package note

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jsphweid/abcdex/util"
)

// Duration is a reduced, positive fraction of a whole note. The zero value
// is not a valid duration.
type Duration struct {
	num, den int
}

// NewDuration reduces num/den. The denominator can't be zero.
func NewDuration(num, den int) (Duration, error) {
	if den == 0 {
		return Duration{}, fmt.Errorf("%w: zero denominator in %d/%d", ErrInvalidDuration, num, den)
	}
	if den < 0 {
		num, den = -num, -den
	}
	g := util.GCD(num, den)
	if g == 0 {
		g = 1
	}
	return Duration{num: num / g, den: den / g}, nil
}

func MustDuration(num, den int) Duration {
	d, err := NewDuration(num, den)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseDuration reads "3/16", "1/8" or a whole number like "2".
func ParseDuration(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	numText, denText, found := strings.Cut(s, "/")
	num, err := strconv.Atoi(numText)
	if err != nil {
		return Duration{}, fmt.Errorf("%w %q", ErrInvalidDuration, s)
	}
	den := 1
	if found {
		if den, err = strconv.Atoi(denText); err != nil {
			return Duration{}, fmt.Errorf("%w %q", ErrInvalidDuration, s)
		}
	}
	d, err := NewDuration(num, den)
	if err != nil {
		return Duration{}, fmt.Errorf("%w %q", ErrInvalidDuration, s)
	}
	return d, nil
}

func (d Duration) Num() int {
	return d.num
}

func (d Duration) Den() int {
	return d.den
}

func (d Duration) IsZero() bool {
	return d.num == 0
}

func (d Duration) Mul(o Duration) Duration {
	return MustDuration(d.num*o.num, d.den*o.den)
}

// CheckedMul is Mul for untrusted lengths: it fails instead of
// overflowing or dividing by zero.
func (d Duration) CheckedMul(o Duration) (Duration, error) {
	num, ok1 := mulInt(d.num, o.num)
	den, ok2 := mulInt(d.den, o.den)
	if !ok1 || !ok2 {
		return Duration{}, fmt.Errorf("%w: %s times %s overflows", ErrInvalidDuration, d, o)
	}
	return NewDuration(num, den)
}

func mulInt(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	return c, c/b == a && !(a == -1 && b == math.MinInt) && !(b == -1 && a == math.MinInt)
}

// Div panics on a zero divisor, like integer division.
func (d Duration) Div(o Duration) Duration {
	return MustDuration(d.num*o.den, d.den*o.num)
}

func (d Duration) Add(o Duration) Duration {
	return MustDuration(d.num*o.den+o.num*d.den, d.den*o.den)
}

func (d Duration) Cmp(o Duration) int {
	l, r := d.num*o.den, o.num*d.den
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}
	return 0
}

func (d Duration) Float() float64 {
	if d.den == 0 {
		return 0
	}
	return float64(d.num) / float64(d.den)
}

// String is "n/d", or just "n" for whole numbers.
func (d Duration) String() string {
	if d.den == 1 {
		return strconv.Itoa(d.num)
	}
	return fmt.Sprintf("%d/%d", d.num, d.den)
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	parsed, err := ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
