package deal

import (
	"strconv"
	"strings"
)

type Discount struct {
	kind    DiscountType
	display string
}

func NewDiscount(kind DiscountType, display string) (Discount, error) {
	display = strings.TrimSpace(display)
	if display == "" {
		return Discount{}, ErrEmptyDiscountValue
	}
	return Discount{kind: kind, display: display}, nil
}

func (d Discount) Kind() DiscountType { return d.kind }
func (d Discount) Display() string    { return d.display }

func (d Discount) NumericValue() float64 {
	return ParseDiscountValue(d.display)
}

// ParseDiscountValue keeps only digits and dots and reads the longest leading
// number. Values without one ("BOGO", "abc") are 0.
func ParseDiscountValue(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	end := 0
	seenDot := false
	for end < len(digits) {
		if digits[end] == '.' {
			if seenDot {
				break
			}
			seenDot = true
		}
		end++
	}
	digits = strings.TrimSuffix(digits[:end], ".")
	if digits == "" {
		return 0
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0
	}
	return v
}
