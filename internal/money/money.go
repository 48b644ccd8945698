package money

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Amount is a sum of money in minor units (1/100 of the major unit).
// On the wire it travels as a decimal string in major units, e.g. "50000.00".
type Amount int64

// maxWhole keeps whole*100 + 99 inside int64.
const maxWhole = (math.MaxInt64 - 99) / 100

// Parse reads a decimal string in major units with at most two fraction
// digits. Only an optional leading minus and ASCII digits are accepted.
func Parse(s string) (Amount, error) {
	raw := s
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if !digits(whole) || (hasFrac && (!digits(frac) || len(frac) > 2)) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	w, err := strconv.ParseUint(whole, 10, 64)
	if err != nil || w > maxWhole {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidAmount, raw)
	}
	var f int64
	if hasFrac {
		if len(frac) == 1 {
			frac += "0"
		}
		f = int64(frac[0]-'0')*10 + int64(frac[1]-'0')
	}
	a := Amount(int64(w)*100 + f)
	if neg {
		a = -a
	}
	return a, nil
}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

func FromMajor(units int64) Amount { return Amount(units * 100) }

func (a Amount) Minor() int64 { return int64(a) }

// Percent returns a*p/100 rounded half away from zero.
func (a Amount) Percent(p int64) Amount {
	v := int64(a) * p
	if v >= 0 {
		return Amount((v + 50) / 100)
	}
	return Amount((v - 50) / 100)
}

func (a Amount) Mul(n int64) Amount { return Amount(int64(a) * n) }

func (a Amount) String() string {
	v := int64(a)
	sign := ""
	if v < 0 {
		sign, v = "-", -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MajorString drops a zero fraction: 1500000 -> "15000", 1500050 -> "15000.50".
func (a Amount) MajorString() string {
	return strings.TrimSuffix(a.String(), ".00")
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts either a decimal string or a JSON number in major units.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	} else {
		s = string(b)
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}
