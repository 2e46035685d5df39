package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// MaxRepsPlaceholderValue replaces the "Máximo" placeholder the model sometimes emits
// instead of a number.
const MaxRepsPlaceholderValue = 15

var repRangePattern = regexp.MustCompile(`^(\d+)\s*-\s*(\d+)$`)

// Reps is a repetitions value: either a plain count or a range such as "8-12".
// Anything else the model produced is kept verbatim in Text until normalization
// rejects or repairs it.
type Reps struct {
	Count int
	Text  string
	Null  bool
}

// RepCount builds a plain-count value.
func RepCount(n int) Reps {
	return Reps{Count: n}
}

// RepRange builds a "lo-hi" range value.
func RepRange(lo, hi int) Reps {
	return Reps{Text: fmt.Sprintf("%d-%d", lo, hi)}
}

// IsPlaceholder reports whether the value is the "maximum" word.
func (r Reps) IsPlaceholder() bool {
	t := strings.TrimSpace(r.Text)
	return strings.EqualFold(t, "máximo") || strings.EqualFold(t, "maximo")
}

// IsCount reports whether the value is a plain integer.
func (r Reps) IsCount() bool {
	return !r.Null && r.Text == ""
}

// IsRange reports whether the value is a well-formed "lo-hi" string.
func (r Reps) IsRange() bool {
	return !r.Null && repRangePattern.MatchString(strings.TrimSpace(r.Text))
}

// Canonical folds the placeholder to MaxRepsPlaceholderValue, digit-only strings to
// counts and tidies ranges. ok is false when the value is still not numeric, is
// negative or beyond int32, or is a range whose low bound exceeds the high one.
func (r Reps) Canonical() (out Reps, ok bool) {
	if r.Null {
		return r, false
	}
	if r.Text == "" {
		return r, validCount(r.Count)
	}
	if r.IsPlaceholder() {
		return RepCount(MaxRepsPlaceholderValue), true
	}
	t := strings.TrimSpace(r.Text)
	if n, err := strconv.Atoi(t); err == nil {
		return RepCount(n), validCount(n)
	}
	if m := repRangePattern.FindStringSubmatch(t); m != nil {
		lo, errLo := strconv.Atoi(m[1])
		hi, errHi := strconv.Atoi(m[2])
		if errLo != nil || errHi != nil || !validCount(lo) || !validCount(hi) || lo > hi {
			return r, false
		}
		return RepRange(lo, hi), true
	}
	return r, false
}

func validCount(n int) bool {
	return n >= 0 && n <= math.MaxInt32
}

func (r Reps) String() string {
	switch {
	case r.Null:
		return "null"
	case r.Text != "":
		return r.Text
	default:
		return strconv.Itoa(r.Count)
	}
}

func (r Reps) MarshalJSON() ([]byte, error) {
	switch {
	case r.Null:
		return []byte("null"), nil
	case r.Text != "":
		return json.Marshal(r.Text)
	default:
		return []byte(strconv.Itoa(r.Count)), nil
	}
}

func (r *Reps) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*r = Reps{}
	if bytes.Equal(data, []byte("null")) {
		r.Null = true
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.Text)
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("repeticiones: %w", err)
	}
	// Fractions and values outside the stored int32 range are kept as text so that
	// Canonical rejects them instead of the conversion wrapping around.
	if f != math.Trunc(f) || f < 0 || f > math.MaxInt32 {
		r.Text = strconv.FormatFloat(f, 'f', -1, 64)
		return nil
	}
	r.Count = int(f)
	return nil
}

func (r Reps) MarshalBSONValue() (bsontype.Type, []byte, error) {
	switch {
	case r.Null:
		return bson.TypeNull, nil, nil
	case r.Text != "":
		return bson.MarshalValue(r.Text)
	default:
		return bson.MarshalValue(int32(r.Count))
	}
}

func (r *Reps) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*r = Reps{}
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeNull, bson.TypeUndefined:
		r.Null = true
	case bson.TypeInt32:
		r.Count = int(rv.Int32())
	case bson.TypeInt64:
		r.Count = int(rv.Int64())
	case bson.TypeDouble:
		r.Count = int(rv.Double())
	case bson.TypeString:
		r.Text = rv.StringValue()
	default:
		return fmt.Errorf("repeticiones: unsupported BSON type %s", t)
	}
	return nil
}
