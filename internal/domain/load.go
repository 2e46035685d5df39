package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Load is a suggested weight. The model is asked for a number but answers like
// "peso corporal" are kept as text rather than rejected.
type Load struct {
	Text string
}

// LoadAmount builds a numeric load.
func LoadAmount(n float64) Load {
	return Load{Text: strconv.FormatFloat(n, 'f', -1, 64)}
}

func (l Load) number() (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(l.Text), 64)
	return f, err == nil
}

func (l Load) String() string {
	return l.Text
}

func (l Load) MarshalJSON() ([]byte, error) {
	if l.Text == "" {
		return []byte("0"), nil
	}
	if f, ok := l.number(); ok {
		return json.Marshal(f)
	}
	return json.Marshal(l.Text)
}

func (l *Load) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*l = Load{}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &l.Text)
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("peso: %w", err)
	}
	l.Text = n.String()
	return nil
}

func (l Load) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if l.Text == "" {
		return bson.MarshalValue(int32(0))
	}
	if f, ok := l.number(); ok {
		if f == float64(int32(f)) {
			return bson.MarshalValue(int32(f))
		}
		return bson.MarshalValue(f)
	}
	return bson.MarshalValue(l.Text)
}

func (l *Load) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*l = Load{}
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeNull, bson.TypeUndefined:
	case bson.TypeInt32:
		l.Text = strconv.Itoa(int(rv.Int32()))
	case bson.TypeInt64:
		l.Text = strconv.FormatInt(rv.Int64(), 10)
	case bson.TypeDouble:
		l.Text = strconv.FormatFloat(rv.Double(), 'f', -1, 64)
	case bson.TypeString:
		l.Text = rv.StringValue()
	default:
		return fmt.Errorf("peso: unsupported BSON type %s", t)
	}
	return nil
}
