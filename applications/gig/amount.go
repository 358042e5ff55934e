package gig

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// Amount is a money value that tolerates being sent or stored as a string
// such as "£45.50".
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(ParseFee(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		*a = 0
		return nil
	}
	*a = Amount(ParseFee(n))
	return nil
}

// UnmarshalBSONValue accepts older documents where the fee was saved as text.
func (a *Amount) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	v := bsoncore.Value{Type: t, Data: data}
	switch t {
	case bsontype.Double:
		f, ok := v.DoubleOK()
		if !ok {
			return fmt.Errorf("malformed double amount")
		}
		*a = Amount(finite(f))
	case bsontype.Int32:
		i, ok := v.Int32OK()
		if !ok {
			return fmt.Errorf("malformed int32 amount")
		}
		*a = Amount(i)
	case bsontype.Int64:
		i, ok := v.Int64OK()
		if !ok {
			return fmt.Errorf("malformed int64 amount")
		}
		*a = Amount(i)
	case bsontype.String:
		s, ok := v.StringValueOK()
		if !ok {
			return fmt.Errorf("malformed string amount")
		}
		*a = Amount(ParseFee(s))
	case bsontype.Null, bsontype.Undefined:
		*a = 0
	default:
		return fmt.Errorf("cannot decode %s into an amount", t)
	}
	return nil
}
