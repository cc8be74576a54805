package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// List is an ordered collection stored as a serialized JSON array in a
// single column (tags, admins, features_enabled).  Order is preserved on
// round trips; writes replace the whole value rather than merging
// element-wise.  A nil List marshals as an empty array so API responses
// never show null for collection fields.
type List []string

// Scan implements sql.Scanner.  The column holds JSON text; NULL becomes
// an empty list.
func (l *List) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = List{}
		return nil
	case []byte:
		return l.decode(v)
	case string:
		return l.decode([]byte(v))
	default:
		return fmt.Errorf("list: cannot scan %T", src)
	}
}

func (l *List) decode(b []byte) error {
	if len(b) == 0 {
		*l = List{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(b, &out); err != nil {
		return err
	}
	if out == nil {
		out = []string{}
	}
	*l = out
	return nil
}

// Value implements driver.Valuer, serializing the list to JSON text.
func (l List) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// MarshalJSON keeps nil lists rendering as [].
func (l List) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}
