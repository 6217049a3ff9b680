package ledger

import (
	"bytes"
	"encoding/json"
)

// Canonicalize re-encodes a JSON document with sorted object keys and no
// insignificant whitespace, which is how encoding/json writes maps. Numbers
// keep their literal text.
func Canonicalize(raw []byte) ([]byte, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var v interface{}
	if err := decoder.Decode(&v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}
