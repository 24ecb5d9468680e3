package core

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// FlexString is an identifier that decodes from either a JSON string or a JSON number
// and always encodes as a JSON string.
// Hand-edited data files and older front ends send school ids, grades and class numbers both ways.
type FlexString string

func (fs *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*fs = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*fs = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Errorf("cannot use %s as an identifier", data)
	}
	*fs = FlexString(n.String())
	return nil
}

func (fs FlexString) String() string { return string(fs) }

// Clean returns fs trimmed of leading and trailing whitespace.
func (fs FlexString) Clean() FlexString {
	return FlexString(CleanString(string(fs)))
}
