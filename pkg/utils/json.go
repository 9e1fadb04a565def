package utils

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PrettyJSON renders in as indented JSON, or an empty string when it cannot be encoded.
func PrettyJSON(in any) string {
	out, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return ""
	}
	return string(out)
}

// CompactJSON renders in as single-line JSON, falling back to "null".
func CompactJSON(in any) string {
	out, err := json.Marshal(in)
	if err != nil {
		return "null"
	}
	return string(out)
}
