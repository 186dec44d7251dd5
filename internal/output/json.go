package output

import "encoding/json"

const (
	jsonIndentPrefix = ""
	jsonIndentSpacer = "  "
)

// RenderJSON marshals the digest envelope with the stable field names of the
// Node/Stats contract.
func RenderJSON(digest Digest) (string, error) {
	encoded, marshalError := json.MarshalIndent(digest, jsonIndentPrefix, jsonIndentSpacer)
	if marshalError != nil {
		return "", marshalError
	}
	return string(encoded), nil
}
