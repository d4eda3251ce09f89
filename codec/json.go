package codec

import "encoding/json"

// JSON is the standard-library JSON codec. It is the most portable option;
// output is deterministic because map keys are sorted.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec used when none is specified. Index files written by
// older versions are self-describing through the stored codec name.
var Default Codec = GoJSON{}
