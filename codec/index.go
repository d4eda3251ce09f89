package codec

import (
	"bytes"

	"github.com/fwojciec/docdex"
)

// The whole index payload is one serialized call to the search widget's
// global constructor with a single object literal argument. There is no
// streaming, chunking, or incremental update format.
var (
	envelopePrefix = []byte("Search.setIndex(")
	envelopeSuffix = []byte(")")
)

// EncodeIndex serializes the index and wraps it in the Search.setIndex
// envelope.
func EncodeIndex(c Codec, idx *docdex.Index) ([]byte, error) {
	if c == nil {
		c = Default
	}
	payload, err := c.Marshal(idx)
	if err != nil {
		return nil, docdex.Errorf(docdex.EINTERNAL, "encode index: %v", err)
	}
	out := make([]byte, 0, len(envelopePrefix)+len(payload)+len(envelopeSuffix))
	out = append(out, envelopePrefix...)
	out = append(out, payload...)
	out = append(out, envelopeSuffix...)
	return out, nil
}

// DecodeIndex unwraps the Search.setIndex envelope and deserializes the
// index. Surrounding whitespace and a trailing semicolon are tolerated.
func DecodeIndex(c Codec, data []byte) (*docdex.Index, error) {
	if c == nil {
		c = Default
	}

	payload := bytes.TrimSpace(data)
	payload = bytes.TrimSuffix(payload, []byte(";"))
	if !bytes.HasPrefix(payload, envelopePrefix) || !bytes.HasSuffix(payload, envelopeSuffix) {
		return nil, docdex.Errorf(docdex.EINVALID, "index payload is not a Search.setIndex(...) call")
	}
	payload = payload[len(envelopePrefix) : len(payload)-len(envelopeSuffix)]

	var idx docdex.Index
	if err := c.Unmarshal(payload, &idx); err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "decode index: %v", err)
	}
	return &idx, nil
}
