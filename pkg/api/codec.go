// Package api defines the messages exchanged by the splitroom RPC services.
// Messages are plain structs encoded as JSON; amounts travel as decimal
// strings such as "12.50".
package api

import "encoding/json"

// JSONCodec is the connect codec for api messages. It is registered under
// the name "json", so clients send Content-Type application/json.
type JSONCodec struct{}

// Name implements connect.Codec.
func (JSONCodec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

// Unmarshal implements connect.Codec.
func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}
