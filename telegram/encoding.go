package telegram

import (
	"fmt"
	"strings"

	"github.com/go-sphere/jsoncompressor"
)

// query prefix must be unique and has suffix ":" to separate the data
// update.CallbackQuery.Data format: $route:json($data)

// UnmarshalData decodes Telegram callback query data into a route and typed data structure.
// The input data should be formatted as "route:compressed_json_data".
// Returns the route string, the unmarshaled data of type T, and any error encountered.
func UnmarshalData[T any](data string) (string, *T, error) {
	route, payload, ok := strings.Cut(data, ":")
	if !ok {
		return "", nil, fmt.Errorf("invalid callback data format")
	}
	var v T
	if err := jsoncompressor.Unmarshal([]byte(payload), &v); err != nil {
		return route, nil, err
	}
	return route, &v, nil
}

// MarshalData encodes a route and typed data into Telegram callback query format.
// Telegram limits callback data to 64 bytes, keep payloads small.
func MarshalData[T any](route string, data T) string {
	b, _ := jsoncompressor.Marshal(data)
	return route + ":" + string(b)
}
