package telegram

import (
	"testing"
)

type testDataStruct struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

func TestMarshalData(t *testing.T) {
	data := MarshalData[testDataStruct]("test", testDataStruct{
		Number: 123,
		Text:   "456",
	})
	target := `test:[123,"456"]`
	if data != target {
		t.Errorf("Marshaled data is invalid, got: %s", data)
	}
}

func TestUnmarshalData(t *testing.T) {
	raw := `test:[123,"456"]`
	route, data, err := UnmarshalData[testDataStruct](raw)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if data == nil {
		t.Fatal("Unmarshaled data is nil")
	}
	if route != "test" {
		t.Errorf("Unmarshaled route is invalid, got: %s", route)
	}
	if data.Number != 123 || data.Text != "456" {
		t.Errorf("Unmarshaled data is invalid, got: %+v", data)
	}
}

func TestUnmarshalDataWithoutRoute(t *testing.T) {
	if _, _, err := UnmarshalData[testDataStruct]("Data=42"); err == nil {
		t.Error("expected an error for data without a route separator")
	}
}

func TestButtonRoundTrip(t *testing.T) {
	button := NewButton("2.2", "pick", testDataStruct{Number: 22})
	if len(button.CallbackData) > 64 {
		t.Errorf("callback data exceeds Telegram's limit: %d bytes", len(button.CallbackData))
	}
	route, data, err := UnmarshalData[testDataStruct](button.CallbackData)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if route != "pick" || data.Number != 22 {
		t.Errorf("got route %q data %+v", route, data)
	}
}
