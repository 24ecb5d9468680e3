package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlexString_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    FlexString
		wantErr bool
	}{
		{name: "string", data: `"12"`, want: "12"},
		{name: "integer", data: `12`, want: "12"},
		{name: "float", data: `1.5`, want: "1.5"},
		{name: "null", data: `null`, want: ""},
		{name: "spaces kept", data: `" 3 "`, want: " 3 "},
		{name: "bool", data: `true`, wantErr: true},
		{name: "object", data: `{}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got struct {
				ID FlexString `json:"id"`
			}
			err := json.Unmarshal([]byte(`{"id": `+tt.data+`}`), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got.ID != tt.want {
				t.Errorf("UnmarshalJSON() = %q, want %q", got.ID, tt.want)
			}
		})
	}

	data, err := json.Marshal(struct {
		ID FlexString `json:"id"`
	}{ID: "7"})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"id": "7"}`, string(data))
	assert.Equal(t, FlexString("7"), FlexString(" 7\t").Clean())
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Hello", CleanString("  Hello \n"))
	assert.Equal(t, "hello", CleanString("  Hello ", true))
}

func TestErrors(t *testing.T) {
	err := NewDataError(assert.AnError, "reading schools.json")
	assert.True(t, IsDataUnavailable(err))
	assert.Contains(t, err.Error(), "reading schools.json")
	assert.False(t, IsDataUnavailable(assert.AnError))

	assert.True(t, IsShutdown(NewShutdownError("integrity issue")))
	assert.False(t, IsShutdown(err))

	vErr := NewValidationError(nil, FieldError{Field: "title", Error: "this field is required"})
	assert.Equal(t, "title: this field is required", vErr.Error())
}
