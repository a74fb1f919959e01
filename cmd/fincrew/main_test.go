package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestFailureError(t *testing.T) {
	err := &RequestFailureError{Message: "crew: task extract_data: provider down"}
	assert.Equal(t, "crew: task extract_data: provider down", err.Error())
}

func TestErrorTypeDetection(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantRequestFn bool
	}{
		{
			name:          "RequestFailureError",
			err:           &RequestFailureError{Message: "pipeline failed"},
			wantRequestFn: true,
		},
		{
			name:          "regular error",
			err:           errors.New("config error"),
			wantRequestFn: false,
		},
		{
			name:          "wrapped RequestFailureError",
			err:           errors.Join(&RequestFailureError{Message: "pipeline failed"}, errors.New("context")),
			wantRequestFn: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reqErr *RequestFailureError
			assert.Equal(t, tt.wantRequestFn, errors.As(tt.err, &reqErr))
		})
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	root := newRootCommand()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "ask")
	assert.Contains(t, names, "load")
	assert.Contains(t, names, "check")
	assert.Contains(t, names, "init")
}
