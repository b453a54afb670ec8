package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		expectedCode int
		expectedOut  string
	}{
		{name: "version", args: []string{"version"}, expectedCode: 0, expectedOut: "blog version 1.0.0"},
		{name: "version flag", args: []string{"--version"}, expectedCode: 0, expectedOut: "blog version"},
		{name: "help", args: []string{"help"}, expectedCode: 0},
		{name: "unknown", args: []string{"bogus"}, expectedCode: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			code := run(tt.args, &out)
			assert.Equal(t, tt.expectedCode, code)
			if tt.expectedOut != "" {
				assert.Contains(t, out.String(), tt.expectedOut)
			}
		})
	}
}
