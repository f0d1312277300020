package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseChannelArg(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want string
	}{
		{
			name: "Mention",
			arg:  "<#123456789>",
			want: "123456789",
		},
		{
			name: "RawID",
			arg:  "123456789",
			want: "123456789",
		},
		{
			name: "Empty",
			arg:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, parseChannelArg(tt.arg))
		})
	}
}
