package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectPathArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"filelib"},
			want: []string{"filelib"},
		},
		{
			name: "direct path first token",
			in:   []string{"filelib", "/docs"},
			want: []string{"filelib", "--path", "/docs"},
		},
		{
			name: "direct path after value flag",
			in:   []string{"filelib", "--library", "0b6f", "/docs"},
			want: []string{"filelib", "--library", "0b6f", "--path", "/docs"},
		},
		{
			name: "direct path after equals flag",
			in:   []string{"filelib", "--library=0b6f", "/docs"},
			want: []string{"filelib", "--library=0b6f", "--path", "/docs"},
		},
		{
			name: "direct path after bool flag",
			in:   []string{"filelib", "--pretty", "/"},
			want: []string{"filelib", "--pretty", "--path", "/"},
		},
		{
			name: "value flag that looks like a path is skipped",
			in:   []string{"filelib", "--log-file", "/tmp/filelib.log"},
			want: []string{"filelib", "--log-file", "/tmp/filelib.log"},
		},
		{
			name: "subcommand not rewritten",
			in:   []string{"filelib", "touch", "/notes.txt"},
			want: []string{"filelib", "touch", "/notes.txt"},
		},
		{
			name: "path followed by more args not rewritten",
			in:   []string{"filelib", "/docs", "ls"},
			want: []string{"filelib", "/docs", "ls"},
		},
		{
			name: "double dash left alone",
			in:   []string{"filelib", "--", "/docs"},
			want: []string{"filelib", "--", "/docs"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectPathArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectPathArgs(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
