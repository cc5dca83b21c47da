package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPassword(t *testing.T) {
	env := func(values map[string]string) func(string) string {
		return func(key string) string { return values[key] }
	}

	tests := []struct {
		name    string
		env     map[string]string
		stdin   string
		want    string
		wantErr bool
	}{
		{name: "environment wins", env: map[string]string{passwordEnv: "from-env-123"}, stdin: "from-stdin\n", want: "from-env-123"},
		{name: "first stdin line", stdin: "s3cret pass\nsecond line\n", want: "s3cret pass"},
		{name: "windows line ending", stdin: "s3cretpass\r\n", want: "s3cretpass"},
		{name: "no trailing newline", stdin: "s3cretpass", want: "s3cretpass"},
		{name: "nothing provided", stdin: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readPassword(env(tt.env), strings.NewReader(tt.stdin))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
