package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPasswordStdin_Pipe(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "newline", in: "hunter2\n", want: "hunter2"},
		{name: "crlf", in: "hunter2\r\n", want: "hunter2"},
		{name: "no newline", in: "hunter2", want: "hunter2"},
		{name: "first line only", in: "hunter2\nextra\n", want: "hunter2"},
		{name: "inner spaces kept", in: "  two words \n", want: "  two words "},
		{name: "empty", in: "", wantErr: true},
		{name: "blank line", in: "\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var prompt bytes.Buffer
			got, err := ReadPasswordStdin(strings.NewReader(tt.in), &prompt)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
			assert.Empty(t, prompt.String(), "piped input must not prompt")
		})
	}
}
