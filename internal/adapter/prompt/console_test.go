package prompt

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsole_Confirm(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    bool
		retries int
	}{
		{name: "yes", input: "yes\n", want: true},
		{name: "short no", input: "n\n", want: false},
		{name: "retry until valid", input: "maybe\n\nYES\n", want: true, retries: 2},
		{name: "eof declines", input: "what", want: false, retries: 0},
		{name: "answer without newline", input: "no", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := NewConsole(strings.NewReader(tt.input), &out)

			got, err := c.Confirm(context.Background(), "Proceed?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, strings.HasPrefix(out.String(), "Proceed? [yes/no]\n--> "))
			assert.Equal(t, tt.retries, strings.Count(out.String(), "Please enter yes or no."))
		})
	}
}

func TestConsole_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewConsole(strings.NewReader("yes\n"), &bytes.Buffer{})
	_, err := c.Confirm(ctx, "Proceed?")
	assert.ErrorIs(t, err, context.Canceled)
}
