package jsonutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "bare object",
			input: `{"message":"ok"}`,
			want:  `{"message":"ok"}`,
		},
		{
			name:  "bare array",
			input: `[1,2,3]`,
			want:  `[1,2,3]`,
		},
		{
			name:  "object inside html error page",
			input: `<html><body>502 Bad Gateway {"error":"upstream timeout"} </body></html>`,
			want:  `{"error":"upstream timeout"}`,
		},
		{
			name:  "text banner before payload",
			input: "WARNING: proxy intercepted\n{\"code\":409}",
			want:  `{"code":409}`,
		},
		{
			name:  "nested objects matched as a whole",
			input: `noise {"outer":{"inner":[1,2]}} trailing`,
			want:  `{"outer":{"inner":[1,2]}}`,
		},
		{
			name:  "braces inside strings ignored",
			input: `{"message":"use {curly} braces"}`,
			want:  `{"message":"use {curly} braces"}`,
		},
		{
			name:  "escaped quote inside string",
			input: `{"message":"she said \"no\" {loudly}"}`,
			want:  `{"message":"she said \"no\" {loudly}"}`,
		},
		{
			name:  "first invalid candidate skipped",
			input: `{broken} {"ok":true}`,
			want:  `{"ok":true}`,
		},
		{
			name:  "utf8 bom stripped",
			input: "\xef\xbb\xbf{\"ok\":true}",
			want:  `{"ok":true}`,
		},
		{
			name:    "no json at all",
			input:   "plain text only",
			wantErr: true,
		},
		{
			name:    "unbalanced braces",
			input:   `{"message":"truncated`,
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			raw, err := Extract(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(raw))
		})
	}
}

func TestExtract_InputSizeCap(t *testing.T) {
	t.Parallel()

	huge := strings.Repeat("x", maxInputBytes+1)
	_, err := Extract(huge)
	require.Error(t, err)
	assert.ErrorContains(t, err, "exceeds")
}

func TestExtractInto(t *testing.T) {
	t.Parallel()

	var payload struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	}

	err := ExtractInto(`<p>gateway says: {"message":"conflit","code":409}</p>`, &payload)
	require.NoError(t, err)
	assert.Equal(t, "conflit", payload.Message)
	assert.Equal(t, 409, payload.Code)
}

func TestExtractInto_TypeMismatch(t *testing.T) {
	t.Parallel()

	var target []string
	err := ExtractInto(`{"message":"not an array"}`, &target)
	require.Error(t, err)
	assert.ErrorContains(t, err, "unmarshal")
}
