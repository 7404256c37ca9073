package terminal

import "testing"

func TestDecodeEscapes(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "octal_spelling", input: `\033[36m`, expected: "\x1b[36m"},
		{name: "hex_spelling", input: `\x1b[1;32m`, expected: "\x1b[1;32m"},
		{name: "unicode_spelling", input: `\u001b[0m`, expected: "\x1b[0m"},
		{name: "short_spelling", input: `\e[31m`, expected: "\x1b[31m"},
		{name: "already_decoded", input: "\x1b[36m", expected: "\x1b[36m"},
		{name: "plain_text", input: "<output>", expected: "<output>"},
		{name: "unrelated_backslash", input: `C:\tools`, expected: `C:\tools`},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			if decoded := DecodeEscapes(testCase.input); decoded != testCase.expected {
				t.Fatalf("DecodeEscapes(%q) = %q, want %q", testCase.input, decoded, testCase.expected)
			}
		})
	}
}
