package users

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadPassword(t *testing.T) {
	for input, expected := range map[string]string{
		"secret1\n":     "secret1",
		"secret1\r\n":   "secret1",
		"secret1":       "secret1",
		" pw \n":        " pw ",
		"\tpw\nignored": "\tpw",
	} {
		actual, err := readPassword(strings.NewReader(input))
		if err != nil {
			t.Fatalf("%q: %v", input, err)
		}
		require.Equal(t, expected, actual, "input %q", input)
	}

	for _, input := range []string{"", "\n", "\r\n"} {
		_, err := readPassword(strings.NewReader(input))
		if !errors.Is(err, errMissingPassword) {
			t.Fatalf("%q: expected errMissingPassword got %v", input, err)
		}
	}
}
