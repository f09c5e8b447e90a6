package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordMeetsPolicy(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		pwd  string
		ok   bool
	}{
		{"empty", "", false},
		{"too short", "Ab!", false},
		{"no uppercase", "secret!1", false},
		{"no special", "Secret11", false},
		{"minimal valid", "Abc!de", true},
		{"symbol counts as special", "Abcde+", true},
		{"punct counts as special", "Abcde.", true},
		{"long valid", "Str0ng#Passw0rd", true},
		{"uppercase only", "ABCDEF", false},
		{"special only", "!!!!!!", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.ok, PasswordMeetsPolicy(tc.pwd))
		})
	}
}
