package auth

import (
	"fmt"
	"os"
)

const (
	SecretEnvVar = "FACULTY_JWT_SECRET"
	MinSecretLen = 32
)

// SecretFromEnv reads the signing secret from varname and removes it from
// the environment right away, so child processes never see it.
func SecretFromEnv(varname string, getfn func(string) string, setfn func(string, string) error) ([]byte, error) {
	if getfn == nil {
		getfn = os.Getenv
	}
	if setfn == nil {
		setfn = os.Setenv
	}
	val := getfn(varname)
	err := setfn(varname, "")
	if err != nil {
		return nil, fmt.Errorf("auth: unable to clear %v from environment, cause %w", varname, err)
	}
	if len(val) == 0 {
		return nil, fmt.Errorf("auth: signing secret missing, set %v: %w", varname, ErrWeakSecret)
	} else if len(val) < MinSecretLen {
		return nil, fmt.Errorf("auth: secret from %v has %v bytes: %w", varname, len(val), ErrWeakSecret)
	}
	return []byte(val), nil
}
