package config

import "fmt"

func errMissing(key, because string) error {
	return fmt.Errorf("config: %s is required when %s", key, because)
}

func errInvalid(key, value string) error {
	return fmt.Errorf("config: invalid value %q for %s", value, key)
}
