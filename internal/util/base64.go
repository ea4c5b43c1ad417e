package util

import (
	"encoding/base64"
	"fmt"
)

// Decode replaces a base64 encoded config value with its plain text. Empty values stay empty.
func Decode(v *string) error {
	if v == nil || *v == "" {
		return nil
	}

	d, err := base64.StdEncoding.DecodeString(*v)
	if err != nil {
		return fmt.Errorf("base64 디코딩 시 오류 발생. %w", err)
	}
	*v = string(d)
	return nil
}
