package cryptox

import (
	_ "embed"
	"strings"
	"sync"
)

//go:embed common_passwords.txt
var commonPasswordList string

var (
	commonOnce sync.Once
	commonSet  map[string]struct{}
)

// IsCommonPassword reports whether password appears (case-insensitively) in
// the embedded list of frequently breached passwords.
func IsCommonPassword(password string) bool {
	commonOnce.Do(func() {
		commonSet = make(map[string]struct{})
		for _, line := range strings.Split(commonPasswordList, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				commonSet[strings.ToLower(line)] = struct{}{}
			}
		}
	})

	_, ok := commonSet[strings.ToLower(password)]
	return ok
}
