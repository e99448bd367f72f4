// Package repositories holds what every repository and store share.
package repositories

import "errors"

// Store level sentinels. Each backend maps its driver errors onto these so
// repositories never import a driver.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)
