// api/model/principal.go
package model

import "time"

// Principal is an identity known to the directory. Roles hold role names
// resolved against the policy table at decision time, so a directory entry
// never goes stale when the table is reloaded.
type Principal struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Active    bool      `json:"active"`
	Superuser bool      `json:"superuser"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}
