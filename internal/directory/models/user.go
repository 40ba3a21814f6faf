package models

import id "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain"

// User is the read-only directory entry for a platform member.
type User struct {
	ID    id.UserID
	Name  string
	Email string
}
