// Package models defines the persisted records of the crowdfunding platform
// and the pipe-delimited line codec used by the flat-file storage.
package models

import (
	"fmt"
	"strings"

	"github.com/amsaid/crowdfund/internal/common"
)

// FieldSeparator is the on-disk field delimiter. No field value may contain
// it; input validation rejects values that would corrupt the record layout.
const FieldSeparator = "|"

const userFieldCount = 7

// User is a registered account. Email is the identity key and is stored
// lowercased. CreatedAt is an ISO-8601 timestamp string.
type User struct {
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Mobile       string
	IsActive     bool
	CreatedAt    string
}

// FullName returns "First Last" for greeting output.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Record serializes the user as a single pipe-delimited line (without the
// trailing newline). IsActive is written capitalized, matching the historical
// file format.
func (u *User) Record() string {
	return strings.Join([]string{
		u.Email,
		u.FirstName,
		u.LastName,
		u.PasswordHash,
		u.Mobile,
		formatBool(u.IsActive),
		u.CreatedAt,
	}, FieldSeparator)
}

// ParseUser decodes a pipe-delimited user line. A line with the wrong field
// count yields an error wrapping common.ErrInvalidRecord.
func ParseUser(line string) (*User, error) {
	parts := strings.Split(line, FieldSeparator)
	if len(parts) != userFieldCount {
		return nil, fmt.Errorf("%w: user line has %d fields, want %d", common.ErrInvalidRecord, len(parts), userFieldCount)
	}
	return &User{
		Email:        parts[0],
		FirstName:    parts[1],
		LastName:     parts[2],
		PasswordHash: parts[3],
		Mobile:       parts[4],
		IsActive:     parseBool(parts[5]),
		CreatedAt:    parts[6],
	}, nil
}

// formatBool writes the capitalized form the legacy files contain.
func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// parseBool is case-insensitive; anything other than "true" is false.
func parseBool(s string) bool {
	return strings.EqualFold(s, "true")
}
