// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// hashCost is bcrypt's default outside tests; see [WithHashCost].
var hashCost = bcrypt.DefaultCost

// HashPassword returns the bcrypt hash stored for a new account.
//
// bcrypt rejects passwords longer than 72 bytes with an error.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", fmt.Errorf("sec: hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether password matches a hash from [HashPassword].
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// WithHashCost swaps the cost, typically to [bcrypt.MinCost] in tests, and
// returns the restore function.
func WithHashCost(cost int) (restore func()) {
	previous := hashCost
	hashCost = cost
	return func() { hashCost = previous }
}
