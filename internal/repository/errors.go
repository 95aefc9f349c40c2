package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when a lookup by id matches no document.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateReview is raised by the unique (company_id, user_id)
	// index when a user submits a second review for the same company.
	ErrDuplicateReview = errors.New("review already exists for this user and company")
	// ErrAlreadyExists reports an _id collision, which only happens when
	// callers supply their own ids (seeding).
	ErrAlreadyExists = errors.New("document already exists")
)

// Mongo signals unique-index violations with write error code 11000.
func isDuplicateKey(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	return false
}
