package db

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_SQLiteBusyIsTransient(t *testing.T) {
	for _, msg := range []string{
		"database is locked (5) (SQLITE_BUSY)",
		"database table is locked: shows (6)",
	} {
		err := classify("create show", errors.New(msg))
		assert.ErrorIs(t, err, ErrTransient, msg)
		assert.NotErrorIs(t, err, ErrConstraintViolation, msg)
	}
}

func TestClassify_Kinds(t *testing.T) {
	assert.ErrorIs(t, classify("get venue 1", sql.ErrNoRows), ErrNotFound)
	assert.ErrorIs(t, classify("create venue", errors.New("UNIQUE constraint failed: venues.name")), ErrConstraintViolation)
	assert.ErrorIs(t, classify("create show", &ReferenceError{Entity: "artist", ID: 3}), ErrInvalidReference)

	plain := classify("list shows", errors.New("syntax error"))
	assert.NotErrorIs(t, plain, ErrTransient)
	assert.NotErrorIs(t, plain, ErrConstraintViolation)
	assert.Nil(t, classify("ping", nil))
}
