package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	dsn := DSN("app", "s3cret", "db", "3306", "rental")
	assert.True(t, strings.HasPrefix(dsn, "app:s3cret@tcp(db:3306)/rental?"))
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "loc=UTC")
	// Matched-rows reporting: without it a profile update that changes
	// nothing looks like a missing row and surfaces as a 404.
	assert.Contains(t, dsn, "clientFoundRows=true")
}

func TestDSNWithoutPassword(t *testing.T) {
	dsn := DSN("app", "", "localhost", "3306", "rental")
	assert.True(t, strings.HasPrefix(dsn, "app@tcp(localhost:3306)/rental?"))
}
