package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertWithCodeRetryRegeneratesOnDuplicate(t *testing.T) {
	var codes []string
	id, err := insertWithCodeRetry(func(code string) (int64, error) {
		codes = append(codes, code)
		if len(codes) < 3 {
			return 0, errors.New("Error 1062 (23000): Duplicate entry")
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	require.Len(t, codes, 3)
	// Each attempt carries a fresh code.
	assert.NotEqual(t, codes[0], codes[1])
	assert.NotEqual(t, codes[1], codes[2])
	for _, c := range codes {
		assert.Len(t, c, 9)
		assert.Equal(t, "RP-", c[:3])
	}
}

func TestInsertWithCodeRetryExhaustsBudget(t *testing.T) {
	attempts := 0
	_, err := insertWithCodeRetry(func(string) (int64, error) {
		attempts++
		return 0, errors.New("Error 1062 (23000): Duplicate entry")
	})
	assert.Equal(t, ErrCodeExhausted, err)
	assert.Equal(t, codeRetries, attempts)
}

func TestInsertWithCodeRetryStopsOnOtherErrors(t *testing.T) {
	attempts := 0
	boom := errors.New("connection reset")
	_, err := insertWithCodeRetry(func(string) (int64, error) {
		attempts++
		return 0, boom
	})
	assert.Equal(t, boom, err)
	assert.Equal(t, 1, attempts)
}
