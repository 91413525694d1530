package parsererror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseErrorUnwrap(t *testing.T) {
	inner := fmt.Errorf("bad token")
	err := &ParseError{Parser: "statement", Field: "amount", Value: "abc", Err: inner}

	assert.Contains(t, err.Error(), "statement")
	assert.Contains(t, err.Error(), "amount")
	assert.True(t, errors.Is(err, inner))
}

func TestUnreadableDocumentErrorUnwrap(t *testing.T) {
	inner := fmt.Errorf("truncated stream")
	err := &UnreadableDocumentError{Source: "pdf", Err: inner}

	assert.Contains(t, err.Error(), "pdf")
	assert.True(t, errors.Is(err, inner))

	var target *UnreadableDocumentError
	assert.True(t, errors.As(error(err), &target))
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	assert.Contains(t, err.Error(), "amount")
	assert.Contains(t, err.Error(), "must be greater than zero")
}

func TestInvalidFormatError(t *testing.T) {
	err := &InvalidFormatError{FilePath: "x.csv", ExpectedFormat: "csv", Msg: "missing header"}
	assert.Contains(t, err.Error(), "x.csv")
	assert.Contains(t, err.Error(), "missing header")
}
