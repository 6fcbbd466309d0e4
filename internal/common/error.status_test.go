package common

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestConvertMongoError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, ConvertMongoError(nil))
	})

	t.Run("no documents becomes not found", func(t *testing.T) {
		err := ConvertMongoError(fmt.Errorf("find: %w", mongo.ErrNoDocuments))
		assert.Equal(t, StatusNotFound, StatusOf(err))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("deadline becomes timeout", func(t *testing.T) {
		err := ConvertMongoError(context.DeadlineExceeded)
		assert.Equal(t, StatusGatewayTimeout, StatusOf(err))
	})

	t.Run("duplicate key becomes conflict", func(t *testing.T) {
		dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000"}}}
		err := ConvertMongoError(dup)
		assert.Equal(t, StatusConflict, StatusOf(err))
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("app errors pass through", func(t *testing.T) {
		in := NewAuthorizationError("only the owner can edit")
		assert.Same(t, in, ConvertMongoError(in))
	})

	t.Run("unknown becomes internal", func(t *testing.T) {
		err := ConvertMongoError(errors.New("boom"))
		assert.Equal(t, StatusInternalServerError, StatusOf(err))
	})
}

func TestTaxonomyStatuses(t *testing.T) {
	cases := map[string]struct {
		err    error
		status int
	}{
		"validation":     {NewValidationError("content is required"), 400},
		"invalid id":     {NewInvalidIDError("videoId"), 400},
		"authentication": {NewAuthenticationError(""), 401},
		"authorization":  {NewAuthorizationError(""), 403},
		"not found":      {NewNotFoundError("Video not found"), 404},
		"internal":       {NewInternalError("", errors.New("x")), 500},
		"plain error":    {errors.New("x"), 500},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.status, StatusOf(tc.err))
		})
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(NewValidationError("bad", "title is required"))
	assert.Equal(t, 400, resp.StatusCode)
	assert.False(t, resp.Success)
	assert.Equal(t, []string{"title is required"}, resp.Errors)

	internal := NewErrorResponse(NewInternalError("", errors.New("secret dsn")))
	assert.Equal(t, 500, internal.StatusCode)
	assert.Empty(t, internal.Errors)
	assert.NotNil(t, internal.Errors)

	plain := NewErrorResponse(errors.New("x"))
	assert.Equal(t, MsgInternalError, plain.Message)
}
