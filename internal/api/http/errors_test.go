package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumen-studio/lumen-backend/internal/collections"
)

func TestStoreErrorStatus(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
	}{
		{collections.ErrPermissionDenied, http.StatusForbidden},
		{fmt.Errorf("watch: %w", collections.ErrPermissionDenied), http.StatusForbidden},
		{collections.ErrTransport, http.StatusBadGateway},
		{errors.New("something else"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		status, msg := StoreErrorStatus(tc.err)
		assert.Equal(t, tc.wantStatus, status, tc.err)
		assert.NotEmpty(t, msg)
	}
}
