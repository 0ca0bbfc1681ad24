package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GlebRadaev/digishop/internal/domain"
)

func TestRespondWithJSON(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithJSON(w, http.StatusCreated, map[string]int64{"balance": 100})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"balance":100}`, w.Body.String())
}

func TestRespondWithDomainError(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedCode    int
		expectedMessage string
	}{
		{"Insufficient funds", domain.ErrInsufficientFunds, http.StatusPaymentRequired, "insufficient funds"},
		{"Service not found", domain.ErrServiceNotFound, http.StatusNotFound, domain.ErrServiceNotFound.Error()},
		{"Deposit not found", domain.ErrDepositNotFound, http.StatusNotFound, domain.ErrDepositNotFound.Error()},
		{"Already processed", domain.ErrAlreadyProcessed, http.StatusConflict, domain.ErrAlreadyProcessed.Error()},
		{"Not authorized", domain.ErrNotAuthorized, http.StatusForbidden, domain.ErrNotAuthorized.Error()},
		{"Invalid amount", domain.ErrInvalidAmount, http.StatusUnprocessableEntity, domain.ErrInvalidAmount.Error()},
		{"Storage failure hides driver text", domain.StorageFailure(errors.New("dial tcp 10.0.0.3:5432")), http.StatusServiceUnavailable, domain.ErrStorageFailure.Error()},
		{"Unknown error", fmt.Errorf("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			RespondWithDomainError(w, tt.err)

			assert.Equal(t, tt.expectedCode, w.Code)
			var resp Response
			assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.expectedMessage, resp.Message)
		})
	}
}
