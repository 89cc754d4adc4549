package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-provider-wallet/internal/facades"
	"github.com/sbilibin2017/gw-provider-wallet/internal/handlers"
	"github.com/sbilibin2017/gw-provider-wallet/internal/jwt"
	"github.com/sbilibin2017/gw-provider-wallet/internal/models"
	"github.com/sbilibin2017/gw-provider-wallet/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithdrawHandler(t *testing.T) {
	userID := uuid.New()
	reference := "ref_1"
	pendingTx := &models.TransactionDB{
		TransactionID: uuid.New(),
		UserID:        userID,
		Status:        models.TxStatusPending,
		Reference:     &reference,
	}

	tests := []struct {
		name           string
		body           string
		tx             *models.TransactionDB
		serviceErr     error
		expectCall     bool
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "successful withdrawal",
			body:           `{"amount":500.0,"currency":"NGN","bank_code":"044","account_number":"0123456789"}`,
			tx:             pendingTx,
			expectCall:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "insufficient funds",
			body:           `{"amount":500.0,"currency":"NGN","bank_code":"044","account_number":"0123456789"}`,
			serviceErr:     services.ErrInsufficientFunds,
			expectCall:     true,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Insufficient funds",
		},
		{
			name:           "unsupported currency",
			body:           `{"amount":500.0,"currency":"RUB","bank_code":"044","account_number":"0123456789"}`,
			serviceErr:     models.ErrUnsupportedCurrency,
			expectCall:     true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "provider rejects the transfer",
			body:           `{"amount":500.0,"currency":"NGN","bank_code":"044","account_number":"0123456789"}`,
			serviceErr:     &facades.APIError{StatusCode: 400, Message: "invalid account"},
			expectCall:     true,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid account",
		},
		{
			name:           "zero amount",
			body:           `{"amount":0,"currency":"NGN","bank_code":"044","account_number":"0123456789"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing destination",
			body:           `{"amount":500.0,"currency":"NGN"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid request body",
			body:           `{invalid`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "internal error",
			body:           `{"amount":500.0,"currency":"NGN","bank_code":"044","account_number":"0123456789"}`,
			serviceErr:     errors.New("db down"),
			expectCall:     true,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := handlers.NewMockWithdrawer(ctrl)
			mockTokener := handlers.NewMockTokener(ctrl)

			mockTokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("token", nil)
			mockTokener.EXPECT().GetClaims(gomock.Any(), "token").Return(&jwt.Claims{UserID: userID}, nil)

			if tt.expectCall {
				mockSvc.EXPECT().
					Withdraw(gomock.Any(), userID, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(tt.tx, tt.serviceErr)
			}

			handler := handlers.NewWithdrawHandler(mockSvc, mockTokener)

			req := httptest.NewRequest(http.MethodPost, "/wallet/withdraw", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)
			assert.Equal(t, tt.expectedStatus, rr.Code)

			if tt.expectedError != "" {
				var resp handlers.WithdrawErrorResponse
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Error)
			}
			if tt.expectedStatus == http.StatusOK {
				var resp handlers.WithdrawResponse
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, pendingTx.TransactionID.String(), resp.TransactionID)
				assert.Equal(t, reference, resp.Reference)
			}
		})
	}
}

func TestWithdrawHandler_Unauthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := handlers.NewMockWithdrawer(ctrl)
	mockTokener := handlers.NewMockTokener(ctrl)

	mockTokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("", errors.New("no token"))

	handler := handlers.NewWithdrawHandler(mockSvc, mockTokener)

	req := httptest.NewRequest(http.MethodPost, "/wallet/withdraw", bytes.NewBufferString(`{}`))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestWithdrawHandler_AmountConversion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	mockSvc := handlers.NewMockWithdrawer(ctrl)
	mockTokener := handlers.NewMockTokener(ctrl)

	mockTokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("token", nil)
	mockTokener.EXPECT().GetClaims(gomock.Any(), "token").Return(&jwt.Claims{UserID: userID}, nil)

	mockSvc.EXPECT().
		Withdraw(gomock.Any(), userID, models.Amount(50000), models.NGN, gomock.Any(), "rent").
		DoAndReturn(func(_ context.Context, _ uuid.UUID, _ models.Amount, _ string, dest services.WithdrawalDestination, _ string) (*models.TransactionDB, error) {
			assert.Equal(t, "044", dest.BankCode)
			assert.Equal(t, "0123456789", dest.AccountNumber)
			assert.Equal(t, "John Doe", dest.AccountName)
			return &models.TransactionDB{TransactionID: uuid.New(), Status: models.TxStatusPending}, nil
		})

	handler := handlers.NewWithdrawHandler(mockSvc, mockTokener)

	body := `{"amount":500.0,"currency":"NGN","bank_code":"044","account_number":"0123456789","account_name":"John Doe","description":"rent"}`
	req := httptest.NewRequest(http.MethodPost, "/wallet/withdraw", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
}
