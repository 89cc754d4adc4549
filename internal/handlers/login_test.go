package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-provider-wallet/internal/handlers"
	"github.com/sbilibin2017/gw-provider-wallet/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		token          string
		serviceErr     error
		expectCall     bool
		expectedStatus int
	}{
		{
			name:           "successful login",
			body:           `{"username":"john_doe","password":"secret123"}`,
			token:          "jwt_token",
			expectCall:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid credentials",
			body:           `{"username":"john_doe","password":"wrong"}`,
			serviceErr:     services.ErrInvalidCredentials,
			expectCall:     true,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "user does not exist",
			body:           `{"username":"ghost","password":"secret123"}`,
			serviceErr:     services.ErrUserDoesNotExist,
			expectCall:     true,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid request body",
			body:           `{invalid`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "internal error",
			body:           `{"username":"john_doe","password":"secret123"}`,
			serviceErr:     errors.New("db down"),
			expectCall:     true,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := handlers.NewMockLoginer(ctrl)
			if tt.expectCall {
				mockSvc.EXPECT().
					Login(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(tt.token, tt.serviceErr)
			}

			handler := handlers.NewLoginHandler(mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)
			assert.Equal(t, tt.expectedStatus, rr.Code)

			if tt.expectedStatus == http.StatusOK {
				var resp handlers.LoginResponse
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.token, resp.Token)
			}
		})
	}
}
