package handlers_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-provider-wallet/internal/handlers"
	"github.com/sbilibin2017/gw-provider-wallet/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestRegisterHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectCall     bool
		expectedStatus int
	}{
		{
			name:           "successful registration",
			body:           `{"username":"john_doe","password":"secret123","email":"john@example.com","first_name":"John","last_name":"Doe"}`,
			expectCall:     true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "user already exists",
			body:           `{"username":"john_doe","password":"secret123","email":"john@example.com","first_name":"John","last_name":"Doe"}`,
			serviceErr:     services.ErrUserAlreadyExists,
			expectCall:     true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid request body",
			body:           `{invalid`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "internal error",
			body:           `{"username":"john_doe","password":"secret123","email":"john@example.com","first_name":"John","last_name":"Doe"}`,
			serviceErr:     errors.New("db down"),
			expectCall:     true,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := handlers.NewMockRegisterer(ctrl)
			if tt.expectCall {
				mockSvc.EXPECT().
					Register(gomock.Any(), "john_doe", "secret123", "john@example.com", "John", "Doe").
					Return(tt.serviceErr)
			}

			handler := handlers.NewRegisterHandler(mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)
			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}
