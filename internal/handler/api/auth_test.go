//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"reservas-backend/internal/handler/api"
	reqdto "reservas-backend/internal/handler/dto/request"
	"reservas-backend/internal/pkg/jwt"
	"reservas-backend/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubAuthCommands struct {
	result *commands.LoginResult
	err    error
	gotReq reqdto.LoginRequest
}

func (s *stubAuthCommands) Login(_ context.Context, req reqdto.LoginRequest) (*commands.LoginResult, error) {
	s.gotReq = req
	return s.result, s.err
}

func (s *stubAuthCommands) ValidateToken(_ context.Context, _ string) (*jwt.Claims, error) {
	return nil, s.err
}

type AuthHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	cmds   *stubAuthCommands
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.cmds = &stubAuthCommands{}
	handler := api.NewAuthHandler(s.cmds)
	s.router.POST("/auth/login", handler.Login)
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) post(body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, "/auth/login", &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *AuthHandlerTestSuite) TestLogin() {
	creds := map[string]string{"email": "admin@example.com", "password": "secret-password"}

	s.Run("returns the token for valid credentials", func() {
		s.SetupTest()
		s.cmds.result = &commands.LoginResult{
			AdminID:     uuid.New(),
			Email:       "admin@example.com",
			Role:        "admin",
			AccessToken: "token-abc",
		}

		rec := s.post(creds)
		s.Equal(http.StatusOK, rec.Code)

		var got map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		s.Equal("token-abc", got["accessToken"])
		s.Equal("admin@example.com", got["email"])
		s.Equal("admin@example.com", s.cmds.gotReq.Email)
	})

	s.Run("invalid credentials return 401", func() {
		s.SetupTest()
		s.cmds.err = commands.ErrInvalidCredentials

		rec := s.post(creds)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("disabled account returns 403", func() {
		s.SetupTest()
		s.cmds.err = commands.ErrAdminInactive

		rec := s.post(creds)
		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("short password fails binding", func() {
		s.SetupTest()

		rec := s.post(map[string]string{"email": "admin@example.com", "password": "short"})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("malformed email fails binding", func() {
		s.SetupTest()

		rec := s.post(map[string]string{"email": "not-an-email", "password": "secret-password"})
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
