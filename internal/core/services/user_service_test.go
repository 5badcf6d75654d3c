package services_test

import (
	"context"
	"testing"

	"github.com/granaapp/grana_backend/internal/apperrors"
	"github.com/granaapp/grana_backend/internal/core/domain"
	portssvc "github.com/granaapp/grana_backend/internal/core/ports/services"
	"github.com/granaapp/grana_backend/internal/core/services"
	"github.com/granaapp/grana_backend/internal/dto"
	"github.com/granaapp/grana_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"google.golang.org/api/idtoken"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockUserRepository
	mockTokenSvc *MockTokenService
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.mockTokenSvc = new(MockTokenService)
	suite.service = services.NewUserService(suite.mockRepo, suite.mockTokenSvc)
}

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Name: "Ana", Email: "Ana@Example.com", Password: "s3cret-pass"}

	suite.mockRepo.On("FindUserByEmail", ctx, "ana@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	created, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("ana@example.com", created.Email)
	suite.NotEmpty(created.PasswordHash)
	suite.NotEqual(req.Password, created.PasswordHash)
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Email: "ana@example.com"}
	req := dto.CreateUserRequest{Name: "Ana", Email: "ana@example.com", Password: "s3cret-pass"}

	suite.mockRepo.On("FindUserByEmail", ctx, "ana@example.com").Return(existing, nil).Once()

	_, err := suite.service.CreateUser(ctx, req)

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser")
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("s3cret-pass")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Email: "ana@example.com", PasswordHash: hash}

	suite.mockRepo.On("FindUserByEmail", ctx, "ana@example.com").Return(user, nil).Once()

	authed, err := suite.service.AuthenticateUser(ctx, "ana@example.com", "s3cret-pass")

	suite.Require().NoError(err)
	suite.Equal(user.UserID, authed.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("s3cret-pass")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Email: "ana@example.com", PasswordHash: hash}

	suite.mockRepo.On("FindUserByEmail", ctx, "ana@example.com").Return(user, nil).Once()

	_, err = suite.service.AuthenticateUser(ctx, "ana@example.com", "wrong")

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownEmail() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AuthenticateUser(ctx, "ghost@example.com", "whatever")

	// Same error as a wrong password so the caller cannot probe emails.
	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateGoogleUser_ProvisionsOnFirstLogin() {
	ctx := context.Background()
	payload := &idtoken.Payload{Claims: map[string]any{
		"email": "Novo@Example.com",
		"name":  "Novo Usuário",
	}}

	suite.mockTokenSvc.On("ValidateGoogleIDToken", ctx, "google-token").Return(payload, nil).Once()
	suite.mockRepo.On("FindUserByEmail", ctx, "novo@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	user, err := suite.service.AuthenticateGoogleUser(ctx, "google-token")

	suite.Require().NoError(err)
	suite.Equal("novo@example.com", user.Email)
	suite.Equal("Novo Usuário", user.Name)
	suite.Empty(user.PasswordHash)
}

func (suite *UserServiceTestSuite) TestAuthenticateGoogleUser_InvalidToken() {
	ctx := context.Background()

	suite.mockTokenSvc.On("ValidateGoogleIDToken", ctx, "bad-token").Return(nil, assert.AnError).Once()

	_, err := suite.service.AuthenticateGoogleUser(ctx, "bad-token")

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser")
}

func (suite *UserServiceTestSuite) TestChangePassword_WrongCurrent() {
	ctx := context.Background()
	hash, err := utils.HashPassword("old-password")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Email: "ana@example.com", PasswordHash: hash}

	suite.mockRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()

	err = suite.service.ChangePassword(ctx, user.UserID, dto.ChangePasswordRequest{
		CurrentPassword: "not-the-old-one",
		NewPassword:     "new-password",
	})

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateUserPassword")
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
