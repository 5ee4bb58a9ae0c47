package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"crm/internal/models"
	"crm/internal/services"
)

// MockUserRepository is a testify mock of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "secret")

	user := &models.User{Username: "operator", Email: "op@example.com", Password: "plaintext"}

	mockRepo.On("GetByUsername", "operator").Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("GetByEmail", "op@example.com").Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := service.RegisterUser(user)

	assert.NoError(t, err)
	// The stored password is a bcrypt hash of the original.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("plaintext")))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_UsernameTaken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "secret")

	existing := &models.User{ID: "u1", Username: "operator"}
	mockRepo.On("GetByUsername", "operator").Return(existing, nil).Once()

	err := service.RegisterUser(&models.User{Username: "operator", Email: "new@example.com", Password: "x"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already taken")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_LoginAndValidate(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "secret")

	hashed, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	user := &models.User{ID: "u1", Username: "operator", Password: string(hashed)}

	mockRepo.On("GetByUsername", "operator").Return(user, nil).Twice()

	token, err := service.LoginUser("operator", "hunter22")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "u1", claims["user_id"])
	assert.Equal(t, "operator", claims["username"])

	// Wrong password never yields a token.
	token, err = service.LoginUser("operator", "wrong")
	assert.Error(t, err)
	assert.Empty(t, token)
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	mockRepo := new(MockUserRepository)
	issuer := services.NewAuthService(mockRepo, "secret-a")
	verifier := services.NewAuthService(mockRepo, "secret-b")

	hashed, err := bcrypt.GenerateFromPassword([]byte("pw123456"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	mockRepo.On("GetByUsername", "operator").
		Return(&models.User{ID: "u1", Username: "operator", Password: string(hashed)}, nil).Once()

	token, err := issuer.LoginUser("operator", "pw123456")
	assert.NoError(t, err)

	claims, err := verifier.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}
