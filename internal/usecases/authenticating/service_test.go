package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) (Authenticator, *mocks.MockUserRepository) {
	ctrl := gomock.NewController(t)
	userRepo := mocks.NewMockUserRepository(ctrl)
	cfg := &config.Config{SecretKey: "chave-de-teste"}

	return NewService(userRepo, cfg), userRepo
}

func activeUser(t *testing.T, password string) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NoError(t, err)

	return &domain.User{
		ID:           1,
		Name:         "Ana",
		Lastname:     "Silva",
		Email:        "ana@example.com",
		PasswordHash: string(hash),
		Active:       true,
		RoleID:       domain.RoleClient,
	}
}

func TestLoginUser(t *testing.T) {
	service, userRepo := newAuthService(t)
	user := activeUser(t, "Senha@123")

	userRepo.EXPECT().GetUserByEmail("ana@example.com").Return(user, nil)

	token, err := service.LoginUser("  Ana@Example.com ", "Senha@123")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// o token emitido deve validar com a mesma chave e carregar as claims
	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)
	assert.Equal(t, "ana@example.com", claims.UserEmail)
	assert.Equal(t, domain.RoleClient, claims.UserRoleID)
}

func TestLoginUserSenhaIncorreta(t *testing.T) {
	service, userRepo := newAuthService(t)
	user := activeUser(t, "Senha@123")

	userRepo.EXPECT().GetUserByEmail("ana@example.com").Return(user, nil)

	token, err := service.LoginUser("ana@example.com", "senha-errada")

	assert.Empty(t, token)

	var authErr *AuthError
	assert.ErrorAs(t, err, &authErr)
	assert.Equal(t, apiErrors.ErrInvalidCredentials, authErr.Code)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUserContaDesativada(t *testing.T) {
	service, userRepo := newAuthService(t)
	user := activeUser(t, "Senha@123")
	user.Active = false

	userRepo.EXPECT().GetUserByEmail("ana@example.com").Return(user, nil)

	_, err := service.LoginUser("ana@example.com", "Senha@123")

	var authErr *AuthError
	assert.ErrorAs(t, err, &authErr)
	assert.Equal(t, apiErrors.ErrUserDisabled, authErr.Code)
	assert.Equal(t, 1, authErr.UserID)
}

func TestLoginUserNaoEncontrado(t *testing.T) {
	service, userRepo := newAuthService(t)

	userRepo.EXPECT().GetUserByEmail("x@example.com").Return(nil, nil)

	_, err := service.LoginUser("x@example.com", "Senha@123")

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLoginUserDadosObrigatorios(t *testing.T) {
	service, _ := newAuthService(t)

	_, err := service.LoginUser("", "Senha@123")
	assert.ErrorIs(t, err, ErrMissingRequiredData)

	_, err = service.LoginUser("ana@example.com", "")
	assert.ErrorIs(t, err, ErrMissingRequiredData)
}

func TestValidateTokenInvalido(t *testing.T) {
	service, _ := newAuthService(t)

	claims, err := service.ValidateToken("token-que-nao-e-jwt")

	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestCreateUser(t *testing.T) {
	service, userRepo := newAuthService(t)

	userRepo.EXPECT().GetUserByEmail("novo@example.com").Return(nil, nil)
	userRepo.EXPECT().
		CreateUser(gomock.Any()).
		DoAndReturn(func(user *domain.User) (*domain.User, error) {
			// a senha nunca chega em claro no repositório
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Senha@123")))
			assert.Equal(t, domain.RoleClient, user.RoleID)
			assert.False(t, user.Active)
			user.ID = 7
			return user, nil
		})

	user, err := service.CreateUser(&domain.User{
		Name:         "Novo",
		Lastname:     "Usuário",
		Email:        " Novo@Example.com ",
		PasswordHash: "Senha@123",
	})

	assert.NoError(t, err)
	assert.Equal(t, 7, user.ID)
	assert.Equal(t, "novo@example.com", user.Email)
}

func TestCreateUserEmailJaCadastrado(t *testing.T) {
	service, userRepo := newAuthService(t)

	userRepo.EXPECT().GetUserByEmail("ana@example.com").Return(&domain.User{ID: 1}, nil)

	user, err := service.CreateUser(&domain.User{
		Name:         "Ana",
		Lastname:     "Silva",
		Email:        "ana@example.com",
		PasswordHash: "Senha@123",
	})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestChangePasswordUsuarioNaoEncontrado(t *testing.T) {
	service, userRepo := newAuthService(t)

	userRepo.EXPECT().GetUserByID(99).Return(nil, nil)

	err := service.ChangePassword(99, "Senha@123", "Nova@Senha1")

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	service, userRepo := newAuthService(t)
	user := activeUser(t, "Senha@123")

	userRepo.EXPECT().GetUserByID(1).Return(user, nil)
	userRepo.EXPECT().
		UpdateUser(gomock.Any()).
		DoAndReturn(func(updated *domain.User) error {
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("Nova@Senha1")))
			return nil
		})

	err := service.ChangePassword(1, "Senha@123", "Nova@Senha1")

	assert.NoError(t, err)
}

func TestGenerateStrongPasswordSemPrivilegio(t *testing.T) {
	service, userRepo := newAuthService(t)

	userRepo.EXPECT().GetUserByID(2).Return(&domain.User{ID: 2, RoleID: domain.RoleClient}, nil)

	password, err := service.GenerateStrongPassword(2, 3)

	assert.Empty(t, password)
	assert.ErrorIs(t, err, ErrNoAdminPrivileges)
}

func TestValidatePasswordStrength(t *testing.T) {
	service, _ := newAuthService(t)

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{name: "senha forte", password: "Senha@123", valid: true},
		{name: "curta demais", password: "S@1a", valid: false},
		{name: "sem maiúscula", password: "senha@123", valid: false},
		{name: "sem minúscula", password: "SENHA@123", valid: false},
		{name: "sem número", password: "Senha@abc", valid: false},
		{name: "sem caractere especial", password: "Senha1234", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidatePasswordStrength(tt.password)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
