package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/revolck-lab/api-advancemais-sub001/internal/auth"
	"github.com/revolck-lab/api-advancemais-sub001/internal/domain"
	"github.com/revolck-lab/api-advancemais-sub001/internal/event"
	"github.com/revolck-lab/api-advancemais-sub001/internal/repository"
	apperrors "github.com/revolck-lab/api-advancemais-sub001/pkg/errors"
)

// invalidCredentials is the single 401 returned for every login failure.
// Unknown email, wrong password and inactive account are indistinguishable
// to the caller.
func invalidCredentials() *apperrors.AppError {
	return apperrors.Unauthorized("invalid credentials")
}

// AuthService implements login and account registration.
type AuthService struct {
	users     repository.UserRepository
	companies repository.CompanyRepository
	roles     repository.RoleRepository
	addresses repository.AddressRepository
	hasher    *auth.Hasher
	codec     *auth.Codec
	events    *event.Publisher
	logger    *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	users repository.UserRepository,
	companies repository.CompanyRepository,
	roles repository.RoleRepository,
	addresses repository.AddressRepository,
	hasher *auth.Hasher,
	codec *auth.Codec,
	events *event.Publisher,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		companies: companies,
		roles:     roles,
		addresses: addresses,
		hasher:    hasher,
		codec:     codec,
		events:    events,
		logger:    logger,
	}
}

// LoginInput carries the credentials for a login attempt. IsCompany selects
// which principal table the email is looked up in.
type LoginInput struct {
	Email     string
	Password  string
	IsCompany bool
}

// AddressInput carries the address fields collected at registration.
type AddressInput struct {
	Address string
	City    string
	State   string
	CEP     string
	Number  int
}

// RegisterUserInput carries the self-registration fields for a student account.
type RegisterUserInput struct {
	Email       string
	Password    string
	Name        string
	CPF         string
	BirthDate   time.Time
	Phone       string
	GenderID    int
	EducationID int
	Address     AddressInput
}

// RegisterCompanyInput carries the self-registration fields for an employer
// account.
type RegisterCompanyInput struct {
	Email       string
	Password    string
	TradeName   string
	CNPJ        string
	ContactName string
	Phone       string
	WhatsApp    string
	Address     AddressInput
}

// CreateUserInput carries the fields an administrator supplies when creating
// an account with an arbitrary role.
type CreateUserInput struct {
	Email       string
	Password    string
	Name        string
	CPF         string
	BirthDate   time.Time
	Phone       string
	GenderID    int
	EducationID int
	RoleID      int
	Status      int
	Address     AddressInput
}

// AuthResult is the outcome of a successful login or self-registration.
type AuthResult struct {
	User      *domain.User    `json:"user,omitempty"`
	Company   *domain.Company `json:"company,omitempty"`
	Token     string          `json:"token"`
	ExpiresIn int64           `json:"expires_in"`
}

// Login verifies credentials and issues a token. All failure modes collapse
// into the same 401.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	if input.IsCompany {
		return s.loginCompany(ctx, input)
	}
	return s.loginUser(ctx, input)
}

func (s *AuthService) loginUser(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, apperrors.Internal(err)
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, invalidCredentials()
	}
	if user.Status != domain.StatusActive {
		return nil, invalidCredentials()
	}

	token, err := s.codec.Issue(&auth.Claims{
		PrincipalID: user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Role:        user.Role.Snapshot(),
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.logger.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID))

	return &AuthResult{
		User:      user,
		Token:     token,
		ExpiresIn: int64(s.codec.TTL().Seconds()),
	}, nil
}

func (s *AuthService) loginCompany(ctx context.Context, input LoginInput) (*AuthResult, error) {
	company, err := s.companies.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, apperrors.Internal(err)
	}

	if !s.hasher.Verify(input.Password, company.PasswordHash) {
		return nil, invalidCredentials()
	}
	if company.Status != domain.StatusActive {
		return nil, invalidCredentials()
	}

	token, err := s.codec.Issue(&auth.Claims{
		PrincipalID: company.ID,
		Email:       company.Email,
		Name:        company.TradeName,
		Role:        company.Role.Snapshot(),
		IsCompany:   true,
		CompanyID:   company.ID,
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.logger.InfoContext(ctx, "company logged in", slog.String("company_id", company.ID))

	return &AuthResult{
		Company:   company,
		Token:     token,
		ExpiresIn: int64(s.codec.TTL().Seconds()),
	}, nil
}

// RegisterUser creates a student account, logs it in and emits a
// registration event.
func (s *AuthService) RegisterUser(ctx context.Context, input RegisterUserInput) (*AuthResult, error) {
	if err := s.checkUserUniqueness(ctx, input.Email, input.CPF); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	// Self-registered accounts always get the student role. Its absence is a
	// broken seed, not a client error.
	role, err := s.roles.GetByName(ctx, domain.RoleAluno)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("resolve role %q: %w", domain.RoleAluno, err))
	}

	address := addressFromInput(input.Address)
	if err := s.addresses.Create(ctx, address); err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
		CPF:          input.CPF,
		BirthDate:    input.BirthDate,
		Phone:        input.Phone,
		GenderID:     input.GenderID,
		EducationID:  input.EducationID,
		Code:         registrationCode(role.Name),
		RoleID:       role.ID,
		AddressID:    address.ID,
		Status:       domain.StatusActive,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent registration can slip past the uniqueness pre-check;
		// the database constraint is authoritative.
		return nil, err
	}
	user.Role = role
	user.Address = address

	token, err := s.codec.Issue(&auth.Claims{
		PrincipalID: user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Role:        role.Snapshot(),
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("role", role.Name),
	)
	s.events.UserRegistered(ctx, event.UserRegistered{
		UserID:   user.ID,
		Email:    user.Email,
		Name:     user.Name,
		RoleName: role.Name,
	})

	return &AuthResult{
		User:      user,
		Token:     token,
		ExpiresIn: int64(s.codec.TTL().Seconds()),
	}, nil
}

// RegisterCompany creates an employer account, logs it in and emits a
// registration event.
func (s *AuthService) RegisterCompany(ctx context.Context, input RegisterCompanyInput) (*AuthResult, error) {
	if err := s.checkCompanyUniqueness(ctx, input.Email, input.CNPJ); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	role, err := s.roles.GetByName(ctx, domain.RoleEmpresa)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("resolve role %q: %w", domain.RoleEmpresa, err))
	}

	address := addressFromInput(input.Address)
	if err := s.addresses.Create(ctx, address); err != nil {
		return nil, apperrors.Internal(err)
	}

	company := &domain.Company{
		ID:           uuid.New().String(),
		Email:        input.Email,
		PasswordHash: hash,
		TradeName:    input.TradeName,
		CNPJ:         input.CNPJ,
		ContactName:  input.ContactName,
		Phone:        input.Phone,
		WhatsApp:     input.WhatsApp,
		Code:         registrationCode(role.Name),
		RoleID:       role.ID,
		AddressID:    address.ID,
		Status:       domain.StatusActive,
	}

	if err := s.companies.Create(ctx, company); err != nil {
		return nil, err
	}
	company.Role = role
	company.Address = address

	token, err := s.codec.Issue(&auth.Claims{
		PrincipalID: company.ID,
		Email:       company.Email,
		Name:        company.TradeName,
		Role:        role.Snapshot(),
		IsCompany:   true,
		CompanyID:   company.ID,
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.logger.InfoContext(ctx, "company registered", slog.String("company_id", company.ID))
	s.events.CompanyRegistered(ctx, event.CompanyRegistered{
		CompanyID: company.ID,
		Email:     company.Email,
		TradeName: company.TradeName,
	})

	return &AuthResult{
		Company:   company,
		Token:     token,
		ExpiresIn: int64(s.codec.TTL().Seconds()),
	}, nil
}

// CreateUser creates an account on behalf of an administrator. The role comes
// from the request, the account is not logged in, and no token is issued.
func (s *AuthService) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if err := s.checkUserUniqueness(ctx, input.Email, input.CPF); err != nil {
		return nil, err
	}

	// Admin-supplied role ids may be anything; an unknown one is the
	// caller's mistake, so NotFound passes through.
	role, err := s.roles.GetByID(ctx, input.RoleID)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	address := addressFromInput(input.Address)
	if err := s.addresses.Create(ctx, address); err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
		CPF:          input.CPF,
		BirthDate:    input.BirthDate,
		Phone:        input.Phone,
		GenderID:     input.GenderID,
		EducationID:  input.EducationID,
		Code:         registrationCode(role.Name),
		RoleID:       role.ID,
		AddressID:    address.ID,
		Status:       input.Status,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	user.Role = role
	user.Address = address

	s.logger.InfoContext(ctx, "user created by admin",
		slog.String("user_id", user.ID),
		slog.Int("role_id", role.ID),
	)

	return user, nil
}

// GetUser retrieves a user by id.
func (s *AuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetCompany retrieves a company by id.
func (s *AuthService) GetCompany(ctx context.Context, id string) (*domain.Company, error) {
	return s.companies.GetByID(ctx, id)
}

// VerifyToken adapts the codec for the HTTP auth middleware.
func (s *AuthService) VerifyToken(token string) (*auth.Claims, bool) {
	return s.codec.Verify(token)
}

func (s *AuthService) checkUserUniqueness(ctx context.Context, email, cpf string) error {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return apperrors.AlreadyExists("user", "email", email)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.Internal(err)
	}

	if _, err := s.users.GetByCPF(ctx, cpf); err == nil {
		return apperrors.AlreadyExists("user", "cpf", cpf)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.Internal(err)
	}

	return nil
}

func (s *AuthService) checkCompanyUniqueness(ctx context.Context, email, cnpj string) error {
	if _, err := s.companies.GetByEmail(ctx, email); err == nil {
		return apperrors.AlreadyExists("company", "email", email)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.Internal(err)
	}

	if _, err := s.companies.GetByCNPJ(ctx, cnpj); err == nil {
		return apperrors.AlreadyExists("company", "cnpj", cnpj)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.Internal(err)
	}

	return nil
}

func addressFromInput(input AddressInput) *domain.Address {
	return &domain.Address{
		ID:      uuid.New().String(),
		Address: input.Address,
		City:    input.City,
		State:   input.State,
		CEP:     input.CEP,
		Number:  input.Number,
	}
}

// registrationCode builds the human-facing account code: the role name
// followed by six random digits. Codes are not unique and carry no
// authorization meaning.
func registrationCode(roleName string) string {
	return fmt.Sprintf("%s%06d", roleName, rand.IntN(1000000))
}
