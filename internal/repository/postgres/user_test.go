package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revolck-lab/api-advancemais-sub001/internal/domain"
	apperrors "github.com/revolck-lab/api-advancemais-sub001/pkg/errors"
)

func newUserMock(t *testing.T) (pgxmock.PgxPoolIface, *UserRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewUserRepository(mock)
}

func sampleUser() *domain.User {
	return &domain.User{
		ID:           "u-1",
		Email:        "ana@example.com",
		PasswordHash: "$2a$10$hash",
		Name:         "Ana Souza",
		CPF:          "12345678901",
		BirthDate:    time.Date(1998, 3, 14, 0, 0, 0, 0, time.UTC),
		Phone:        "82999990000",
		GenderID:     2,
		EducationID:  3,
		Code:         "Aluno483920",
		RoleID:       1,
		AddressID:    "a-1",
		Status:       domain.StatusActive,
	}
}

func TestUserRepository_Create(t *testing.T) {
	mock, repo := newUserMock(t)
	user := sampleUser()
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(user.ID, user.Email, user.PasswordHash, user.Name, user.CPF,
			user.BirthDate, user.Phone, user.GenderID, user.EducationID,
			user.Code, user.RoleID, user.AddressID, user.Status).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	err := repo.Create(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, now, user.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	mock, repo := newUserMock(t)
	user := sampleUser()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(user.ID, user.Email, user.PasswordHash, user.Name, user.CPF,
			user.BirthDate, user.Phone, user.GenderID, user.EducationID,
			user.Code, user.RoleID, user.AddressID, user.Status).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.Create(context.Background(), user)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyExists))
	assert.Contains(t, err.Error(), "email")
}

func TestUserRepository_Create_DuplicateCPF(t *testing.T) {
	mock, repo := newUserMock(t)
	user := sampleUser()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(user.ID, user.Email, user.PasswordHash, user.Name, user.CPF,
			user.BirthDate, user.Phone, user.GenderID, user.EducationID,
			user.Code, user.RoleID, user.AddressID, user.Status).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_cpf_key"})

	err := repo.Create(context.Background(), user)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyExists))
	assert.Contains(t, err.Error(), "cpf")
}

func userRows(user *domain.User) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{
		"id", "email", "password_hash", "name", "cpf", "birth_date",
		"phone", "gender_id", "education_id", "code", "role_id", "address_id",
		"status", "created_at", "updated_at",
		"r_id", "r_name", "r_level", "r_status",
	}).AddRow(
		user.ID, user.Email, user.PasswordHash, user.Name, user.CPF, user.BirthDate,
		user.Phone, user.GenderID, user.EducationID, user.Code, user.RoleID, user.AddressID,
		user.Status, now, now,
		1, domain.RoleAluno, domain.LevelAluno, 1,
	)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	mock, repo := newUserMock(t)
	want := sampleUser()

	mock.ExpectQuery(`FROM users u\s+JOIN roles r`).
		WithArgs(want.Email).
		WillReturnRows(userRows(want))

	got, err := repo.GetByEmail(context.Background(), want.Email)
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.PasswordHash, got.PasswordHash)
	require.NotNil(t, got.Role)
	assert.Equal(t, domain.RoleAluno, got.Role.Name)
	assert.Equal(t, domain.LevelAluno, got.Role.Level)
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	mock, repo := newUserMock(t)

	mock.ExpectQuery(`FROM users u`).
		WithArgs("missing@example.com").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByEmail(context.Background(), "missing@example.com")
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestUserRepository_GetByID(t *testing.T) {
	mock, repo := newUserMock(t)
	want := sampleUser()

	mock.ExpectQuery(`FROM users u`).
		WithArgs(want.ID).
		WillReturnRows(userRows(want))

	got, err := repo.GetByID(context.Background(), want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.Email, got.Email)
}

func TestUserRepository_GetByCPF_NotFound(t *testing.T) {
	mock, repo := newUserMock(t)

	mock.ExpectQuery(`FROM users u`).
		WithArgs("99999999999").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByCPF(context.Background(), "99999999999")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
