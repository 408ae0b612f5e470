package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paul-ayesiga/portfolio-service/internal/apperror"
	"github.com/paul-ayesiga/portfolio-service/internal/dto"
	"github.com/paul-ayesiga/portfolio-service/internal/validation"
)

func newTestProfileService(repo *mockProfileRepo) *ProfileService {
	s := NewProfileService(repo, validation.New(), discardLogger())
	s.now = fixedClock(created)
	return s
}

func TestProfileCreate_DuplicateUsername(t *testing.T) {
	s := newTestProfileService(newMockProfileRepo())
	ctx := context.Background()

	_, err := s.Create(ctx, dto.UserProfile{FullName: "Jane Doe", Username: "jane"})
	require.NoError(t, err)

	_, err = s.Create(ctx, dto.UserProfile{FullName: "Other Jane", Username: "jane"})
	assert.True(t, errors.Is(err, apperror.ErrConflict))
}

func TestProfileGetByUsername(t *testing.T) {
	s := newTestProfileService(newMockProfileRepo())
	ctx := context.Background()

	_, err := s.Create(ctx, dto.UserProfile{FullName: "Jane Doe", Username: "jane", Bio: "Gopher"})
	require.NoError(t, err)

	got, err := s.GetByUsername(ctx, "jane")
	require.NoError(t, err)
	assert.Equal(t, "Gopher", got.Bio)

	_, err = s.GetByUsername(ctx, "ghost")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestProfileUpdate_UsernameIsImmutable(t *testing.T) {
	repo := newMockProfileRepo()
	s := newTestProfileService(repo)
	ctx := context.Background()

	out, err := s.Create(ctx, dto.UserProfile{FullName: "Jane Doe", Username: "jane"})
	require.NoError(t, err)

	s.now = fixedClock(updated)
	got, err := s.Update(ctx, out.ID, dto.UserProfile{FullName: "Jane D.", Username: "someone-else"})
	require.NoError(t, err)
	assert.Equal(t, "jane", got.Username)
	assert.Equal(t, "Jane D.", got.FullName)
	assert.True(t, created.Equal(got.CreatedAt.Time))
	assert.True(t, updated.Equal(got.UpdatedAt.Time))
}

func TestProfileValidation(t *testing.T) {
	repo := newMockProfileRepo()
	s := newTestProfileService(repo)

	_, err := s.Create(context.Background(), dto.UserProfile{FullName: "Jane", Username: "jane", Email: "not-an-email"})
	require.True(t, errors.Is(err, apperror.ErrValidation))

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "must be a well-formed email address", appErr.Fields["email"])
	assert.Equal(t, 0, repo.count("CreateProfile"))
}

func TestProfileListAndDelete(t *testing.T) {
	s := newTestProfileService(newMockProfileRepo())
	ctx := context.Background()

	a, err := s.Create(ctx, dto.UserProfile{FullName: "A", Username: "a"})
	require.NoError(t, err)
	_, err = s.Create(ctx, dto.UserProfile{FullName: "B", Username: "b"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, a.ID))
	assert.True(t, errors.Is(s.Delete(ctx, a.ID), apperror.ErrNotFound))

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "b", all[0].Username)

	_, err = s.Get(ctx, a.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestProfileUpdate_UsernameMayBeOmitted(t *testing.T) {
	repo := newMockProfileRepo()
	s := newTestProfileService(repo)
	ctx := context.Background()

	out, err := s.Create(ctx, dto.UserProfile{FullName: "Jane Doe", Username: "jane"})
	require.NoError(t, err)

	got, err := s.Update(ctx, out.ID, dto.UserProfile{FullName: "Jane D.", Bio: "Gopher"})
	require.NoError(t, err)
	assert.Equal(t, "jane", got.Username)
	assert.Equal(t, "Gopher", got.Bio)
	assert.Equal(t, 1, repo.count("UpdateProfile"))
}

func TestProfileUpdate_OtherFieldsStillValidated(t *testing.T) {
	repo := newMockProfileRepo()
	s := newTestProfileService(repo)
	ctx := context.Background()

	out, err := s.Create(ctx, dto.UserProfile{FullName: "Jane Doe", Username: "jane"})
	require.NoError(t, err)

	_, err = s.Update(ctx, out.ID, dto.UserProfile{FullName: " "})
	require.True(t, errors.Is(err, apperror.ErrValidation))

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Fields, "fullName")
	assert.NotContains(t, appErr.Fields, "username")
	assert.Equal(t, 0, repo.count("UpdateProfile"))
}
