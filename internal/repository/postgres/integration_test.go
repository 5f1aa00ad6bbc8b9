//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/abriand/user-registry-server/internal/apierrors"
	"github.com/abriand/user-registry-server/internal/model"
	repo "github.com/abriand/user-registry-server/internal/repository/postgres"
	"github.com/abriand/user-registry-server/internal/service"
	"github.com/abriand/user-registry-server/internal/testutil"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "registry_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/registry_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newConnection(t *testing.T) *repo.Connection {
	t.Helper()
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn, repo.ConnectionOptions{ConnectTimeout: 5 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	t.Cleanup(func() { _, _ = conn.Exec(ctx, "TRUNCATE users RESTART IDENTITY") })
	return conn
}

func johnDoe() model.User {
	return model.User{
		Firstname:  "John",
		Lastname:   "Doe",
		Email:      "john@example.com",
		DateBirth:  model.NewDate(1990, time.January, 1),
		PostalCode: "12345",
		City:       "New York",
	}
}

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn := newConnection(t)
	userRepo := repo.NewUserRepository(conn)

	saved, err := userRepo.Create(ctx, johnDoe())
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.Equal(t, "john@example.com", saved.Email)
	assert.Equal(t, "1990-01-01", saved.DateBirth.Format(model.DateLayout))

	byEmail, err := userRepo.GetByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, byEmail.ID)

	byID, err := userRepo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", byID.Email)

	users, err := userRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, saved.ID, users[0].ID)

	require.NoError(t, userRepo.Delete(ctx, saved.ID))

	users, err = userRepo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	assert.ErrorIs(t, userRepo.Delete(ctx, saved.ID), model.ErrNotFound)
	_, err = userRepo.GetByID(ctx, saved.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserRepository_ListOrderedByID(t *testing.T) {
	ctx := context.Background()
	conn := newConnection(t)
	userRepo := repo.NewUserRepository(conn)

	for _, email := range []string{"c@example.com", "a@example.com", "b@example.com"} {
		u := johnDoe()
		u.Email = email
		_, err := userRepo.Create(ctx, u)
		require.NoError(t, err)
	}

	users, err := userRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Less(t, users[0].ID, users[1].ID)
	assert.Less(t, users[1].ID, users[2].ID)
}

func TestUserRepository_UniqueEmailConstraint(t *testing.T) {
	ctx := context.Background()
	conn := newConnection(t)
	userRepo := repo.NewUserRepository(conn)

	_, err := userRepo.Create(ctx, johnDoe())
	require.NoError(t, err)

	_, err = userRepo.Create(ctx, johnDoe())
	assert.ErrorIs(t, err, model.ErrEmailTaken)

	users, err := userRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

// Covers the end-to-end registry scenario against real storage: create,
// duplicate create, delete with wrong then right password, repeat delete.
func TestRegistryService_Scenario(t *testing.T) {
	ctx := context.Background()
	conn := newConnection(t)
	userRepo := repo.NewUserRepository(conn)
	registry := service.NewRegistry(userRepo, "secret++", testutil.MakeNoopLogger())

	created, err := registry.CreateUser(ctx, johnDoe())
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	users, err := registry.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	_, err = registry.CreateUser(ctx, johnDoe())
	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.HTTPCode)

	err = registry.DeleteUser(ctx, created.ID, "wrong")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.HTTPCode)

	users, err = registry.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1, "failed delete must not remove the row")

	require.NoError(t, registry.DeleteUser(ctx, created.ID, "secret++"))

	users, err = registry.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	err = registry.DeleteUser(ctx, created.ID, "secret++")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.HTTPCode)
}

// Ids are assigned by the database and never reused after deletion.
func TestUserRepository_IDsNotReused(t *testing.T) {
	ctx := context.Background()
	conn := newConnection(t)
	userRepo := repo.NewUserRepository(conn)

	first, err := userRepo.Create(ctx, johnDoe())
	require.NoError(t, err)
	require.NoError(t, userRepo.Delete(ctx, first.ID))

	second := johnDoe()
	second.Email = "jane@example.com"
	saved, err := userRepo.Create(ctx, second)
	require.NoError(t, err)
	assert.Greater(t, saved.ID, first.ID)
}
