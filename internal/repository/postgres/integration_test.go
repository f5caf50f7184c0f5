//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/placeguide/account-core/internal/model"
	repo "github.com/placeguide/account-core/internal/repository/postgres"
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
				"POSTGRES_DB":       "placeguide_test",
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
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/placeguide_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestRepositories_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	t.Run("user_repository", func(t *testing.T) {
		ur := repo.NewUserRepository(conn)
		u := model.User{
			ID:           uuid.New(),
			Email:        "user@example.com",
			PasswordHash: []byte("$2a$10$fakefakefakefakefakefake"),
			Username:     "traveler",
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		saved, err := ur.Create(ctx, u)
		require.NoError(t, err)
		require.Equal(t, u.ID, saved.ID)

		byEmail, err := ur.GetByEmail(ctx, u.Email)
		require.NoError(t, err)
		require.Equal(t, u.ID, byEmail.ID)

		byID, err := ur.GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, u.Email, byID.Email)

		_, err = ur.GetByEmail(ctx, "missing@example.com")
		require.ErrorIs(t, err, model.ErrNotFound)

		url := "http://storage.example.com/avatars/a.jpg"
		updated, err := ur.UpdateMetadata(ctx, u.ID, model.UserMetadata{ProfileImageURL: &url})
		require.NoError(t, err)
		require.Equal(t, url, updated.ProfileImageURL)
		// Partial update leaves the username alone.
		require.Equal(t, "traveler", updated.Username)

		require.NoError(t, ur.UpdatePassword(ctx, u.ID, []byte("$2a$10$newhashnewhashnewhashnew")))
		require.ErrorIs(t, ur.UpdatePassword(ctx, uuid.New(), []byte("x")), model.ErrNotFound)
	})

	t.Run("refresh_token_repository", func(t *testing.T) {
		ur := repo.NewUserRepository(conn)
		owner, err := ur.Create(ctx, model.User{
			ID:           uuid.New(),
			Email:        "tokens@example.com",
			PasswordHash: []byte("$2a$10$fakefakefakefakefakefake"),
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		})
		require.NoError(t, err)

		rr := repo.NewRefreshTokenRepository(conn)
		rt := model.RefreshToken{
			ID:        uuid.New(),
			JTI:       uuid.NewString(),
			UserID:    owner.ID,
			TokenHash: make([]byte, 32),
			IssuedAt:  time.Now(),
			ExpiresAt: time.Now().Add(time.Hour),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		require.NoError(t, rr.Create(ctx, rt))

		got, err := rr.GetByJTI(ctx, rt.JTI)
		require.NoError(t, err)
		require.Equal(t, rt.UserID, got.UserID)
		require.Nil(t, got.RevokedAt)

		require.NoError(t, rr.RevokeByJTI(ctx, rt.JTI))
		revoked, err := rr.GetByJTI(ctx, rt.JTI)
		require.NoError(t, err)
		require.NotNil(t, revoked.RevokedAt)

		_, err = rr.GetByJTI(ctx, uuid.NewString())
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("password_reset_repository", func(t *testing.T) {
		ur := repo.NewUserRepository(conn)
		owner, err := ur.Create(ctx, model.User{
			ID:           uuid.New(),
			Email:        "reset@example.com",
			PasswordHash: []byte("$2a$10$fakefakefakefakefakefake"),
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		})
		require.NoError(t, err)

		pr := repo.NewPasswordResetRepository(conn)
		reset := model.PasswordReset{
			Token:     uuid.NewString(),
			UserID:    owner.ID,
			ExpiresAt: time.Now().Add(time.Hour),
		}
		require.NoError(t, pr.Create(ctx, reset))

		got, err := pr.GetByToken(ctx, reset.Token)
		require.NoError(t, err)
		require.Equal(t, owner.ID, got.UserID)
		require.False(t, got.Consumed)

		require.NoError(t, pr.Consume(ctx, reset.Token))
		consumed, err := pr.GetByToken(ctx, reset.Token)
		require.NoError(t, err)
		require.True(t, consumed.Consumed)

		// A consumed token cannot be consumed twice.
		require.ErrorIs(t, pr.Consume(ctx, reset.Token), model.ErrNotFound)
	})

	t.Run("place_repository", func(t *testing.T) {
		_, err := conn.Exec(ctx,
			`INSERT INTO places (id, title, description, image_url, category) VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), "Old Town Square", "historic centre", "http://img.example.com/1.jpg", "sights")
		require.NoError(t, err)
		_, err = conn.Exec(ctx,
			`INSERT INTO places (id, title, description, image_url, category) VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), "River Cafe", "coffee by the water", "http://img.example.com/2.jpg", "food")
		require.NoError(t, err)

		pr := repo.NewPlaceRepository(conn)
		places, err := pr.List(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(places), 2)

		// Ordered by title.
		require.Equal(t, "Old Town Square", places[0].Title)
	})
}
