package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/repository"
)

func TestMain(m *testing.M) {
	code := m.Run()
	if testPool != nil {
		testPool.Close()
	}
	if terminateTest != nil {
		terminateTest()
	}
	os.Exit(code)
}

func TestProfileRepository_Integration(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	repo := NewProfileRepository(pool)

	t.Run("upsert keeps role and seeds", func(t *testing.T) {
		p := seedProfile(t, pool, domain.RoleSeller, 0)
		require.NoError(t, repo.SetSeedsCount(ctx, p.ID, 25))

		again := &domain.Profile{ID: p.ID, Name: "Renamed", Role: domain.RoleAdmin}
		require.NoError(t, repo.UpsertProfile(ctx, again))

		assert.Equal(t, "Renamed", again.Name)
		assert.Equal(t, domain.RoleSeller, again.Role)
		assert.Equal(t, 25, again.SeedsCount)
		require.NotNil(t, again.Location, "location survives an upsert without one")
	})

	t.Run("missing profile", func(t *testing.T) {
		_, err := repo.GetProfile(ctx, domain.NewUserID())
		assert.ErrorIs(t, err, domain.ErrUserNotFound)

		err = repo.SetSeedsCount(ctx, domain.NewUserID(), 1)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("list by role", func(t *testing.T) {
		admin := seedProfile(t, pool, domain.RoleAdmin, 0)
		sellers, err := repo.ListProfiles(ctx, domain.RoleSeller)
		require.NoError(t, err)
		for _, s := range sellers {
			assert.NotEqual(t, admin.ID, s.ID)
		}
	})
}

func TestHatcheryRepository_Integration(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	repo := NewHatcheryRepository(pool)
	seller := seedProfile(t, pool, domain.RoleSeller, 10)

	start := time.Now().UTC().Truncate(time.Microsecond)
	h := &domain.Hatchery{
		ID:        uuid.NewString(),
		UserID:    seller.ID,
		Status:    domain.HatcheryStatusActive,
		Site:      seller.Location,
		StartDate: start,
		EndDate:   start.Add(30 * 24 * time.Hour),
	}
	require.NoError(t, repo.CreateHatchery(ctx, h))
	assert.Empty(t, h.Images)

	t.Run("second active cycle is refused", func(t *testing.T) {
		dup := *h
		dup.ID = uuid.NewString()
		err := repo.CreateHatchery(ctx, &dup)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("images round trip under row lock", func(t *testing.T) {
		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)
		defer repository.SafeRollback(ctx, tx)

		locked, err := tx.GetHatcheryForUpdate(ctx, h.ID)
		require.NoError(t, err)

		dist := 0.412
		locked.Images = append(locked.Images, domain.HatcheryImage{
			URL:        "http://localhost/media/a.jpg",
			PublicID:   "hatcheries/a.jpg",
			UploadedAt: start.Add(time.Minute),
			Location:   &domain.GeoPoint{Latitude: 16.51, Longitude: 80.65},
			DistanceKm: &dist,
		})
		locked.UpdatedAt = time.Now()
		require.NoError(t, tx.UpdateHatchery(ctx, locked))
		require.NoError(t, tx.Commit(ctx))

		got, err := repo.GetCurrentHatchery(ctx, seller.ID)
		require.NoError(t, err)
		require.Len(t, got.Images, 1)
		assert.True(t, got.Images[0].UploadedAt.Equal(start.Add(time.Minute)))
		assert.InDelta(t, 0.412, *got.Images[0].DistanceKm, 1e-9)
	})

	t.Run("due for close", func(t *testing.T) {
		due, err := repo.ListDueForClose(ctx, h.EndDate.Add(time.Second))
		require.NoError(t, err)
		ids := make([]string, 0, len(due))
		for _, d := range due {
			ids = append(ids, d.ID)
		}
		assert.Contains(t, ids, h.ID)

		due, err = repo.ListDueForClose(ctx, start)
		require.NoError(t, err)
		for _, d := range due {
			assert.NotEqual(t, h.ID, d.ID)
		}
	})

	t.Run("unknown and malformed ids", func(t *testing.T) {
		_, err := repo.GetHatchery(ctx, uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrHatcheryNotFound)
		_, err = repo.GetHatchery(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, domain.ErrHatcheryNotFound)
	})
}

func TestPurchaseRepository_Integration(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	repo := NewPurchaseRepository(pool)
	seller := seedProfile(t, pool, domain.RoleSeller, 10)

	tx := &domain.Transaction{
		ID:        "tx" + uuid.NewString()[:8],
		UserID:    seller.ID,
		Status:    domain.TransactionPending,
		Items:     []domain.LineItem{{Description: "Seed bag", Quantity: 3, UnitPrice: 450}},
		Total:     1350,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.CreateTransaction(ctx, tx))

	approvedAt := time.Now().UTC().Truncate(time.Microsecond)
	approved, err := repo.ApproveTransaction(ctx, tx.ID, approvedAt)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionApproved, approved.Status)
	require.NotNil(t, approved.ApprovedAt)
	assert.True(t, approved.ApprovedAt.Equal(approvedAt))

	_, err = repo.ApproveTransaction(ctx, tx.ID, approvedAt)
	assert.ErrorIs(t, err, domain.ErrAlreadyApproved)

	_, err = repo.ApproveTransaction(ctx, "missing", approvedAt)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)

	history, err := repo.ListTransactions(ctx, seller.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, int64(1350), history[0].Items[0].Amount())
}

func TestNotificationRepository_Integration(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	repo := NewNotificationRepository(pool)
	alice := seedProfile(t, pool, domain.RoleSeller, 1)
	bob := seedProfile(t, pool, domain.RoleSeller, 1)
	now := time.Now().UTC()

	direct := &domain.Notification{ID: uuid.NewString(), UserID: &alice.ID, Kind: domain.NotificationKindNotice, Title: "Seeds shipped", CreatedAt: now}
	expires := now.Add(time.Hour)
	story := &domain.Notification{ID: uuid.NewString(), Kind: domain.NotificationKindStory, Title: "Harvest tips", CreatedAt: now, ExpiresAt: &expires}
	require.NoError(t, repo.CreateNotification(ctx, direct))
	require.NoError(t, repo.CreateNotification(ctx, story))

	bobs, err := repo.ListForUser(ctx, bob.ID, now, 0)
	require.NoError(t, err)
	for _, n := range bobs {
		assert.NotEqual(t, direct.ID, n.ID, "direct notification must not leak to other sellers")
	}

	assert.ErrorIs(t, repo.MarkRead(ctx, direct.ID, bob.ID, now), domain.ErrNotificationNotFound)
	require.NoError(t, repo.MarkRead(ctx, story.ID, alice.ID, now))
	require.NoError(t, repo.MarkRead(ctx, story.ID, alice.ID, now.Add(time.Minute)))

	stories, err := repo.ListActiveStories(ctx, alice.ID, now)
	require.NoError(t, err)
	var found bool
	for _, s := range stories {
		if s.ID == story.ID {
			found = true
			require.NotNil(t, s.ReadAt)
		}
	}
	assert.True(t, found)

	removed, err := repo.DeleteExpired(ctx, expires.Add(time.Second))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, removed, int64(1))

	stories, err = repo.ListActiveStories(ctx, alice.ID, now)
	require.NoError(t, err)
	for _, s := range stories {
		assert.NotEqual(t, story.ID, s.ID)
	}
}
