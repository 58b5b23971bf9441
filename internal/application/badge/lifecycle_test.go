package badge

import (
	"context"
	"testing"

	"github.com/badgekit/backend/internal/application/teardown"
	"github.com/badgekit/backend/internal/domain/session"
	"github.com/badgekit/backend/internal/infrastructure/persistence"
	"github.com/badgekit/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newLifecycleDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, persistence.RegisterShopGuard(db))
	require.NoError(t, db.AutoMigrate(&models.BadgeModel{}, &models.SessionModel{}))
	return db
}

// TestBadgeLifecycle walks a shop from install to uninstall: bulk create,
// storefront reads, an edit, then teardown twice.
func TestBadgeLifecycle(t *testing.T) {
	ctx := context.Background()
	db := newLifecycleDB(t)
	badges := persistence.NewGormBadgeRepository(db)
	sessions := persistence.NewGormSessionRepository(db)

	admin := NewAdminService(badges, nil)
	lookup := NewLookupService(badges, nil)
	teardownSvc := teardown.NewService(sessions, badges, nil)

	require.NoError(t, sessions.Save(ctx, &session.Session{
		ID:          session.OfflineID(testShop),
		Shop:        testShop,
		AccessToken: "shpat_test",
	}))

	created, err := admin.Dispatch(ctx, testShop, AdminActionRequest{
		ProductIDsJSON: `["gid://shopify/Product/1","gid://shopify/Product/2"]`,
		Name:           "Sale",
		Color:          "#ef4444",
	})
	require.NoError(t, err)
	require.Len(t, created.CreatedRecords, 2)
	assert.Equal(t, "gid://shopify/Product/1", created.CreatedRecords[0].ProductID)
	assert.Equal(t, "gid://shopify/Product/2", created.CreatedRecords[1].ProductID)

	reloaded, err := admin.List(ctx, testShop)
	require.NoError(t, err)
	require.Len(t, reloaded.Badges, 2)
	assert.Equal(t, created.CreatedRecords[0].ID, reloaded.Badges[0].ID, "a reload shows the same order")
	assert.Equal(t, created.CreatedRecords[1].ID, reloaded.Badges[1].ID)

	for _, ref := range []string{"1", "2"} {
		res := lookup.Lookup(ctx, LookupQuery{ProductRef: ref, ShopHeader: testShop})
		require.NotNil(t, res.Badge, ref)
		assert.Equal(t, BadgeView{Name: "Sale", Color: "#ef4444"}, *res.Badge)
	}

	res := lookup.Lookup(ctx, LookupQuery{ProductRef: "1", ShopHeader: "s2.example"})
	assert.Nil(t, res.Badge, "other shops never see these badges")

	p1 := created.CreatedRecords[0]
	edited, err := admin.Dispatch(ctx, testShop, AdminActionRequest{
		EditingID: p1.ID.String(),
		Name:      "Clearance",
		Color:     "#10b981",
	})
	require.NoError(t, err)
	require.True(t, edited.Found)
	assert.Equal(t, p1.ID, edited.UpdatedRecord.ID)

	res = lookup.Lookup(ctx, LookupQuery{ProductRef: "1", ShopHeader: testShop})
	require.NotNil(t, res.Badge)
	assert.Equal(t, BadgeView{Name: "Clearance", Color: "#10b981"}, *res.Badge)

	res = lookup.Lookup(ctx, LookupQuery{ProductRef: "2", ShopHeader: testShop})
	require.NotNil(t, res.Badge)
	assert.Equal(t, "Sale", res.Badge.Name)

	present, err := sessions.ExistsForShop(ctx, testShop)
	require.NoError(t, err)
	first := teardownSvc.Handle(ctx, teardown.UninstalledEvent{Shop: testShop, SessionPresent: present})
	require.NoError(t, first.Err())
	assert.Nil(t, first.Advisory)
	assert.Equal(t, int64(2), first.BadgesDeleted)

	listed, err := admin.List(ctx, testShop)
	require.NoError(t, err)
	assert.Empty(t, listed.Badges)
	assert.Zero(t, listed.Total)

	present, err = sessions.ExistsForShop(ctx, testShop)
	require.NoError(t, err)
	second := teardownSvc.Handle(ctx, teardown.UninstalledEvent{Shop: testShop, SessionPresent: present})
	assert.True(t, second.Skipped)
	assert.NoError(t, second.Err())
}
