package basket

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/worklabs/emarket-backend/pkg/db/models"
)

func setupBasketTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS basket_lines (
  product_name TEXT PRIMARY KEY,
  unit_price INTEGER NOT NULL,
  image_url TEXT NOT NULL DEFAULT '',
  quantity INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func TestRepositoryInsertAndFind(t *testing.T) {
	repo := NewRepository(setupBasketTestDB(t))
	ctx := context.Background()

	line := &models.BasketLine{
		ProductName: "Latte",
		UnitPrice:   1200,
		ImageURL:    "https://img/latte",
		Quantity:    2,
	}
	require.NoError(t, repo.Insert(ctx, line))

	found, err := repo.FindByName(ctx, "Latte")
	require.NoError(t, err)
	assert.Equal(t, 1200, found.UnitPrice)
	assert.Equal(t, 2, found.Quantity)
	assert.Equal(t, "https://img/latte", found.ImageURL)
}

func TestRepositoryFindMissingReturnsRecordNotFound(t *testing.T) {
	repo := NewRepository(setupBasketTestDB(t))

	_, err := repo.FindByName(context.Background(), "Americano")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListPreservesInsertionOrder(t *testing.T) {
	repo := NewRepository(setupBasketTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &models.BasketLine{ProductName: "Latte", UnitPrice: 1200, Quantity: 1}))
	require.NoError(t, repo.Insert(ctx, &models.BasketLine{ProductName: "Americano", UnitPrice: 900, Quantity: 1}))

	lines, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Latte", lines[0].ProductName)
	assert.Equal(t, "Americano", lines[1].ProductName)
}

func TestRepositoryUpdateReplacesMutableColumns(t *testing.T) {
	repo := NewRepository(setupBasketTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &models.BasketLine{ProductName: "Latte", UnitPrice: 1000, Quantity: 1}))

	require.NoError(t, repo.Update(ctx, &models.BasketLine{
		ProductName: "Latte",
		UnitPrice:   1200,
		ImageURL:    "https://img/latte",
		Quantity:    3,
	}))

	found, err := repo.FindByName(ctx, "Latte")
	require.NoError(t, err)
	assert.Equal(t, 1200, found.UnitPrice)
	assert.Equal(t, 3, found.Quantity)
	assert.Equal(t, "https://img/latte", found.ImageURL)
}

func TestRepositoryDeleteAndClear(t *testing.T) {
	repo := NewRepository(setupBasketTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &models.BasketLine{ProductName: "Latte", UnitPrice: 1200, Quantity: 1}))
	require.NoError(t, repo.Insert(ctx, &models.BasketLine{ProductName: "Americano", UnitPrice: 900, Quantity: 1}))

	require.NoError(t, repo.Delete(ctx, "Latte"))
	_, err := repo.FindByName(ctx, "Latte")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// deleting an absent row is a no-op
	require.NoError(t, repo.Delete(ctx, "Latte"))

	require.NoError(t, repo.ClearAll(ctx))
	lines, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines)
}
