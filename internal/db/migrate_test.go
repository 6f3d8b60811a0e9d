package db

import (
	"context"
	"testing"

	"hobbymatch/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMigrateAndSeed(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open("file:migrate_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))

	for _, table := range []string{"users", "hobbies", "user_hobbies", "friend_requests", "friendships"} {
		assert.True(t, gdb.Migrator().HasTable(table), table)
	}

	ctx := context.Background()
	n, err := SeedHobbies(ctx, gdb, []string{"Chess", "Hiking"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Second run is a no-op.
	n, err = SeedHobbies(ctx, gdb, DefaultHobbies)
	require.NoError(t, err)
	assert.Zero(t, n)

	var count int64
	require.NoError(t, gdb.Model(&domain.Hobby{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}
