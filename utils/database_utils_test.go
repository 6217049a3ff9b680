package utils

import (
	"testing"

	"github.com/Luismorlan/nashbites/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTempDB(t *testing.T) {
	db, dbName := CreateTempDB(t)
	assert.True(t, isTempDB(dbName))

	for _, table := range []interface{}{
		&model.Creator{},
		&model.Place{},
		&model.Article{},
		&model.SourcePost{},
		&model.ReviewQuote{},
		&model.MergeEvent{},
		&model.WebhookLog{},
	} {
		assert.True(t, db.Migrator().HasTable(table))
	}
}

func TestTempDBsAreIsolated(t *testing.T) {
	db1, _ := CreateTempDB(t)
	db2, _ := CreateTempDB(t)

	require.Nil(t, db1.Create(&model.Creator{Id: "c1", InstagramHandle: "eastnashbites", DisplayName: "East Nash Bites", IsActive: true}).Error)

	var count int64
	db2.Model(&model.Creator{}).Count(&count)
	assert.Equal(t, int64(0), count)
	db1.Model(&model.Creator{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreatorHandleIsUnique(t *testing.T) {
	db, _ := CreateTempDB(t)
	require.Nil(t, db.Create(&model.Creator{Id: "c1", InstagramHandle: "nashfoodtours", DisplayName: "A", IsActive: true}).Error)
	assert.NotNil(t, db.Create(&model.Creator{Id: "c2", InstagramHandle: "nashfoodtours", DisplayName: "B", IsActive: true}).Error)
}
