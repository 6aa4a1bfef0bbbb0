package utils

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AndriiIshchenko/social-media-api/model"
	"github.com/AndriiIshchenko/social-media-api/utils/dotenv"
)

func TestMain(m *testing.M) {
	dotenv.LoadDotEnvsInTests()
	os.Exit(m.Run())
}

func TestCreateTempDB(t *testing.T) {
	db, dbName := CreateTempDB(t)

	exists, err := IsDatabaseExist(dbName)
	assert.Nil(t, err)
	assert.True(t, exists)

	// Migration ran: the schema accepts a row in every table.
	assert.True(t, db.Migrator().HasTable(&model.Profile{}))
	assert.True(t, db.Migrator().HasTable(&model.Post{}))
	assert.True(t, db.Migrator().HasTable(&model.Reaction{}))
	assert.True(t, db.Migrator().HasTable(&model.Comment{}))
	assert.True(t, db.Migrator().HasTable(&model.Tag{}))
	assert.True(t, db.Migrator().HasTable("follow_edges"))
	assert.True(t, db.Migrator().HasTable("post_tags"))
}

func TestIsDatabaseExist(t *testing.T) {
	exists, err := IsDatabaseExist("postgres")
	assert.Nil(t, err)
	assert.True(t, exists)

	exists, err = IsDatabaseExist("DOES_NOT_EXIST")
	assert.Nil(t, err)
	assert.False(t, exists)
}
