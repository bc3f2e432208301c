package mongo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guardianlink/portal/internal/core/domain"
)

func dupKeyException(index string) error {
	return mongo.WriteException{WriteErrors: mongo.WriteErrors{{
		Index:   0,
		Code:    11000,
		Message: `E11000 duplicate key error collection: guardian_portal.users index: ` + index + ` dup key: { x: "1" }`,
	}}}
}

func TestDuplicateUserError(t *testing.T) {
	assert.ErrorIs(t, duplicateUserError(dupKeyException(indexUniquePhone)), domain.ErrPhoneExists)
	assert.ErrorIs(t, duplicateUserError(dupKeyException(indexUniqueEmail)), domain.ErrUserExists)

	other := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 121, Message: "Document failed validation"}}}
	assert.NoError(t, duplicateUserError(other))
	assert.NoError(t, duplicateUserError(errors.New("connection reset")))
}

func TestPreferencesSet(t *testing.T) {
	dark := true
	size := domain.TextSizeLarge

	assert.Equal(t, bson.M{
		"preferences.dark_mode": true,
		"preferences.text_size": domain.TextSizeLarge,
	}, preferencesSet(domain.PreferencesPatch{DarkMode: &dark, TextSize: &size}))

	assert.Empty(t, preferencesSet(domain.PreferencesPatch{}))
}
