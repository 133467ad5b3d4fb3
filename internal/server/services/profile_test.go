package services

import (
	"context"
	"testing"
	"time"

	"github.com/couplediaries/couplediaries/internal/common"
	"github.com/couplediaries/couplediaries/internal/server/models"
	"github.com/couplediaries/couplediaries/internal/server/repositories/profiles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileService(t *testing.T) (*ProfileService, *memStore, *fakeStorage) {
	t.Helper()
	db, _ := newSQLMockDB(t)
	store := newMemStore()
	storage := &fakeStorage{}
	svc := NewProfileService(db, &fakeRepoManager{s: store}, storage)
	svc.now = func() time.Time { return time.Date(2025, 1, 29, 10, 30, 0, 0, time.UTC) }
	return svc, store, storage
}

func TestProfileGet(t *testing.T) {
	svc, store, _ := newProfileService(t)
	store.docs["u1"] = profiles.Document{
		"userId": "u1", "name": "Ann", "age": 30.0, "partner_name": "Bob",
		"date": "2023-06-15", "profileImage": "users/u1/profile/2025/01/29/x", "setupCompleted": true,
	}

	v, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", v.Profile.Name)
	assert.Equal(t, 30.0, v.Profile.Age)
	assert.True(t, v.Profile.SetupCompleted)
	assert.Equal(t, "http://s3/get/users/u1/profile/2025/01/29/x", v.ImageURL)
}

func TestProfileGet_MissingDocument(t *testing.T) {
	svc, _, _ := newProfileService(t)

	v, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", v.Profile.UserID)
	assert.Empty(t, v.ImageURL)
}

func TestProfileMerge_IgnoresUnknownFields(t *testing.T) {
	svc, store, _ := newProfileService(t)
	store.docs["u1"] = profiles.Document{"email": "ann@example.com", "setupCompleted": false}

	v, err := svc.Merge(context.Background(), "u1", map[string]any{
		"name":           " Ann ",
		"partner_name":   "Bob",
		"age":            31.0,
		"setupCompleted": true,
		"email":          "evil@example.com",
		"favourite":      "pizza",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ann", v.Profile.Name)
	assert.Equal(t, "Bob", v.Profile.PartnerName)
	assert.Equal(t, 31.0, v.Profile.Age)
	assert.False(t, v.Profile.SetupCompleted)
	assert.Equal(t, "ann@example.com", v.Profile.Email)
	assert.NotContains(t, store.docs["u1"], "favourite")
}

func TestProfileMerge_Validation(t *testing.T) {
	svc, _, _ := newProfileService(t)

	tests := []struct {
		name   string
		fields map[string]any
	}{
		{name: "name not string", fields: map[string]any{"name": 5.0}},
		{name: "negative age", fields: map[string]any{"age": -1.0}},
		{name: "age as string", fields: map[string]any{"age": "thirty"}},
		{name: "fractional age", fields: map[string]any{"age": 25.7}},
		{name: "age beyond int32", fields: map[string]any{"age": 99999999999.0}},
		{name: "age above limit", fields: map[string]any{"age": float64(common.MaxAge + 1)}},
		{name: "bad partner email", fields: map[string]any{"partner_email": "bob@"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Merge(context.Background(), "u1", tt.fields)
			assert.ErrorIs(t, err, common.ErrorValidation)
		})
	}
}

func TestProfileMerge_OnlyUnknownFieldsReadsBack(t *testing.T) {
	svc, store, _ := newProfileService(t)
	store.docs["u1"] = profiles.Document{"name": "Ann"}
	store.fail["profiles.Merge"] = errBoom{}

	v, err := svc.Merge(context.Background(), "u1", map[string]any{"unknown": 1.0})
	require.NoError(t, err)
	assert.Equal(t, "Ann", v.Profile.Name)
}

func TestReadFields(t *testing.T) {
	svc, store, _ := newProfileService(t)
	store.docs["u1"] = profiles.Document{"name": "Ann", "date": "2023-06-15", "setupCompleted": true}

	got, err := svc.ReadFields(context.Background(), "u1", []string{"date", "setupCompleted", "missing"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"date": "2023-06-15", "setupCompleted": true}, got)
}

func TestCompleteSetupAndStatus(t *testing.T) {
	svc, _, _ := newProfileService(t)

	done, err := svc.SetupStatus(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, done)

	v, err := svc.CompleteSetup(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, v.Profile.SetupCompleted)
	assert.Equal(t, "2025-01-29T10:30:00Z", v.Profile.SetupCompletedAt)

	done, err = svc.SetupStatus(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, done)
}

func TestSetupStatus_FieldHeuristic(t *testing.T) {
	svc, store, _ := newProfileService(t)
	store.docs["u1"] = profiles.Document{"name": "Ann", "partner_name": "Bob", "date": "2023-06-15"}

	done, err := svc.SetupStatus(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, done)
}

func TestSetupStatus_RepositoryError(t *testing.T) {
	svc, store, _ := newProfileService(t)
	store.fail["profiles.Get"] = errBoom{}

	_, err := svc.SetupStatus(context.Background(), "u1")
	assert.Error(t, err)
}

func TestImageUploadAndConfirm(t *testing.T) {
	svc, store, _ := newProfileService(t)

	key, url, err := svc.ImageUploadURL(context.Background(), "u1", "image/jpeg")
	require.NoError(t, err)
	assert.Contains(t, key, "users/u1/profile/2025/01/29/")
	assert.Equal(t, "http://s3/put/"+key, url)

	_, _, err = svc.ImageUploadURL(context.Background(), "u1", "text/plain")
	assert.ErrorIs(t, err, common.ErrorValidation)

	v, err := svc.ConfirmImage(context.Background(), "u1", key)
	require.NoError(t, err)
	assert.Equal(t, key, store.docs["u1"][models.FieldProfileImage])
	assert.Equal(t, "http://s3/get/"+key, v.ImageURL)

	_, err = svc.ConfirmImage(context.Background(), "u2", key)
	assert.ErrorIs(t, err, common.ErrorValidation)
}
