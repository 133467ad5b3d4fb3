package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couplediaries/couplediaries/internal/logging"
)

type fakeUploader struct {
	url         string
	body        []byte
	contentType string
	err         error
}

func (u *fakeUploader) Put(ctx context.Context, url string, body []byte, contentType string) error {
	u.url, u.body, u.contentType = url, body, contentType
	return u.err
}

func TestWizard_BlankNameDoesNotAdvance(t *testing.T) {
	w := NewWizard(&fakeAPI{}, &fakeUploader{}, logging.Nop())

	err := w.SubmitAboutYou(AboutYou{Name: "   "})
	assert.ErrorIs(t, err, ErrNameRequired)
	assert.Equal(t, StepAboutYou, w.Step())
}

func TestWizard_MissingImageFile(t *testing.T) {
	w := NewWizard(&fakeAPI{}, &fakeUploader{}, logging.Nop())

	err := w.SubmitAboutYou(AboutYou{Name: "Ann", ImagePath: filepath.Join(t.TempDir(), "nope.png")})
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, StepAboutYou, w.Step())
}

func TestWizard_PartnerValidation(t *testing.T) {
	api := &fakeAPI{}
	w := NewWizard(api, &fakeUploader{}, logging.Nop())
	require.NoError(t, w.SubmitAboutYou(AboutYou{Name: "Ann"}))
	ctx := context.Background()

	tests := []struct {
		name string
		in   Partner
		want error
	}{
		{"no partner name", Partner{Date: "2023-06-15"}, ErrPartnerRequired},
		{"bad email", Partner{Name: "Bob", Email: "bob", Date: "2023-06-15"}, ErrInvalidEmail},
		{"bad date", Partner{Name: "Bob", Date: "someday"}, ErrInvalidDate},
		{"no date", Partner{Name: "Bob"}, ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := w.SubmitPartner(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, StepPartner, w.Step())
		})
	}
	assert.Nil(t, api.Merged)
}

func TestWizard_HappyPath(t *testing.T) {
	api := &fakeAPI{UploadKey: "users/u1/profile/k", UploadURL: "https://s3.test/put"}
	up := &fakeUploader{}
	w := NewWizard(api, up, logging.Nop())
	ctx := context.Background()

	img := filepath.Join(t.TempDir(), "me.png")
	png := []byte("\x89PNG\r\n\x1a\n0000")
	require.NoError(t, os.WriteFile(img, png, 0o600))

	require.NoError(t, w.SubmitAboutYou(AboutYou{Name: " Ann ", Age: "29 years", Gender: "f", ImagePath: img}))
	assert.Equal(t, StepPartner, w.Step())

	p, err := w.SubmitPartner(ctx, Partner{Name: "Bob", Email: "Bob@Example.com", Date: "2023-06-15"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", p.Name)
	assert.Equal(t, StepDone, w.Step())

	assert.Equal(t, "image/png", api.UploadType)
	assert.Equal(t, "https://s3.test/put", up.url)
	assert.Equal(t, png, up.body)
	assert.Equal(t, "users/u1/profile/k", api.ConfirmedKey)

	assert.Equal(t, map[string]any{
		"name":          "Ann",
		"age":           29,
		"gender":        "f",
		"partner_name":  "Bob",
		"partner_email": "bob@example.com",
		"date":          "2023-06-15",
	}, api.Merged)

	p, err = w.Complete(ctx)
	require.NoError(t, err)
	assert.True(t, p.SetupCompleted)
	assert.Equal(t, 1, api.CompleteN)

	assert.ErrorIs(t, w.SubmitAboutYou(AboutYou{Name: "Ann"}), ErrWizardFinished)
}

func TestWizard_UploadFailureStopsBeforeSave(t *testing.T) {
	api := &fakeAPI{UploadURL: "https://s3.test/put"}
	w := NewWizard(api, &fakeUploader{err: errors.New("403")}, logging.Nop())

	img := filepath.Join(t.TempDir(), "me.jpg")
	require.NoError(t, os.WriteFile(img, []byte("data"), 0o600))
	require.NoError(t, w.SubmitAboutYou(AboutYou{Name: "Ann", ImagePath: img}))

	_, err := w.SubmitPartner(context.Background(), Partner{Name: "Bob", Date: "2023-06-15"})
	require.Error(t, err)
	assert.Nil(t, api.Merged)
	assert.Equal(t, StepPartner, w.Step())
}

func TestWizard_BackAndCompleteOrder(t *testing.T) {
	api := &fakeAPI{}
	w := NewWizard(api, &fakeUploader{}, logging.Nop())

	_, err := w.Complete(context.Background())
	require.Error(t, err)
	assert.Zero(t, api.CompleteN)

	_, err = w.SubmitPartner(context.Background(), Partner{Name: "Bob", Date: "2023-06-15"})
	require.Error(t, err)

	require.NoError(t, w.SubmitAboutYou(AboutYou{Name: "Ann"}))
	assert.Equal(t, StepAboutYou, w.Back())
	assert.Equal(t, StepAboutYou, w.Back())
}

func TestParseAge(t *testing.T) {
	assert.Equal(t, 25, parseAge("25"))
	assert.Equal(t, 25, parseAge(" 25abc"))
	assert.Equal(t, 0, parseAge("abc"))
	assert.Equal(t, 0, parseAge(""))
	assert.Equal(t, 0, parseAge("99999999999"))
	assert.Equal(t, 0, parseAge("151"))
}
