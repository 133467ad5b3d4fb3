package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/couplediaries/couplediaries/internal/common"
	"github.com/couplediaries/couplediaries/internal/server/models"
	"github.com/couplediaries/couplediaries/internal/server/repositories/profiles"
	"github.com/couplediaries/couplediaries/internal/server/repositories/repomanager"
)

// ProfileView is a profile plus a short-lived URL for its image.
type ProfileView struct {
	Profile  models.Profile
	ImageURL string
}

// ProfileService is the document store of user profiles.
type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	storage     BlobStorage
	now         func() time.Time
}

// NewProfileService constructs a profile service; storage signs image URLs.
func NewProfileService(db *sql.DB, m repomanager.RepositoryManager, storage BlobStorage) *ProfileService {
	return &ProfileService{db: db, repomanager: m, storage: storage, now: time.Now}
}

func toProfile(userID string, doc profiles.Document) (models.Profile, error) {
	var p models.Profile
	raw, err := json.Marshal(doc)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, err
	}
	if p.UserID == "" {
		p.UserID = userID
	}
	return p, nil
}

func (s *ProfileService) view(ctx context.Context, userID string, doc profiles.Document) (*ProfileView, error) {
	p, err := toProfile(userID, doc)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}

	v := &ProfileView{Profile: p}
	if p.ProfileImage != "" {
		if v.ImageURL, err = s.storage.PresignGet(ctx, p.ProfileImage); err != nil {
			return nil, fmt.Errorf("profile image url: %w", err)
		}
	}
	return v, nil
}

func (s *ProfileService) document(ctx context.Context, userID string) (profiles.Document, error) {
	doc, err := s.repomanager.Profiles(s.db).Get(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return profiles.Document{}, nil
		}
		return nil, fmt.Errorf("profile: %w", err)
	}
	return doc, nil
}

// Get returns the profile of userID. A user without a stored document gets
// an empty profile.
func (s *ProfileService) Get(ctx context.Context, userID string) (*ProfileView, error) {
	doc, err := s.document(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, userID, doc)
}

// sanitize keeps the editable fields of in, checking their types. Unknown
// keys are dropped.
func sanitize(in map[string]any) (profiles.Document, error) {
	out := profiles.Document{}
	for key, value := range in {
		kind, ok := models.EditableFields[key]
		if !ok {
			continue
		}
		switch kind {
		case models.KindString:
			v, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s must be a string", common.ErrorValidation, key)
			}
			out[key] = strings.TrimSpace(v)
		case models.KindNumber:
			v, ok := value.(float64)
			if !ok || v < 0 || v > common.MaxAge || v != math.Trunc(v) {
				return nil, fmt.Errorf("%w: %s must be a whole number between 0 and %d", common.ErrorValidation, key, common.MaxAge)
			}
			out[key] = v
		case models.KindBool:
			v, ok := value.(bool)
			if !ok {
				return nil, fmt.Errorf("%w: %s must be a boolean", common.ErrorValidation, key)
			}
			out[key] = v
		}
	}

	if email, ok := out[models.FieldPartnerEmail].(string); ok && email != "" {
		normalized, valid := common.NormalizeEmail(email)
		if !valid {
			return nil, fmt.Errorf("%w: invalid partner email", common.ErrorValidation)
		}
		out[models.FieldPartnerEmail] = normalized
	}
	return out, nil
}

// Merge writes the editable fields of fields into the profile of userID.
// Unknown and server-maintained keys are ignored.
func (s *ProfileService) Merge(ctx context.Context, userID string, fields map[string]any) (*ProfileView, error) {
	clean, err := sanitize(fields)
	if err != nil {
		return nil, err
	}
	if len(clean) == 0 {
		return s.Get(ctx, userID)
	}
	return s.merge(ctx, userID, clean)
}

func (s *ProfileService) merge(ctx context.Context, userID string, doc profiles.Document) (*ProfileView, error) {
	merged, err := s.repomanager.Profiles(s.db).Merge(ctx, userID, doc)
	if err != nil {
		return nil, fmt.Errorf("merge profile: %w", err)
	}
	return s.view(ctx, userID, merged)
}

// ReadFields returns the named keys of the stored document. Missing keys are
// absent from the result.
func (s *ProfileService) ReadFields(ctx context.Context, userID string, names []string) (map[string]any, error) {
	doc, err := s.document(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(names))
	for _, name := range names {
		if v, ok := doc[name]; ok {
			out[name] = v
		}
	}
	return out, nil
}

// CompleteSetup marks onboarding as finished.
func (s *ProfileService) CompleteSetup(ctx context.Context, userID string) (*ProfileView, error) {
	return s.merge(ctx, userID, profiles.Document{
		models.FieldSetupCompleted:   true,
		models.FieldSetupCompletedAt: s.now().UTC().Format(time.RFC3339),
	})
}

// SetupStatus reports whether userID finished onboarding.
func (s *ProfileService) SetupStatus(ctx context.Context, userID string) (bool, error) {
	doc, err := s.document(ctx, userID)
	if err != nil {
		return false, err
	}
	p, err := toProfile(userID, doc)
	if err != nil {
		return false, fmt.Errorf("profile: %w", err)
	}
	return p.IsSetupCompleted(), nil
}

// ImageUploadURL reserves a storage key for a new profile image and returns
// a presigned PUT URL for it.
func (s *ProfileService) ImageUploadURL(ctx context.Context, userID, contentType string) (key, url string, err error) {
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return "", "", fmt.Errorf("%w: content type must be an image", common.ErrorValidation)
	}

	key = ProfileImageKey(userID, s.now().UTC())
	url, err = s.storage.PresignPut(ctx, key, contentType)
	if err != nil {
		return "", "", fmt.Errorf("presign upload: %w", err)
	}
	return key, url, nil
}

// ConfirmImage stores key as the profile image of userID once the client
// finished uploading.
func (s *ProfileService) ConfirmImage(ctx context.Context, userID, key string) (*ProfileView, error) {
	if !OwnsKey(userID, key) {
		return nil, fmt.Errorf("%w: foreign storage key", common.ErrorValidation)
	}
	return s.merge(ctx, userID, profiles.Document{models.FieldProfileImage: key})
}
