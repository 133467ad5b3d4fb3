package services

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/couplediaries/couplediaries/internal/client/countdown"
	"github.com/couplediaries/couplediaries/internal/client/models"
	"github.com/couplediaries/couplediaries/internal/common"
	"github.com/couplediaries/couplediaries/internal/logging"
)

// WizardStep is a page of the "get started" wizard.
type WizardStep int

const (
	StepAboutYou WizardStep = iota + 1
	StepPartner
	StepDone
)

// profileAPI is the part of client.Client the wizard uses.
type profileAPI interface {
	MergeProfile(ctx context.Context, fields map[string]any) (*models.Profile, error)
	CompleteSetup(ctx context.Context) (*models.Profile, error)
	ProfileImageUploadURL(ctx context.Context, contentType string) (key, url string, err error)
	ConfirmProfileImage(ctx context.Context, key string) (*models.Profile, error)
}

// Uploader sends a blob to a presigned URL. *netx.Uploader implements it.
type Uploader interface {
	Put(ctx context.Context, url string, body []byte, contentType string) error
}

// AboutYou is the first page. Age is free text; anything that does not
// start with digits counts as 0.
type AboutYou struct {
	Name      string
	Age       string
	Gender    string
	ImagePath string
}

// Partner is the second page.
type Partner struct {
	Name  string
	Email string
	Date  string
}

// Wizard collects the profile in three steps. Nothing is written to the
// server before step two is submitted.
type Wizard struct {
	api      profileAPI
	uploader Uploader
	logger   logging.Logger

	mu      sync.Mutex
	step    WizardStep
	about   AboutYou
	partner Partner
}

// NewWizard starts a wizard at StepAboutYou.
func NewWizard(api profileAPI, uploader Uploader, l logging.Logger) *Wizard {
	return &Wizard{
		api:      api,
		uploader: uploader,
		logger:   l.With("module", "onboarding"),
		step:     StepAboutYou,
	}
}

func (w *Wizard) Step() WizardStep {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Back returns to the previous step. Entered values are kept.
func (w *Wizard) Back() WizardStep {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == StepPartner {
		w.step = StepAboutYou
	}
	return w.step
}

// SubmitAboutYou validates the first page and moves to the second.
func (w *Wizard) SubmitAboutYou(in AboutYou) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Gender = strings.TrimSpace(in.Gender)
	in.ImagePath = strings.TrimSpace(in.ImagePath)

	if in.Name == "" {
		return ErrNameRequired
	}
	if in.ImagePath != "" {
		if _, err := os.Stat(in.ImagePath); err != nil {
			return fmt.Errorf("profile image: %w", err)
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == StepDone {
		return ErrWizardFinished
	}
	w.about = in
	w.step = StepPartner
	return nil
}

// SubmitPartner validates the second page, uploads the profile image if one
// was picked and saves the collected fields.
func (w *Wizard) SubmitPartner(ctx context.Context, in Partner) (*models.Profile, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Date = strings.TrimSpace(in.Date)

	if in.Name == "" {
		return nil, ErrPartnerRequired
	}
	if in.Email != "" {
		email, ok := common.NormalizeEmail(in.Email)
		if !ok {
			return nil, ErrInvalidEmail
		}
		in.Email = email
	}
	if _, ok := countdown.Parse(in.Date); !ok {
		return nil, ErrInvalidDate
	}

	w.mu.Lock()
	if w.step != StepPartner {
		w.mu.Unlock()
		return nil, fmt.Errorf("wizard is on step %d", w.step)
	}
	about := w.about
	w.mu.Unlock()

	if about.ImagePath != "" {
		if err := w.uploadImage(ctx, about.ImagePath); err != nil {
			return nil, err
		}
	}

	p, err := w.api.MergeProfile(ctx, map[string]any{
		"name":          about.Name,
		"age":           parseAge(about.Age),
		"gender":        about.Gender,
		"partner_name":  in.Name,
		"partner_email": in.Email,
		"date":          in.Date,
	})
	if err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	w.mu.Lock()
	w.partner = in
	w.step = StepDone
	w.mu.Unlock()
	return p, nil
}

// Complete marks onboarding as finished on the server.
func (w *Wizard) Complete(ctx context.Context) (*models.Profile, error) {
	if w.Step() != StepDone {
		return nil, fmt.Errorf("wizard is on step %d", w.Step())
	}
	p, err := w.api.CompleteSetup(ctx)
	if err != nil {
		return nil, fmt.Errorf("complete setup: %w", err)
	}
	w.logger.Info(ctx, "setup completed", "user_id", p.UserID)
	return p, nil
}

func (w *Wizard) uploadImage(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profile image: %w", err)
	}
	contentType := http.DetectContentType(data)

	key, url, err := w.api.ProfileImageUploadURL(ctx, contentType)
	if err != nil {
		return fmt.Errorf("request upload url: %w", err)
	}
	if err := w.uploader.Put(ctx, url, data, contentType); err != nil {
		return fmt.Errorf("upload profile image: %w", err)
	}
	if _, err := w.api.ConfirmProfileImage(ctx, key); err != nil {
		return fmt.Errorf("confirm profile image: %w", err)
	}
	return nil
}

// parseAge reads the leading digits of s.
func parseAge(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n > common.MaxAge {
		return 0
	}
	return n
}
