package proto

type Empty struct{}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type SignUpRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by SignUp and SignIn.
type AuthResponse struct {
	UserId        string `json:"user_id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	AccessToken   string `json:"access_token"`
	RefreshToken  string `json:"refresh_token"`
}

type SignOutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type SendVerificationEmailRequest struct{}

type VerifyEmailRequest struct {
	Token string `json:"token"`
}

type ReloadSessionRequest struct{}

type SessionResponse struct {
	UserId        string `json:"user_id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

type GetProfileRequest struct{}

type Profile struct {
	UserId           string `json:"user_id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	Age              int32  `json:"age"`
	Gender           string `json:"gender,omitempty"`
	PartnerName      string `json:"partner_name"`
	PartnerEmail     string `json:"partner_email"`
	Date             string `json:"date"`
	ProfileImage     string `json:"profile_image,omitempty"`
	ProfileImageUrl  string `json:"profile_image_url,omitempty"`
	SetupCompleted   bool   `json:"setup_completed"`
	SetupCompletedAt string `json:"setup_completed_at,omitempty"`
	IsLoggedIn       bool   `json:"is_logged_in"`
	LastLoginTime    string `json:"last_login_time,omitempty"`
	CreatedAt        string `json:"created_at,omitempty"`
}

// MergeProfileRequest carries document fields keyed by their stored names
// ("name", "partner_name", ...). Unknown keys are ignored by the server.
type MergeProfileRequest struct {
	Fields map[string]any `json:"fields"`
}

// ReadProfileFieldsRequest asks for a subset of the profile document.
// The answer is a structpb.Struct.
type ReadProfileFieldsRequest struct {
	Names []string `json:"names"`
}

type CompleteSetupRequest struct{}

type GetSetupStatusRequest struct{}

type SetupStatusResponse struct {
	Completed bool `json:"completed"`
}

type GetProfileImageUploadURLRequest struct {
	ContentType string `json:"content_type"`
}

type UploadURLResponse struct {
	Key string `json:"key"`
	Url string `json:"url"`
}

type ConfirmProfileImageRequest struct {
	Key string `json:"key"`
}

type Card struct {
	Id          string `json:"id"`
	Date        string `json:"date"`
	Mood        string `json:"mood"`
	Location    string `json:"location"`
	Temperature string `json:"temperature"`
	Photo       string `json:"photo"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type CreateCardRequest struct {
	Card *Card `json:"card"`
}

type ListCardsRequest struct{}

type ListCardsResponse struct {
	Cards []*Card `json:"cards"`
}
