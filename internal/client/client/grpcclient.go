package client

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/couplediaries/couplediaries/internal/client/models"
	"github.com/couplediaries/couplediaries/internal/common"
	pb "github.com/couplediaries/couplediaries/internal/proto"
	"golang.org/x/sync/singleflight"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// GRPCClient implements Client over a gRPC connection and keeps the tokens.
type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      pb.CoupleDiariesClient

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	onRefresh    func(accessToken, refreshToken string)
	refreshGroup singleflight.Group
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) SetTokens(accessToken, refreshToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = accessToken
	s.refreshToken = refreshToken
}

func (s *GRPCClient) Tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) OnTokensRefreshed(fn func(accessToken, refreshToken string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRefresh = fn
}

// refresh exchanges the refresh token for a new pair. Concurrent callers
// share one request.
func (s *GRPCClient) refresh(ctx context.Context) (string, error) {
	v, err, _ := s.refreshGroup.Do("refresh", func() (any, error) {
		_, refreshToken := s.Tokens()
		if refreshToken == "" {
			return "", ErrUnauthorized
		}

		resp, err := s.client.RefreshToken(ctx, &pb.RefreshTokenRequest{RefreshToken: refreshToken})
		if err != nil {
			return "", err
		}

		s.mu.Lock()
		s.accessToken = resp.AccessToken
		s.refreshToken = resp.RefreshToken
		onRefresh := s.onRefresh
		s.mu.Unlock()

		if onRefresh != nil {
			onRefresh(resp.AccessToken, resp.RefreshToken)
		}
		return resp.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	accessToken, refreshToken := s.Tokens()

	err := invoker(withAccessToken(ctx, accessToken), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if refreshToken == "" || method == pb.FullMethod("RefreshToken") {
		return err
	}

	accessToken, rerr := s.refresh(ctx)
	if rerr != nil {
		return rerr
	}

	return invoker(withAccessToken(ctx, accessToken), method, req, reply, cc, opts...)
}

// NewGRPCClient dials endpointURL lazily. timeout bounds every call.
func NewGRPCClient(endpointURL string, timeout time.Duration) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}

	conn, err := grpc.NewClient(c.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor))
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = pb.NewCoupleDiariesClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return ErrAlreadyExists
	case codes.ResourceExhausted:
		return ErrResendTooSoon
	case codes.FailedPrecondition:
		return ErrLinkExpired
	case codes.InvalidArgument:
		msg := strings.TrimPrefix(st.Message(), common.ErrorValidation.Error()+": ")
		return fmt.Errorf("%w: %s", ErrInvalidArgument, msg)
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) authResult(resp *pb.AuthResponse) *models.AuthResult {
	s.SetTokens(resp.AccessToken, resp.RefreshToken)
	return &models.AuthResult{
		Session:      models.Session{UserID: resp.UserId, Email: resp.Email, EmailVerified: resp.EmailVerified},
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}
}

func (s *GRPCClient) SignUp(ctx context.Context, email, password, displayName string) (*models.AuthResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.SignUp(ctx, &pb.SignUpRequest{Email: email, Password: password, DisplayName: displayName})
	if err != nil {
		return nil, s.mapError(err)
	}
	return s.authResult(resp), nil
}

func (s *GRPCClient) SignIn(ctx context.Context, email, password string) (*models.AuthResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.SignIn(ctx, &pb.SignInRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	return s.authResult(resp), nil
}

// SignOut revokes the refresh token on the server and forgets both tokens
// locally, even when the server call fails.
func (s *GRPCClient) SignOut(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, refreshToken := s.Tokens()
	s.SetTokens("", "")

	if refreshToken == "" {
		return nil
	}
	if _, err := s.client.SignOut(ctx, &pb.SignOutRequest{RefreshToken: refreshToken}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) SendVerificationEmail(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.client.SendVerificationEmail(ctx, &pb.SendVerificationEmailRequest{})
	return s.mapError(err)
}

func (s *GRPCClient) ReloadSession(ctx context.Context) (*models.Session, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ReloadSession(ctx, &pb.ReloadSessionRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &models.Session{UserID: resp.UserId, Email: resp.Email, EmailVerified: resp.EmailVerified}, nil
}

func profileFromPB(p *pb.Profile) *models.Profile {
	return &models.Profile{
		UserID:          p.UserId,
		Email:           p.Email,
		Name:            p.Name,
		Age:             int(p.Age),
		Gender:          p.Gender,
		PartnerName:     p.PartnerName,
		PartnerEmail:    p.PartnerEmail,
		Date:            p.Date,
		ProfileImage:    p.ProfileImage,
		ProfileImageURL: p.ProfileImageUrl,
		SetupCompleted:  p.SetupCompleted,
		IsLoggedIn:      p.IsLoggedIn,
		LastLoginTime:   p.LastLoginTime,
		CreatedAt:       p.CreatedAt,
	}
}

func (s *GRPCClient) GetProfile(ctx context.Context) (*models.Profile, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GetProfile(ctx, &pb.GetProfileRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return profileFromPB(resp), nil
}

func (s *GRPCClient) MergeProfile(ctx context.Context, fields map[string]any) (*models.Profile, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.MergeProfile(ctx, &pb.MergeProfileRequest{Fields: fields})
	if err != nil {
		return nil, s.mapError(err)
	}
	return profileFromPB(resp), nil
}

func (s *GRPCClient) ReadProfileFields(ctx context.Context, names ...string) (map[string]any, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ReadProfileFields(ctx, &pb.ReadProfileFieldsRequest{Names: names})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.AsMap(), nil
}

func (s *GRPCClient) CompleteSetup(ctx context.Context) (*models.Profile, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.CompleteSetup(ctx, &pb.CompleteSetupRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return profileFromPB(resp), nil
}

func (s *GRPCClient) GetSetupStatus(ctx context.Context) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GetSetupStatus(ctx, &pb.GetSetupStatusRequest{})
	if err != nil {
		return false, s.mapError(err)
	}
	return resp.Completed, nil
}

func (s *GRPCClient) ProfileImageUploadURL(ctx context.Context, contentType string) (string, string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GetProfileImageUploadURL(ctx, &pb.GetProfileImageUploadURLRequest{ContentType: contentType})
	if err != nil {
		return "", "", s.mapError(err)
	}
	return resp.Key, resp.Url, nil
}

func (s *GRPCClient) ConfirmProfileImage(ctx context.Context, key string) (*models.Profile, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ConfirmProfileImage(ctx, &pb.ConfirmProfileImageRequest{Key: key})
	if err != nil {
		return nil, s.mapError(err)
	}
	return profileFromPB(resp), nil
}

func cardFromPB(c *pb.Card) models.Card {
	return models.Card{
		ID:          c.Id,
		Date:        c.Date,
		Mood:        c.Mood,
		Location:    c.Location,
		Temperature: c.Temperature,
		Photo:       c.Photo,
	}
}

func (s *GRPCClient) CreateCard(ctx context.Context, card models.Card) (*models.Card, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.CreateCard(ctx, &pb.CreateCardRequest{Card: &pb.Card{
		Id:          card.ID,
		Date:        card.Date,
		Mood:        card.Mood,
		Location:    card.Location,
		Temperature: card.Temperature,
		Photo:       card.Photo,
	}})
	if err != nil {
		return nil, s.mapError(err)
	}
	c := cardFromPB(resp)
	return &c, nil
}

func (s *GRPCClient) ListCards(ctx context.Context) ([]models.Card, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ListCards(ctx, &pb.ListCardsRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}

	out := make([]models.Card, 0, len(resp.Cards))
	for _, c := range resp.Cards {
		out = append(out, cardFromPB(c))
	}
	return out, nil
}
