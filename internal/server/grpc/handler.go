package grpc

import (
	"context"
	"time"

	pb "github.com/couplediaries/couplediaries/internal/proto"
	"github.com/couplediaries/couplediaries/internal/server/models"
	"github.com/couplediaries/couplediaries/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {
	return &pb.PingResponse{Status: "OK"}, nil
}

func authResponse(r *services.AuthResult) *pb.AuthResponse {
	return &pb.AuthResponse{
		UserId:        r.User.ID,
		Email:         r.User.Email,
		EmailVerified: r.User.EmailVerified,
		AccessToken:   r.Tokens.AccessToken,
		RefreshToken:  r.Tokens.RefreshToken,
	}
}

func (s *GRPCServer) SignUp(ctx context.Context, req *pb.SignUpRequest) (*pb.AuthResponse, error) {

	result, err := s.users.SignUp(ctx, req.Email, req.Password, req.DisplayName)
	if err != nil {
		s.logger.Warn(ctx, "Sign up failed", "error", err)
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Signed up", "user_id", result.User.ID)
	return authResponse(result), nil
}

func (s *GRPCServer) SignIn(ctx context.Context, req *pb.SignInRequest) (*pb.AuthResponse, error) {

	result, err := s.users.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		s.logger.Warn(ctx, "Sign in failed", "error", err)
		return nil, toStatus(err)
	}

	return authResponse(result), nil
}

func (s *GRPCServer) SignOut(ctx context.Context, req *pb.SignOutRequest) (*pb.Empty, error) {
	if err := s.users.SignOut(ctx, req.RefreshToken); err != nil {
		s.logger.Error(ctx, "Sign out failed", "error", err)
		return nil, toStatus(err)
	}
	return &pb.Empty{}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *pb.RefreshTokenRequest) (*pb.RefreshTokenResponse, error) {

	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.RefreshTokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) SendVerificationEmail(ctx context.Context, req *pb.SendVerificationEmailRequest) (*pb.Empty, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.users.SendVerificationEmail(ctx, userID); err != nil {
		return nil, toStatus(err)
	}
	return &pb.Empty{}, nil
}

func (s *GRPCServer) VerifyEmail(ctx context.Context, req *pb.VerifyEmailRequest) (*pb.Empty, error) {
	if err := s.users.VerifyEmail(ctx, req.Token); err != nil {
		return nil, toStatus(err)
	}
	return &pb.Empty{}, nil
}

func (s *GRPCServer) ReloadSession(ctx context.Context, req *pb.ReloadSessionRequest) (*pb.SessionResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	u, err := s.users.ReloadSession(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.SessionResponse{UserId: u.ID, Email: u.Email, EmailVerified: u.EmailVerified}, nil
}

func profileToPB(v *services.ProfileView) *pb.Profile {
	p := v.Profile
	return &pb.Profile{
		UserId:           p.UserID,
		Email:            p.Email,
		Name:             p.Name,
		Age:              int32(p.Age),
		Gender:           p.Gender,
		PartnerName:      p.PartnerName,
		PartnerEmail:     p.PartnerEmail,
		Date:             p.Date,
		ProfileImage:     p.ProfileImage,
		ProfileImageUrl:  v.ImageURL,
		SetupCompleted:   p.SetupCompleted,
		SetupCompletedAt: p.SetupCompletedAt,
		IsLoggedIn:       p.IsLoggedIn,
		LastLoginTime:    p.LastLoginTime,
		CreatedAt:        p.CreatedAt,
	}
}

func (s *GRPCServer) GetProfile(ctx context.Context, req *pb.GetProfileRequest) (*pb.Profile, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	v, err := s.profiles.Get(ctx, userID)
	if err != nil {
		s.logger.Error(ctx, "Get profile failed", "error", err)
		return nil, toStatus(err)
	}
	return profileToPB(v), nil
}

func (s *GRPCServer) MergeProfile(ctx context.Context, req *pb.MergeProfileRequest) (*pb.Profile, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	v, err := s.profiles.Merge(ctx, userID, req.Fields)
	if err != nil {
		return nil, toStatus(err)
	}
	return profileToPB(v), nil
}

func (s *GRPCServer) ReadProfileFields(ctx context.Context, req *pb.ReadProfileFieldsRequest) (*structpb.Struct, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	fields, err := s.profiles.ReadFields(ctx, userID, req.Names)
	if err != nil {
		return nil, toStatus(err)
	}

	st, err := structpb.NewStruct(fields)
	if err != nil {
		s.logger.Error(ctx, "Profile fields are not representable", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}
	return st, nil
}

func (s *GRPCServer) CompleteSetup(ctx context.Context, req *pb.CompleteSetupRequest) (*pb.Profile, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	v, err := s.profiles.CompleteSetup(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}
	return profileToPB(v), nil
}

func (s *GRPCServer) GetSetupStatus(ctx context.Context, req *pb.GetSetupStatusRequest) (*pb.SetupStatusResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	done, err := s.profiles.SetupStatus(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.SetupStatusResponse{Completed: done}, nil
}

func (s *GRPCServer) GetProfileImageUploadURL(ctx context.Context, req *pb.GetProfileImageUploadURLRequest) (*pb.UploadURLResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	key, url, err := s.profiles.ImageUploadURL(ctx, userID, req.ContentType)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.UploadURLResponse{Key: key, Url: url}, nil
}

func (s *GRPCServer) ConfirmProfileImage(ctx context.Context, req *pb.ConfirmProfileImageRequest) (*pb.Profile, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	v, err := s.profiles.ConfirmImage(ctx, userID, req.Key)
	if err != nil {
		return nil, toStatus(err)
	}
	return profileToPB(v), nil
}

func cardToPB(c *models.Card) *pb.Card {
	out := &pb.Card{
		Id:          c.ID,
		Date:        c.Date,
		Mood:        c.Mood,
		Location:    c.Location,
		Temperature: c.Temperature,
		Photo:       c.Photo,
	}
	if !c.CreatedAt.IsZero() {
		out.CreatedAt = c.CreatedAt.UTC().Format(time.RFC3339)
	}
	return out
}

func (s *GRPCServer) CreateCard(ctx context.Context, req *pb.CreateCardRequest) (*pb.Card, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	in := &models.Card{}
	if req.Card != nil {
		in.ID = req.Card.Id
		in.Date = req.Card.Date
		in.Mood = req.Card.Mood
		in.Location = req.Card.Location
		in.Temperature = req.Card.Temperature
		in.Photo = req.Card.Photo
	}

	c, err := s.cards.Create(ctx, userID, in)
	if err != nil {
		s.logger.Error(ctx, "Create card failed", "error", err)
		return nil, toStatus(err)
	}
	return cardToPB(c), nil
}

func (s *GRPCServer) ListCards(ctx context.Context, req *pb.ListCardsRequest) (*pb.ListCardsResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.cards.List(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &pb.ListCardsResponse{Cards: make([]*pb.Card, 0, len(list))}
	for _, c := range list {
		resp.Cards = append(resp.Cards, cardToPB(c))
	}
	return resp, nil
}
