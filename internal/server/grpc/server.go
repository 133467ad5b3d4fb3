// Package grpc exposes the Couple Diaries services over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/couplediaries/couplediaries/internal/logging"
	pb "github.com/couplediaries/couplediaries/internal/proto"
	"github.com/couplediaries/couplediaries/internal/server/models"
	"github.com/couplediaries/couplediaries/internal/server/services"
	"google.golang.org/grpc"
)

type userService interface {
	SignUp(ctx context.Context, email, password, displayName string) (*services.AuthResult, error)
	SignIn(ctx context.Context, email, password string) (*services.AuthResult, error)
	SignOut(ctx context.Context, refreshToken string) error
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	SendVerificationEmail(ctx context.Context, userID string) error
	VerifyEmail(ctx context.Context, token string) error
	ReloadSession(ctx context.Context, userID string) (*models.User, error)
}

type profileService interface {
	Get(ctx context.Context, userID string) (*services.ProfileView, error)
	Merge(ctx context.Context, userID string, fields map[string]any) (*services.ProfileView, error)
	ReadFields(ctx context.Context, userID string, names []string) (map[string]any, error)
	CompleteSetup(ctx context.Context, userID string) (*services.ProfileView, error)
	SetupStatus(ctx context.Context, userID string) (bool, error)
	ImageUploadURL(ctx context.Context, userID, contentType string) (string, string, error)
	ConfirmImage(ctx context.Context, userID, key string) (*services.ProfileView, error)
}

type cardService interface {
	Create(ctx context.Context, userID string, card *models.Card) (*models.Card, error)
	List(ctx context.Context, userID string) ([]*models.Card, error)
}

// GRPCServer serves the CoupleDiaries service on a TCP address.
type GRPCServer struct {
	pb.UnimplementedCoupleDiariesServer
	address      string
	users        userService
	profiles     profileService
	cards        cardService
	logger       logging.Logger
	jwtSecret    []byte
	interceptors []grpc.UnaryServerInterceptor
}

// NewGRPCServer builds the server. Extra interceptors run before the
// access-token check, in the given order.
func NewGRPCServer(a string, l logging.Logger, us userService, ps profileService, cs cardService, secretKey string, interceptors ...grpc.UnaryServerInterceptor) *GRPCServer {
	return &GRPCServer{
		address:      a,
		logger:       l.With("module", "grpc_server"),
		users:        us,
		profiles:     ps,
		cards:        cs,
		jwtSecret:    []byte(secretKey),
		interceptors: interceptors,
	}
}

// NewServer returns a grpc.Server with the service registered and the
// interceptor chain installed.
func (s *GRPCServer) NewServer() *grpc.Server {
	chain := append(append([]grpc.UnaryServerInterceptor{}, s.interceptors...), s.accessTokenInterceptor)
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(chain...))
	pb.RegisterCoupleDiariesServer(srv, s)
	return srv
}

// Run listens on the configured address until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
