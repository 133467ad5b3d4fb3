package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "couplediaries.v1.CoupleDiaries"

// FullMethod returns the "/service/method" path of a service method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// CoupleDiariesServer is implemented by the server handler.
type CoupleDiariesServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	SignUp(context.Context, *SignUpRequest) (*AuthResponse, error)
	SignIn(context.Context, *SignInRequest) (*AuthResponse, error)
	SignOut(context.Context, *SignOutRequest) (*Empty, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	SendVerificationEmail(context.Context, *SendVerificationEmailRequest) (*Empty, error)
	VerifyEmail(context.Context, *VerifyEmailRequest) (*Empty, error)
	ReloadSession(context.Context, *ReloadSessionRequest) (*SessionResponse, error)
	GetProfile(context.Context, *GetProfileRequest) (*Profile, error)
	MergeProfile(context.Context, *MergeProfileRequest) (*Profile, error)
	ReadProfileFields(context.Context, *ReadProfileFieldsRequest) (*structpb.Struct, error)
	CompleteSetup(context.Context, *CompleteSetupRequest) (*Profile, error)
	GetSetupStatus(context.Context, *GetSetupStatusRequest) (*SetupStatusResponse, error)
	GetProfileImageUploadURL(context.Context, *GetProfileImageUploadURLRequest) (*UploadURLResponse, error)
	ConfirmProfileImage(context.Context, *ConfirmProfileImageRequest) (*Profile, error)
	CreateCard(context.Context, *CreateCardRequest) (*Card, error)
	ListCards(context.Context, *ListCardsRequest) (*ListCardsResponse, error)
}

// UnimplementedCoupleDiariesServer can be embedded to get forward compatible
// implementations.
type UnimplementedCoupleDiariesServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedCoupleDiariesServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, unimplemented("Ping")
}
func (UnimplementedCoupleDiariesServer) SignUp(context.Context, *SignUpRequest) (*AuthResponse, error) {
	return nil, unimplemented("SignUp")
}
func (UnimplementedCoupleDiariesServer) SignIn(context.Context, *SignInRequest) (*AuthResponse, error) {
	return nil, unimplemented("SignIn")
}
func (UnimplementedCoupleDiariesServer) SignOut(context.Context, *SignOutRequest) (*Empty, error) {
	return nil, unimplemented("SignOut")
}
func (UnimplementedCoupleDiariesServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, unimplemented("RefreshToken")
}
func (UnimplementedCoupleDiariesServer) SendVerificationEmail(context.Context, *SendVerificationEmailRequest) (*Empty, error) {
	return nil, unimplemented("SendVerificationEmail")
}
func (UnimplementedCoupleDiariesServer) VerifyEmail(context.Context, *VerifyEmailRequest) (*Empty, error) {
	return nil, unimplemented("VerifyEmail")
}
func (UnimplementedCoupleDiariesServer) ReloadSession(context.Context, *ReloadSessionRequest) (*SessionResponse, error) {
	return nil, unimplemented("ReloadSession")
}
func (UnimplementedCoupleDiariesServer) GetProfile(context.Context, *GetProfileRequest) (*Profile, error) {
	return nil, unimplemented("GetProfile")
}
func (UnimplementedCoupleDiariesServer) MergeProfile(context.Context, *MergeProfileRequest) (*Profile, error) {
	return nil, unimplemented("MergeProfile")
}
func (UnimplementedCoupleDiariesServer) ReadProfileFields(context.Context, *ReadProfileFieldsRequest) (*structpb.Struct, error) {
	return nil, unimplemented("ReadProfileFields")
}
func (UnimplementedCoupleDiariesServer) CompleteSetup(context.Context, *CompleteSetupRequest) (*Profile, error) {
	return nil, unimplemented("CompleteSetup")
}
func (UnimplementedCoupleDiariesServer) GetSetupStatus(context.Context, *GetSetupStatusRequest) (*SetupStatusResponse, error) {
	return nil, unimplemented("GetSetupStatus")
}
func (UnimplementedCoupleDiariesServer) GetProfileImageUploadURL(context.Context, *GetProfileImageUploadURLRequest) (*UploadURLResponse, error) {
	return nil, unimplemented("GetProfileImageUploadURL")
}
func (UnimplementedCoupleDiariesServer) ConfirmProfileImage(context.Context, *ConfirmProfileImageRequest) (*Profile, error) {
	return nil, unimplemented("ConfirmProfileImage")
}
func (UnimplementedCoupleDiariesServer) CreateCard(context.Context, *CreateCardRequest) (*Card, error) {
	return nil, unimplemented("CreateCard")
}
func (UnimplementedCoupleDiariesServer) ListCards(context.Context, *ListCardsRequest) (*ListCardsResponse, error) {
	return nil, unimplemented("ListCards")
}

func RegisterCoupleDiariesServer(s grpc.ServiceRegistrar, srv CoupleDiariesServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unary builds the method descriptor for a request type Req, decoding the
// request and routing it through the server's interceptor chain.
func unary[Req any](name string, call func(CoupleDiariesServer, context.Context, *Req) (any, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(CoupleDiariesServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CoupleDiariesServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Ping", func(s CoupleDiariesServer, ctx context.Context, r *PingRequest) (any, error) { return s.Ping(ctx, r) }),
		unary("SignUp", func(s CoupleDiariesServer, ctx context.Context, r *SignUpRequest) (any, error) {
			return s.SignUp(ctx, r)
		}),
		unary("SignIn", func(s CoupleDiariesServer, ctx context.Context, r *SignInRequest) (any, error) {
			return s.SignIn(ctx, r)
		}),
		unary("SignOut", func(s CoupleDiariesServer, ctx context.Context, r *SignOutRequest) (any, error) {
			return s.SignOut(ctx, r)
		}),
		unary("RefreshToken", func(s CoupleDiariesServer, ctx context.Context, r *RefreshTokenRequest) (any, error) {
			return s.RefreshToken(ctx, r)
		}),
		unary("SendVerificationEmail", func(s CoupleDiariesServer, ctx context.Context, r *SendVerificationEmailRequest) (any, error) {
			return s.SendVerificationEmail(ctx, r)
		}),
		unary("VerifyEmail", func(s CoupleDiariesServer, ctx context.Context, r *VerifyEmailRequest) (any, error) {
			return s.VerifyEmail(ctx, r)
		}),
		unary("ReloadSession", func(s CoupleDiariesServer, ctx context.Context, r *ReloadSessionRequest) (any, error) {
			return s.ReloadSession(ctx, r)
		}),
		unary("GetProfile", func(s CoupleDiariesServer, ctx context.Context, r *GetProfileRequest) (any, error) {
			return s.GetProfile(ctx, r)
		}),
		unary("MergeProfile", func(s CoupleDiariesServer, ctx context.Context, r *MergeProfileRequest) (any, error) {
			return s.MergeProfile(ctx, r)
		}),
		unary("ReadProfileFields", func(s CoupleDiariesServer, ctx context.Context, r *ReadProfileFieldsRequest) (any, error) {
			return s.ReadProfileFields(ctx, r)
		}),
		unary("CompleteSetup", func(s CoupleDiariesServer, ctx context.Context, r *CompleteSetupRequest) (any, error) {
			return s.CompleteSetup(ctx, r)
		}),
		unary("GetSetupStatus", func(s CoupleDiariesServer, ctx context.Context, r *GetSetupStatusRequest) (any, error) {
			return s.GetSetupStatus(ctx, r)
		}),
		unary("GetProfileImageUploadURL", func(s CoupleDiariesServer, ctx context.Context, r *GetProfileImageUploadURLRequest) (any, error) {
			return s.GetProfileImageUploadURL(ctx, r)
		}),
		unary("ConfirmProfileImage", func(s CoupleDiariesServer, ctx context.Context, r *ConfirmProfileImageRequest) (any, error) {
			return s.ConfirmProfileImage(ctx, r)
		}),
		unary("CreateCard", func(s CoupleDiariesServer, ctx context.Context, r *CreateCardRequest) (any, error) {
			return s.CreateCard(ctx, r)
		}),
		unary("ListCards", func(s CoupleDiariesServer, ctx context.Context, r *ListCardsRequest) (any, error) {
			return s.ListCards(ctx, r)
		}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "couplediaries/v1/couplediaries.proto",
}
