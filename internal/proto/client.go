package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// CoupleDiariesClient is the client API of the CoupleDiaries service.
type CoupleDiariesClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*Empty, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	SendVerificationEmail(ctx context.Context, in *SendVerificationEmailRequest, opts ...grpc.CallOption) (*Empty, error)
	VerifyEmail(ctx context.Context, in *VerifyEmailRequest, opts ...grpc.CallOption) (*Empty, error)
	ReloadSession(ctx context.Context, in *ReloadSessionRequest, opts ...grpc.CallOption) (*SessionResponse, error)
	GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*Profile, error)
	MergeProfile(ctx context.Context, in *MergeProfileRequest, opts ...grpc.CallOption) (*Profile, error)
	ReadProfileFields(ctx context.Context, in *ReadProfileFieldsRequest, opts ...grpc.CallOption) (*structpb.Struct, error)
	CompleteSetup(ctx context.Context, in *CompleteSetupRequest, opts ...grpc.CallOption) (*Profile, error)
	GetSetupStatus(ctx context.Context, in *GetSetupStatusRequest, opts ...grpc.CallOption) (*SetupStatusResponse, error)
	GetProfileImageUploadURL(ctx context.Context, in *GetProfileImageUploadURLRequest, opts ...grpc.CallOption) (*UploadURLResponse, error)
	ConfirmProfileImage(ctx context.Context, in *ConfirmProfileImageRequest, opts ...grpc.CallOption) (*Profile, error)
	CreateCard(ctx context.Context, in *CreateCardRequest, opts ...grpc.CallOption) (*Card, error)
	ListCards(ctx context.Context, in *ListCardsRequest, opts ...grpc.CallOption) (*ListCardsResponse, error)
}

type coupleDiariesClient struct {
	cc grpc.ClientConnInterface
}

// NewCoupleDiariesClient returns a client using the JSON codec over cc.
func NewCoupleDiariesClient(cc grpc.ClientConnInterface) CoupleDiariesClient {
	return &coupleDiariesClient{cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *coupleDiariesClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, "Ping", in, opts)
}

func (c *coupleDiariesClient) SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, "SignUp", in, opts)
}

func (c *coupleDiariesClient) SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, "SignIn", in, opts)
}

func (c *coupleDiariesClient) SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "SignOut", in, opts)
}

func (c *coupleDiariesClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, "RefreshToken", in, opts)
}

func (c *coupleDiariesClient) SendVerificationEmail(ctx context.Context, in *SendVerificationEmailRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "SendVerificationEmail", in, opts)
}

func (c *coupleDiariesClient) VerifyEmail(ctx context.Context, in *VerifyEmailRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "VerifyEmail", in, opts)
}

func (c *coupleDiariesClient) ReloadSession(ctx context.Context, in *ReloadSessionRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, "ReloadSession", in, opts)
}

func (c *coupleDiariesClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*Profile, error) {
	return invoke[Profile](ctx, c.cc, "GetProfile", in, opts)
}

func (c *coupleDiariesClient) MergeProfile(ctx context.Context, in *MergeProfileRequest, opts ...grpc.CallOption) (*Profile, error) {
	return invoke[Profile](ctx, c.cc, "MergeProfile", in, opts)
}

func (c *coupleDiariesClient) ReadProfileFields(ctx context.Context, in *ReadProfileFieldsRequest, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, "ReadProfileFields", in, opts)
}

func (c *coupleDiariesClient) CompleteSetup(ctx context.Context, in *CompleteSetupRequest, opts ...grpc.CallOption) (*Profile, error) {
	return invoke[Profile](ctx, c.cc, "CompleteSetup", in, opts)
}

func (c *coupleDiariesClient) GetSetupStatus(ctx context.Context, in *GetSetupStatusRequest, opts ...grpc.CallOption) (*SetupStatusResponse, error) {
	return invoke[SetupStatusResponse](ctx, c.cc, "GetSetupStatus", in, opts)
}

func (c *coupleDiariesClient) GetProfileImageUploadURL(ctx context.Context, in *GetProfileImageUploadURLRequest, opts ...grpc.CallOption) (*UploadURLResponse, error) {
	return invoke[UploadURLResponse](ctx, c.cc, "GetProfileImageUploadURL", in, opts)
}

func (c *coupleDiariesClient) ConfirmProfileImage(ctx context.Context, in *ConfirmProfileImageRequest, opts ...grpc.CallOption) (*Profile, error) {
	return invoke[Profile](ctx, c.cc, "ConfirmProfileImage", in, opts)
}

func (c *coupleDiariesClient) CreateCard(ctx context.Context, in *CreateCardRequest, opts ...grpc.CallOption) (*Card, error) {
	return invoke[Card](ctx, c.cc, "CreateCard", in, opts)
}

func (c *coupleDiariesClient) ListCards(ctx context.Context, in *ListCardsRequest, opts ...grpc.CallOption) (*ListCardsResponse, error) {
	return invoke[ListCardsResponse](ctx, c.cc, "ListCards", in, opts)
}
