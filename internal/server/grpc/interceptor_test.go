package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/couplediaries/couplediaries/internal/common"
	"github.com/couplediaries/couplediaries/internal/logging"
	pb "github.com/couplediaries/couplediaries/internal/proto"
	"github.com/couplediaries/couplediaries/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func newTestServer(secret string) *GRPCServer {
	return NewGRPCServer("", logging.Nop(), &fakeUsers{}, &fakeProfiles{}, &fakeCards{}, secret)
}

func withToken(token string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.New(map[string]string{
		common.AccessTokenHeaderName: token,
	}))
}

func TestInterceptor_PublicMethodsSkipToken(t *testing.T) {
	s := newTestServer("secret")

	for _, m := range []string{"Ping", "SignUp", "SignIn", "SignOut", "RefreshToken", "VerifyEmail"} {
		t.Run(m, func(t *testing.T) {
			called := false
			h := func(ctx context.Context, req any) (any, error) {
				called = true
				return "ok", nil
			}

			resp, err := s.accessTokenInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: pb.FullMethod(m)}, h)
			require.NoError(t, err)
			assert.True(t, called)
			assert.Equal(t, "ok", resp)
		})
	}
}

func TestInterceptor_MissingToken(t *testing.T) {
	s := newTestServer("secret")

	h := func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called when token missing")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: pb.FullMethod("GetProfile")}, h)
	require.Error(t, err)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, "missing token", status.Convert(err).Message())
}

func TestInterceptor_InvalidToken(t *testing.T) {
	s := newTestServer("secret")

	h := func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called with invalid token")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(withToken("not-a-valid-jwt"), nil, &grpc.UnaryServerInfo{FullMethod: pb.FullMethod("ListCards")}, h)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, "invalid token", status.Convert(err).Message())
}

func TestInterceptor_WrongSecret(t *testing.T) {
	s := newTestServer("secret")
	token, err := auth.GenerateToken("u1", []byte("other"), time.Minute)
	require.NoError(t, err)

	_, err = s.accessTokenInterceptor(withToken(token), nil, &grpc.UnaryServerInfo{FullMethod: pb.FullMethod("ListCards")},
		func(ctx context.Context, req any) (any, error) { return nil, nil })
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestInterceptor_ExpiredToken(t *testing.T) {
	s := newTestServer("secret")
	token, err := auth.GenerateToken("u1", []byte("secret"), -time.Minute)
	require.NoError(t, err)

	_, err = s.accessTokenInterceptor(withToken(token), nil, &grpc.UnaryServerInfo{FullMethod: pb.FullMethod("ListCards")},
		func(ctx context.Context, req any) (any, error) { return nil, nil })
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, common.ErrTokenExpired.Error(), status.Convert(err).Message())
}

func TestInterceptor_ValidTokenPutsUserID(t *testing.T) {
	s := newTestServer("secret")
	token, err := auth.GenerateToken("user-42", []byte("secret"), time.Minute)
	require.NoError(t, err)

	var got string
	h := func(ctx context.Context, req any) (any, error) {
		got, err = userIDFromContext(ctx)
		return nil, err
	}

	_, err = s.accessTokenInterceptor(withToken(token), nil, &grpc.UnaryServerInfo{FullMethod: pb.FullMethod("GetProfile")}, h)
	require.NoError(t, err)
	assert.Equal(t, "user-42", got)
}

func TestUserIDFromContext_Missing(t *testing.T) {
	_, err := userIDFromContext(context.Background())
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}
