package proto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestCodec_Registered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, CodecName, c.Name())
}

func TestCodec_PlainMessage(t *testing.T) {
	c := jsonCodec{}
	in := &Card{Id: "1", Mood: "Curious", Photo: "asset:beach"}

	b, err := c.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"mood":"Curious"`)

	out := &Card{}
	require.NoError(t, c.Unmarshal(b, out))
	assert.Equal(t, in, out)
}

func TestCodec_ProtoMessage(t *testing.T) {
	c := jsonCodec{}
	in, err := structpb.NewStruct(map[string]any{"name": "Ann", "age": 30.0, "setupCompleted": true})
	require.NoError(t, err)

	b, err := c.Marshal(in)
	require.NoError(t, err)

	out := &structpb.Struct{}
	require.NoError(t, c.Unmarshal(b, out))
	assert.Equal(t, "Ann", out.Fields["name"].GetStringValue())
	assert.Equal(t, 30.0, out.Fields["age"].GetNumberValue())
	assert.True(t, out.Fields["setupCompleted"].GetBoolValue())
}

func TestFullMethod(t *testing.T) {
	assert.Equal(t, "/couplediaries.v1.CoupleDiaries/Ping", FullMethod("Ping"))
	assert.Len(t, ServiceDesc.Methods, 17)
}
