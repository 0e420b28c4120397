package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestCodec_Registered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c, "json codec must be registered")
	assert.Equal(t, "json", c.Name())
}

func TestCodec_WireShape(t *testing.T) {
	c := jsonCodec{}

	key := "bioA"
	b, err := c.Marshal(&RegisterRequest{Email: "a@x.com", Password: "p", BiometricKey: &key})
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@x.com","password":"p","biometricKey":"bioA"}`, string(b))

	b, err = c.Marshal(&RegisterRequest{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@x.com","password":"p"}`, string(b))

	var resp AuthResponse
	require.NoError(t, c.Unmarshal([]byte(`{"token":"t","user":{"id":"1","email":"a@x.com","createdAt":"2025-03-01T10:00:00Z","updatedAt":"2025-03-01T10:00:00Z"}}`), &resp))
	assert.Equal(t, "t", resp.Token)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), resp.User.CreatedAt.UTC())
}

func TestServiceDesc(t *testing.T) {
	assert.Equal(t, "/bioauth.v1.AuthService/Login", FullMethod(MethodLogin))

	names := map[string]bool{}
	for _, m := range AuthService_ServiceDesc.Methods {
		names[m.MethodName] = true
	}
	for _, m := range []string{MethodRegister, MethodLogin, MethodBiometricLogin, MethodUpdateBiometricKey, MethodPing} {
		assert.True(t, names[m], m)
	}
}
