package sheets

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestAuthorizerTokenRoundTrip(t *testing.T) {
	auth := Authorizer{
		ClientID:     "client",
		ClientSecret: "secret",
		TokenPath:    filepath.Join(t.TempDir(), "nested", "token.json"),
	}

	auth.writeToken(&oauth2.Token{
		AccessToken:  "access-123",
		RefreshToken: "refresh-456",
		TokenType:    "Bearer",
	})

	loaded, err := auth.readToken()
	require.NoError(t, err)
	assert.Equal(t, "access-123", loaded.AccessToken)
	assert.Equal(t, "refresh-456", loaded.RefreshToken)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(auth.TokenPath)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}
}

func TestAuthorizerTokenUsesValidCache(t *testing.T) {
	auth := Authorizer{TokenPath: filepath.Join(t.TempDir(), "token.json")}

	// A token without an expiry never goes stale, so Token must return it
	// without refreshing or reauthorizing.
	auth.writeToken(&oauth2.Token{AccessToken: "cached", TokenType: "Bearer"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	token, err := auth.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "cached", token.AccessToken)
}

func TestAuthorizerReadTokenMissingFile(t *testing.T) {
	auth := Authorizer{TokenPath: filepath.Join(t.TempDir(), "absent.json")}

	_, err := auth.readToken()
	require.Error(t, err)
}

func TestAuthorizerReadTokenRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	auth := Authorizer{TokenPath: path}
	_, err := auth.readToken()
	require.Error(t, err)
}

func TestAuthorizerEmptyPathNeverCaches(t *testing.T) {
	auth := Authorizer{}

	auth.writeToken(&oauth2.Token{AccessToken: "x"})

	_, err := auth.readToken()
	assert.ErrorIs(t, err, os.ErrNotExist)
}
