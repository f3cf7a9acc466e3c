package scoop

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/appanvil/pkg/catalog"
)

func TestInstallArgs(t *testing.T) {
	assert.Equal(t, []string{"install", "git"}, InstallArgs(catalog.ScoopMapping{PackageID: "git", Bucket: "main"}))
	assert.Equal(t, []string{"bucket", "add", "extras"}, BucketAddArgs("extras"))
}

func TestBucketSet(t *testing.T) {
	s := NewBucketSet()

	assert.False(t, s.Add("main"))
	assert.False(t, s.Add(""))
	assert.True(t, s.Add("extras"))
	assert.False(t, s.Add("extras"))
	assert.True(t, s.Add("nerd-fonts"))
	assert.False(t, s.Add("Extras"))
	assert.False(t, s.Add("MAIN"))

	assert.Equal(t, []string{"extras", "nerd-fonts"}, s.Buckets())
}

func TestClient_GetManifest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ScoopInstaller/Main/master/bucket/git.json":
			w.Write([]byte(`{"version":"2.45.1","description":"Distributed version control","license":"GPL-2.0-only"}`))
		case "/ScoopInstaller/Extras/master/bucket/vscode.json":
			w.Write([]byte(`{"version":"1.90.0","license":{"identifier":"Freeware","url":"https://code.visualstudio.com/License/"}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(5*time.Second, nil).WithBaseURL(srv.URL)
	ctx := context.Background()

	m, err := c.GetManifest(ctx, "", "git")
	require.NoError(t, err)
	assert.Equal(t, "2.45.1", m.Version)
	assert.Equal(t, "GPL-2.0-only", m.LicenseID())

	m, err = c.GetManifest(ctx, "extras", "vscode")
	require.NoError(t, err)
	assert.Equal(t, "Freeware", m.LicenseID())

	_, err = c.GetManifest(ctx, "main", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.GetManifest(ctx, "someone-elses", "tool")
	assert.ErrorIs(t, err, ErrUnknownBucket)
}
