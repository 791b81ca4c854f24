package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"company-portal/internal/domain"
)

var acmeForm = []string{
	"company_name=Acme Corp",
	"address=1 Main Street",
	"city=Springfield",
	"state=Illinois",
	"country=United States",
	"postal_code=62701",
	"industry=Technology",
}

// pngHeader is enough for content sniffing to report image/png
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func TestProfileCommands_Lifecycle(t *testing.T) {
	env := setupTestEnv(t)
	env.registerAda(t)

	t.Run("should explain how to create a missing profile", func(t *testing.T) {
		output := env.mustRun(t, "profile", "show")
		assert.Contains(t, output, "No company profile yet")
	})

	t.Run("should print null before a profile is saved", func(t *testing.T) {
		assert.Equal(t, "null\n", env.mustRun(t, "profile", "fetch"))
	})

	t.Run("should save the whole form", func(t *testing.T) {
		output := env.mustRun(t, append([]string{"profile", "save"}, acmeForm...)...)
		assert.Contains(t, output, "Company profile saved")
		assert.Contains(t, output, "Acme Corp")
		assert.Contains(t, output, "Profile completion: 70%")
		assert.NotContains(t, output, "Missing required fields")
	})

	t.Run("should set individual fields", func(t *testing.T) {
		output := env.mustRun(t, "profile", "set", "website=https://acme.example", "description=Widgets")
		assert.Equal(t, "Company profile updated (80% complete)\n", output)
	})

	t.Run("should show the stored profile in the next invocation", func(t *testing.T) {
		output := env.mustRun(t, "profile", "show")
		assert.Contains(t, output, "Springfield")
		assert.Contains(t, output, "https://acme.example")
		assert.Contains(t, output, "Profile completion: 80%")
	})

	t.Run("should fetch the profile as JSON", func(t *testing.T) {
		var profile domain.CompanyProfile
		require.NoError(t, json.Unmarshal([]byte(env.mustRun(t, "profile", "fetch")), &profile))
		assert.Equal(t, "Acme Corp", profile.CompanyName)
		assert.Equal(t, "Widgets", profile.Description)
	})

	t.Run("should clear fields left out of a full save", func(t *testing.T) {
		env.mustRun(t, append([]string{"profile", "save"}, acmeForm...)...)
		output := env.mustRun(t, "profile", "show")
		assert.Contains(t, output, "Profile completion: 70%")
		assert.NotContains(t, output, "Widgets")
	})
}

func TestProfileCommands_Validation(t *testing.T) {
	env := setupTestEnv(t)
	env.registerAda(t)

	tests := []struct {
		name        string
		args        []string
		errContains string
	}{
		{
			name:        "should list every missing required field",
			args:        []string{"profile", "save", "company_name=Acme Corp"},
			errContains: "Multiple validation errors occurred",
		},
		{
			name:        "should reject unknown fields",
			args:        []string{"profile", "save", "ceo=Ada"},
			errContains: "expected key=value",
		},
		{
			name:        "should reject a malformed founded date",
			args:        append([]string{"profile", "save", "founded=yesterday"}, acmeForm...),
			errContains: "expected a date",
		},
		{
			name:        "should reject a city with digits",
			args:        []string{"profile", "set", "city=Area 51"},
			errContains: "city has invalid format",
		},
		{
			name:        "should require a field to set",
			args:        []string{"profile", "set"},
			errContains: "usage: portal profile set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}

	t.Run("should not store a rejected form", func(t *testing.T) {
		assert.Contains(t, env.mustRun(t, "profile", "show"), "No company profile yet")
	})
}

func TestProfileCommands_SocialLinks(t *testing.T) {
	env := setupTestEnv(t)
	env.registerAda(t)
	env.mustRun(t, append([]string{"profile", "save"}, acmeForm...)...)

	t.Run("should add links in order", func(t *testing.T) {
		assert.Equal(t, "Added GitHub link (1 total)\n",
			env.mustRun(t, "profile", "link", "add", "GitHub", "https://github.com/acme"))
		assert.Equal(t, "Added LinkedIn link (2 total)\n",
			env.mustRun(t, "profile", "link", "add", "LinkedIn", "https://linkedin.com/company/acme"))

		output := env.mustRun(t, "profile", "show")
		assert.Contains(t, output, "1. GitHub https://github.com/acme")
		assert.Contains(t, output, "2. LinkedIn https://linkedin.com/company/acme")
	})

	t.Run("should reject a link without a parsable URL", func(t *testing.T) {
		_, err := env.run(t, "profile", "link", "add", "Blog", "not a url")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "url has invalid format")
	})

	t.Run("should reject a link number out of range", func(t *testing.T) {
		_, err := env.run(t, "profile", "link", "rm", "5")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "out of range")
	})

	t.Run("should reject a link number that is not a number", func(t *testing.T) {
		_, err := env.run(t, "profile", "link", "rm", "first")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected the link number")
	})

	t.Run("should remove a link by number", func(t *testing.T) {
		assert.Equal(t, "Removed link 1 (1 left)\n", env.mustRun(t, "profile", "link", "rm", "1"))

		output := env.mustRun(t, "profile", "show")
		assert.Contains(t, output, "1. LinkedIn")
		assert.NotContains(t, output, "GitHub")
	})
}

func TestProfileCommands_Upload(t *testing.T) {
	env := setupTestEnv(t)
	env.registerAda(t)
	env.mustRun(t, append([]string{"profile", "save"}, acmeForm...)...)

	t.Run("should upload a logo and raise completion", func(t *testing.T) {
		output := env.mustRun(t, "profile", "upload", "logo", writeFile(t, "logo.png", pngHeader))
		assert.Contains(t, output, "Uploaded logo: file://")

		show := env.mustRun(t, "profile", "show")
		assert.Contains(t, show, "Profile completion: 75%")
		assert.Contains(t, show, "logo-")
	})

	t.Run("should upload a banner without changing completion", func(t *testing.T) {
		env.mustRun(t, "profile", "upload", "banner", writeFile(t, "banner.png", pngHeader))
		assert.Contains(t, env.mustRun(t, "profile", "show"), "Profile completion: 75%")
	})

	t.Run("should reject a file that is not an image", func(t *testing.T) {
		_, err := env.run(t, "profile", "upload", "logo", writeFile(t, "notes.txt", []byte("hello")))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "please select an image file")
	})

	t.Run("should reject an unknown image kind", func(t *testing.T) {
		_, err := env.run(t, "profile", "upload", "avatar", writeFile(t, "a.png", pngHeader))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be logo or banner")
	})

	t.Run("should reject a missing file", func(t *testing.T) {
		_, err := env.run(t, "profile", "upload", "logo", filepath.Join(t.TempDir(), "missing.png"))
		require.Error(t, err)
	})
}

func TestReadImage(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		data        []byte
		contentType string
	}{
		{
			name:        "should sniff png content",
			filename:    "logo.bin",
			data:        pngHeader,
			contentType: "image/png",
		},
		{
			name:        "should fall back to the extension for unsniffable data",
			filename:    "logo.svg",
			data:        []byte("<svg xmlns=\"http://www.w3.org/2000/svg\"></svg>"),
			contentType: "image/svg+xml",
		},
		{
			name:        "should drop media type parameters",
			filename:    "notes.txt",
			data:        []byte("hello"),
			contentType: "text/plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := readImage(writeFile(t, tt.filename, tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.contentType, img.ContentType)
			assert.Equal(t, tt.filename, img.Filename)
			assert.Equal(t, tt.data, img.Data)
		})
	}
}
