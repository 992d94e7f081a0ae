package manifest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sln-manifest/config"
	"sln-manifest/constants"
	"sln-manifest/vcs/repository"
)

var target = config.Manifest{
	Owner:      "DevExpress",
	Repository: "native-mobile",
	Path:       ".teamcity/repos.json",
	Branch:     "dev",
	Message:    "update repositories",
}

func TestPublish(t *testing.T) {
	resolved := repos("xamarin-a")
	resolved[0].Branches = []repository.Branch{branch("master", "sha-a")}
	path := "CS/A.sln"
	resolved[0].Branches[0].Solution = &path

	content, err := Encode(resolved)
	require.NoError(t, err)

	t.Run("skips the write when content is unchanged", func(t *testing.T) {
		host := &fakeHost{file: &repository.FileContent{Path: target.Path, Sha: "blob-1", Content: string(content)}}

		written, err := Publish(context.Background(), host, target, content)
		require.NoError(t, err)

		assert.False(t, written)
		assert.Empty(t, host.updates)
	})

	t.Run("commits changed content over the current blob", func(t *testing.T) {
		host := &fakeHost{file: &repository.FileContent{Path: target.Path, Sha: "blob-1", Content: "[]"}}

		written, err := Publish(context.Background(), host, target, content)
		require.NoError(t, err)

		assert.True(t, written)
		require.Len(t, host.updates, 1)
		assert.Equal(t, update{
			owner:   "DevExpress",
			name:    "native-mobile",
			path:    ".teamcity/repos.json",
			branch:  "dev",
			message: "update repositories",
			content: string(content),
			sha:     "blob-1",
		}, host.updates[0])
	})

	t.Run("tolerates a current manifest that is not a repository list", func(t *testing.T) {
		host := &fakeHost{file: &repository.FileContent{Sha: "blob-1", Content: "not json"}}

		written, err := Publish(context.Background(), host, target, content)
		require.NoError(t, err)

		assert.True(t, written)
		assert.Len(t, host.updates, 1)
	})

	t.Run("dry-run never writes", func(t *testing.T) {
		host := &fakeHost{file: &repository.FileContent{Sha: "blob-1", Content: "[]"}}
		ctx := context.WithValue(context.Background(), constants.DRY_RUN, true)

		written, err := Publish(ctx, host, target, content)
		require.NoError(t, err)

		assert.False(t, written)
		assert.Empty(t, host.updates)
	})

	t.Run("fails when the current manifest cannot be read", func(t *testing.T) {
		host := &fakeHost{}

		_, err := Publish(context.Background(), host, target, content)
		assert.ErrorContains(t, err, "fetching current manifest")
		assert.Empty(t, host.updates)
	})
}

func TestCompare(t *testing.T) {
	solution := func(path string) *string { return &path }

	previous := repos("kept", "changed", "gone")
	previous[1].Branches = []repository.Branch{{Name: "master", Solution: solution("CS/Old.sln")}}

	current := repos("kept", "changed", "new")
	current[1].Branches = []repository.Branch{{Name: "master", Solution: solution("CS/New.sln")}}

	changes := Compare(previous, current)

	assert.Equal(t, []string{"new"}, changes.Added)
	assert.Equal(t, []string{"gone"}, changes.Removed)
	assert.Equal(t, []string{"changed"}, changes.Updated)
	assert.Equal(t, 3, changes.Len())
}

func TestCompareIdentical(t *testing.T) {
	changes := Compare(repos("a", "b"), repos("a", "b"))

	assert.Zero(t, changes.Len())
}
