package search

import (
	"strings"

	apperrors "github.com/quantumpixelator/firstissue/pkg/errors"
)

// RepoKey identifies a repository by owner and name.
//
// Keys are compared case-folded: GitHub treats "OctoCat/Hello-World" and
// "octocat/hello-world" as the same repository, and the casing in
// repository_url is not guaranteed to be consistent across records.
// Owner and Name keep the first-seen casing for display.
type RepoKey struct {
	Owner string
	Name  string
}

// String returns the display form "owner/name".
func (k RepoKey) String() string { return k.Owner + "/" + k.Name }

// fold returns the aggregation key. ASCII case-folding is sufficient:
// GitHub restricts owner and repository names to ASCII.
func (k RepoKey) fold() string {
	return strings.ToLower(k.Owner) + "/" + strings.ToLower(k.Name)
}

// HTMLURL returns the repository's web URL.
func (k RepoKey) HTMLURL() string { return "https://github.com/" + k.String() }

// ParseRepoRef derives a repository identity from the repository_url field
// of a search result (".../repos/{owner}/{repo}" or equivalent). The last
// two path segments are the owner and name.
//
// Search responses omit the nested repository object, so this parse is the
// only way to recover the identity. A missing or malformed URL returns a
// MALFORMED_RECORD error; callers skip the record and continue.
func ParseRepoRef(repositoryURL string) (RepoKey, error) {
	trimmed := strings.Trim(strings.TrimSpace(repositoryURL), "/")
	if trimmed == "" {
		return RepoKey{}, apperrors.New(apperrors.ErrCodeMalformedRecord, "empty repository_url")
	}

	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 {
		return RepoKey{}, apperrors.New(apperrors.ErrCodeMalformedRecord,
			"repository_url %q has no owner/name segments", repositoryURL)
	}

	owner, name := parts[len(parts)-2], parts[len(parts)-1]
	if owner == "" || name == "" {
		return RepoKey{}, apperrors.New(apperrors.ErrCodeMalformedRecord,
			"repository_url %q has empty owner or name", repositoryURL)
	}

	return RepoKey{Owner: owner, Name: name}, nil
}
