package preflight

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/user"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"mvvid/internal/config"
	"mvvid/internal/deps"
)

// Identity is the effective identity of the running process.
type Identity struct {
	UID    int
	GID    int
	Groups []int
}

// CurrentIdentity reports the effective uid, gid and supplementary groups.
func CurrentIdentity() Identity {
	id := Identity{UID: os.Geteuid(), GID: os.Getegid()}
	if groups, err := os.Getgroups(); err == nil {
		id.Groups = groups
	}
	return id
}

// Privileged reports whether the identity may chown to arbitrary users.
func (id Identity) Privileged() bool {
	return id.UID == 0
}

func (id Identity) memberOf(gid int) bool {
	return id.GID == gid || slices.Contains(id.Groups, gid)
}

// CheckWorkingDirectory verifies that dir's base name is one of the allowed
// source directory names.
func CheckWorkingDirectory(dir string, allowed []string) Result {
	const name = "Working directory"

	base := filepath.Base(filepath.Clean(dir))
	if slices.Contains(allowed, base) {
		return Result{Name: name, Passed: true, Detail: dir}
	}
	return Result{
		Name:   name,
		Detail: fmt.Sprintf("%s (error: must be run from a directory named %s)", dir, strings.Join(allowed, " or ")),
	}
}

// CheckPrivileges passes for root, or for a member of group that can write to
// every root.
func CheckPrivileges(id Identity, group string, roots []string) Result {
	const name = "Privileges"

	if id.Privileged() {
		return Result{Name: name, Passed: true, Detail: "running as root"}
	}

	grp, err := user.LookupGroup(group)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("must run as root or a member of %q (error: %v)", group, err)}
	}
	gid, err := strconv.Atoi(grp.Gid)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("group %q has non-numeric gid %q", group, grp.Gid)}
	}
	if !id.memberOf(gid) {
		return Result{Name: name, Detail: fmt.Sprintf("must run as root or a member of %q", group)}
	}
	for _, root := range roots {
		if err := unix.Access(root, unix.W_OK|unix.X_OK); err != nil {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: not writable by group %q: %v)", root, group, err)}
		}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("member of %q", group)}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSystemDeps evaluates the binaries the configured refresh method shells
// out to.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	return deps.CheckBinaries(deps.Requirements(cfg))
}

// CheckPlex verifies Plex connectivity and token validity.
func CheckPlex(ctx context.Context, baseURL, token string) Result {
	return checkHTTP(ctx, "Plex", baseURL, "/identity", "X-Plex-Token", token, "token")
}

// CheckJellyfin verifies Jellyfin connectivity and authentication.
func CheckJellyfin(ctx context.Context, baseURL, apiKey string) Result {
	return checkHTTP(ctx, "Jellyfin", baseURL, "/Users", "X-Emby-Token", apiKey, "api key")
}

func checkHTTP(ctx context.Context, name, baseURL, path, header, secret, secretLabel string) Result {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing url"}
	}
	if strings.TrimSpace(secret) == "" {
		return Result{Name: name, Detail: "missing " + secretLabel}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client := &http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, base+path, nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("auth check failed (%v)", err)}
	}
	req.Header.Set(header, strings.TrimSpace(secret))

	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("auth check failed (%v)", err)}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return Result{Name: name, Passed: true, Detail: "Reachable"}
	case http.StatusUnauthorized, http.StatusForbidden:
		return Result{Name: name, Detail: fmt.Sprintf("auth failed (invalid %s)", secretLabel)}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("auth check failed (%d)", resp.StatusCode)}
	}
}
