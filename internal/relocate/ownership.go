package relocate

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"

	"mvvid/internal/services"
)

// Owner is a resolved uid/gid pair. A UID of -1 leaves the owner unchanged.
type Owner struct {
	UID int
	GID int
}

// ChownFunc changes ownership of a single path without following symlinks.
type ChownFunc func(path string, uid, gid int) error

// ResolveOwner looks up the numeric ids for userName and groupName. When the
// process is not privileged only the group can be handed over, so the UID is
// set to -1.
func ResolveOwner(userName, groupName string, privileged bool) (Owner, error) {
	owner := Owner{UID: -1}

	grp, err := user.LookupGroup(groupName)
	if err != nil {
		return Owner{}, services.Wrap(services.ErrConfiguration, "ownership", "lookup group", groupName, err)
	}
	if owner.GID, err = strconv.Atoi(grp.Gid); err != nil {
		return Owner{}, services.Wrap(services.ErrConfiguration, "ownership", "parse gid", grp.Gid, err)
	}

	if !privileged {
		return owner, nil
	}
	usr, err := user.Lookup(userName)
	if err != nil {
		return Owner{}, services.Wrap(services.ErrConfiguration, "ownership", "lookup user", userName, err)
	}
	if owner.UID, err = strconv.Atoi(usr.Uid); err != nil {
		return Owner{}, services.Wrap(services.ErrConfiguration, "ownership", "parse uid", usr.Uid, err)
	}
	return owner, nil
}

// FixOwnership applies owner to path and, when path is a directory, to each
// of its immediate children. Grandchildren are left alone. It returns the
// paths it changed.
func FixOwnership(path string, owner Owner, chown ChownFunc) ([]string, error) {
	if chown == nil {
		chown = os.Lchown
	}
	info, err := os.Lstat(path)
	if err != nil {
		return nil, services.Wrap(services.ErrFilesystem, "ownership", "stat", path, err)
	}

	targets := []string{path}
	if info.IsDir() {
		children, err := os.ReadDir(path)
		if err != nil {
			return nil, services.Wrap(services.ErrFilesystem, "ownership", "list", path, err)
		}
		for _, child := range children {
			targets = append(targets, filepath.Join(path, child.Name()))
		}
	}

	for i, target := range targets {
		if err := chown(target, owner.UID, owner.GID); err != nil {
			return targets[:i], services.Wrap(
				services.ErrFilesystem,
				"ownership",
				"chown",
				fmt.Sprintf("%s to %d:%d", target, owner.UID, owner.GID),
				err,
			)
		}
	}
	return targets, nil
}
