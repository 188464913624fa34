package main

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bep/helpers/envhelpers"
	"github.com/rogpeppe/go-internal/testscript"
)

func TestScripts(t *testing.T) {
	params := commonTestScriptsParam
	params.Dir = filepath.Join("testdata", "scripts")
	// params.TestWork = true
	testscript.Run(t, params)
}

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"mvvid": main,
	})
}

// currentOwner returns the user and primary group names of the test process.
// Library entries are handed to them so the scripts run without root.
func currentOwner() (string, string, error) {
	usr, err := user.Current()
	if err != nil {
		return "", "", err
	}
	grp, err := user.LookupGroupId(usr.Gid)
	if err != nil {
		return "", "", err
	}
	return usr.Username, grp.Name, nil
}

func testSetupFunc() func(env *testscript.Env) error {
	return func(env *testscript.Env) error {
		owner, group, err := currentOwner()
		if err != nil {
			return err
		}
		var keyVals []string
		keyVals = append(keyVals, "HOME", env.WorkDir)
		keyVals = append(keyVals, "OWNER", owner)
		keyVals = append(keyVals, "GROUP", group)
		keyVals = append(keyVals, "PLEX_TOKEN", "")
		keyVals = append(keyVals, "JELLYFIN_API_KEY", "")
		envhelpers.SetEnvVars(&env.Vars, keyVals...)
		return nil
	}
}

const scriptConfigTemplate = `[paths]
allowed_source_dirs = ["Videos"]
log_dir = %q

[library]
root = %q

[ownership]
user = %q
group = %q

[plex]
refresh_method = %q
scanner_path = %q
service_user = ""
elevate_command = ""
`

var commonTestScriptsParam = testscript.Params{
	Setup: func(env *testscript.Env) error {
		return testSetupFunc()(env)
	},
	Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
		// mkconfig writes $HOME/.config/mvvid/config.toml pointing the library
		// at $WORK/library and creates both library roots. The optional
		// argument selects the refresh method; the scanner is $WORK/scanner.sh.
		"mkconfig": func(ts *testscript.TestScript, neg bool, args []string) {
			if neg {
				ts.Fatalf("unsupported: ! mkconfig")
			}
			method := "none"
			if len(args) > 0 {
				method = args[0]
			}
			work := ts.Getenv("WORK")
			library := filepath.Join(work, "library")
			for _, dir := range []string{"TV_Shows", "Movies"} {
				if err := os.MkdirAll(filepath.Join(library, dir), 0o775); err != nil {
					ts.Fatalf("create library: %v", err)
				}
			}
			contents := fmt.Sprintf(scriptConfigTemplate,
				filepath.Join(work, "logs"),
				library,
				ts.Getenv("OWNER"),
				ts.Getenv("GROUP"),
				method,
				filepath.Join(work, "scanner.sh"),
			)
			target := filepath.Join(ts.Getenv("HOME"), ".config", "mvvid", "config.toml")
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				ts.Fatalf("create config dir: %v", err)
			}
			if err := os.WriteFile(target, []byte(contents), 0o644); err != nil {
				ts.Fatalf("write config: %v", err)
			}
		},
		// ls prints the sorted names in a directory, one per line.
		"ls": func(ts *testscript.TestScript, neg bool, args []string) {
			if len(args) != 1 {
				ts.Fatalf("usage: ls DIR")
			}
			entries, err := os.ReadDir(ts.MkAbs(args[0]))
			if err != nil {
				ts.Fatalf("%v", err)
			}
			names := make([]string, 0, len(entries))
			for _, entry := range entries {
				names = append(names, entry.Name())
			}
			fmt.Fprintln(ts.Stdout(), strings.Join(names, "\n"))
		},
	},
}
