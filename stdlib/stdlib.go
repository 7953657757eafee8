// Package stdlib populates the globals scope with the built-in bindings
// every program can rely on, and provides the preloadable modules requested
// with -m.
package stdlib

import (
	"bufio"
	"os"
	"os/user"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/ardnew/runic/scope"
)

// Private singleton cache.
//
//nolint:gochecknoglobals
var (
	libCacheOnce sync.Once
	libCache     map[string]any
)

// makeLibCache returns the lazily-initialized, process-scoped set of
// built-in bindings. Callers must not mutate the returned map.
func makeLibCache() map[string]any {
	libCacheOnce.Do(func() {
		libCache = map[string]any{
			// System information (struct/string values).
			"target":   getTarget(),
			"platform": getPlatform(),
			"hostname": getHostname(),
			"user":     getUsername(),
			"shell":    getShell(),

			// Working directory.
			"cwd": getCwd,
		}
	})

	return libCache
}

// Install binds every built-in name into the given globals scope without
// overwriting existing entries, so configuration-derived bindings of the
// same name take precedence over library defaults.
func Install(globals *scope.Scope) {
	for name, value := range makeLibCache() {
		globals.Default(name, value)
	}
}

// Keys returns the sorted names Install would bind. It feeds the declared
// name set used by strict compilation.
func Keys() []string {
	lib := makeLibCache()

	keys := make([]string, 0, len(lib))
	for name := range lib {
		keys = append(keys, name)
	}

	slices.Sort(keys)

	return keys
}

// ---------------------------------------------------------------------------
// System information helpers
// ---------------------------------------------------------------------------

// target contains string identifiers for a target operating system and
// instruction set architecture.
type target struct {
	OS   string
	Arch string
}

// getTarget returns the host target using GNU GCC/LLVM naming conventions.
func getTarget() target {
	t := getPlatform()

	switch t.Arch {
	case "386":
		t.Arch = "i386"
	case "amd64":
		t.Arch = "x86_64"
	case "arm":
		arm, ok := os.LookupEnv("GOARM")
		if ok {
			arm, _, _ = strings.Cut(arm, ",")
			switch strings.TrimSpace(arm) {
			case "5", "6", "7":
				t.Arch = "armv" + arm
			}
		}
	case "arm64":
		if t.OS != "darwin" {
			t.Arch = "aarch64"
		}
	case "mipsle":
		t.Arch = "mipsel"
	}

	return t
}

// getPlatform returns the host target using Go conventions.
func getPlatform() target {
	var (
		o, a string
		ok   bool
	)

	if o, ok = os.LookupEnv("GOHOSTOS"); !ok {
		if o, ok = os.LookupEnv("GOOS"); !ok {
			o = runtime.GOOS
		}
	}

	if a, ok = os.LookupEnv("GOHOSTARCH"); !ok {
		if a, ok = os.LookupEnv("GOARCH"); !ok {
			a = runtime.GOARCH
		}
	}

	return target{
		OS:   o,
		Arch: a,
	}
}

func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return ""
	}

	return hostname
}

func getUsername() string {
	u, err := user.Current()
	if err != nil {
		return ""
	}

	return u.Username
}

func getShell() string {
	shell, ok := os.LookupEnv("SHELL")
	if ok {
		return shell
	}

	u, err := user.Current()
	if err != nil || u.Username == "" {
		return ""
	}

	f, err := os.Open("/etc/passwd")
	if err != nil {
		return ""
	}

	defer f.Close()

	s := bufio.NewScanner(f)
	for s.Scan() {
		e := strings.Split(s.Text(), ":")
		if len(e) > 6 && e[0] == u.Username {
			return e[6]
		}
	}

	return ""
}

// ---------------------------------------------------------------------------
// Working directory
// ---------------------------------------------------------------------------

func getCwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}

	return cwd
}
