package stdlib

// Preloadable modules requested with -m. Each module is a map of functions
// installed into globals under the module name before execution. Requesting
// the same module twice reinstalls the same bindings, preserving the
// duplicate in the request order.

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/ardnew/mung"
	"github.com/goccy/go-yaml"
	jsoniter "github.com/json-iterator/go"
)

//nolint:gochecknoglobals
var json = jsoniter.ConfigCompatibleWithStandardLibrary

//nolint:gochecknoglobals
var modules = map[string]func() map[string]any{
	"file":  fileModule,
	"path":  pathModule,
	"mung":  mungModule,
	"codec": codecModule,
}

// Module returns the bindings for a preloadable module by name.
func Module(name string) (map[string]any, bool) {
	mod, ok := modules[name]
	if !ok {
		return nil, false
	}

	return mod(), true
}

// Modules returns the sorted names of every preloadable module.
func Modules() []string {
	names := make([]string, 0, len(modules))
	for name := range modules {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// ---------------------------------------------------------------------------
// Filesystem predicates
// ---------------------------------------------------------------------------

func fileModule() map[string]any {
	return map[string]any{
		"exists":    fileExists,
		"isDir":     fileIsDir,
		"isRegular": fileIsRegular,
		"isSymlink": fileIsSymlink,
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)

	return !os.IsNotExist(err)
}

func fileIsDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return info.IsDir()
}

func fileIsRegular(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return info.Mode().IsRegular()
}

func fileIsSymlink(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeSymlink != 0
}

// ---------------------------------------------------------------------------
// Path manipulation
// ---------------------------------------------------------------------------

func pathModule() map[string]any {
	return map[string]any{
		"abs": pathAbs,
		"cat": pathCat,
		"rel": pathRel,
	}
}

func pathAbs(path string) string {
	p, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	return p
}

func pathCat(elem ...string) string {
	return filepath.Join(elem...)
}

func pathRel(from, to string) string {
	p, err := filepath.Rel(pathAbs(from), pathAbs(to))
	if err != nil {
		return pathCat(from, to)
	}

	return p
}

// ---------------------------------------------------------------------------
// PATH-like string manipulation (mung)
// ---------------------------------------------------------------------------

func mungModule() map[string]any {
	return map[string]any{
		"prefix":   mungPrefix,
		"prefixif": mungPrefixIf,
	}
}

func mungPrefix(subject string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(subject),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String()
}

func mungPrefixIf(
	subject string,
	predicate func(string) bool,
	prefix ...string,
) string {
	return mung.Make(
		mung.WithSubjectItems(subject),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(predicate),
	).String()
}

// ---------------------------------------------------------------------------
// Structured data codecs
// ---------------------------------------------------------------------------

func codecModule() map[string]any {
	return map[string]any{
		"json": map[string]any{
			"encode": jsonEncode,
			"decode": jsonDecode,
		},
		"yaml": map[string]any{
			"encode": yamlEncode,
			"decode": yamlDecode,
		},
	}
}

func jsonEncode(v any) (string, error) {
	return json.MarshalToString(v)
}

func jsonDecode(s string) (any, error) {
	var v any

	err := json.UnmarshalFromString(s, &v)
	if err != nil {
		return nil, err
	}

	return v, nil
}

func yamlEncode(v any) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func yamlDecode(s string) (any, error) {
	var v any

	err := yaml.Unmarshal([]byte(s), &v)
	if err != nil {
		return nil, err
	}

	return v, nil
}
