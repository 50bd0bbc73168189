package lib

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ExpandPatterns globs each pattern and returns the matching files, sorted
// and without duplicates. A "**" segment matches recursively. Exclusions:
//   - "!path/*"     – exclude files directly under that directory
//   - "!path/***"   – exclude everything under that directory
//   - "!path"       – exclude that exact file
func ExpandPatterns(patterns ...string) ([]string, error) {
	pm, err := NewPatternMatcher(patterns...)
	if err != nil {
		return nil, err
	}

	var results []string
	for _, inc := range pm.includes {
		if !strings.Contains(inc, "**") {
			matches, err := filepath.Glob(inc)
			if err != nil {
				return nil, err
			}
			for _, m := range matches {
				if ok, err := pm.Matches(m); err == nil && ok {
					results = append(results, m)
				}
			}
			continue
		}

		root := filepath.Clean(strings.SplitN(inc, "**", 2)[0])
		err := filepath.WalkDir(root, func(fp string, d fs.DirEntry, err error) error {
			if err != nil {
				if os.IsNotExist(err) {
					return nil
				}
				return err
			}
			// skip whole subtree if this dir is recursive-excluded
			if d.IsDir() {
				if slices.Contains(pm.exclRecursive, fp) {
					return filepath.SkipDir
				}
				return nil
			}
			ok, err := pm.Matches(fp)
			if err != nil {
				return err
			}
			if ok {
				results = append(results, fp)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	slices.Sort(results)
	return slices.Compact(results), nil
}

// PatternMatcher holds include/exclude rules for files.
type PatternMatcher struct {
	includes      []string
	exclFiles     []string
	exclDirFiles  []string
	exclRecursive []string
}

// NewPatternMatcher parses the patterns (with ~ expansion) into a matcher.
func NewPatternMatcher(patterns ...string) (*PatternMatcher, error) {
	pm := new(PatternMatcher)
	sep := string(filepath.Separator)

	for _, pat := range patterns {
		isExclude := strings.HasPrefix(pat, "!")
		p := strings.TrimPrefix(pat, "!")

		// expand ~/ to homedir
		if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, "~"+sep) {
			homedir, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("cannot get home dir: %w", err)
			}
			p = filepath.Join(homedir, p[2:])
		}
		p = filepath.Clean(p)

		if !isExclude {
			pm.includes = append(pm.includes, p)
			continue
		}
		switch {
		case strings.HasSuffix(p, sep+"***"):
			pm.exclRecursive = append(pm.exclRecursive, strings.TrimSuffix(p, sep+"***"))
		case strings.HasSuffix(p, sep+"*"):
			pm.exclDirFiles = append(pm.exclDirFiles, strings.TrimSuffix(p, sep+"*"))
		default:
			pm.exclFiles = append(pm.exclFiles, p)
		}
	}

	return pm, nil
}

// Matches reports whether a file passes the includes and excludes.
func (pm *PatternMatcher) Matches(path string) (bool, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if fi.IsDir() {
		return false, nil
	}

	path = filepath.Clean(path)
	if slices.Contains(pm.exclFiles, path) || slices.Contains(pm.exclDirFiles, filepath.Dir(path)) {
		return false, nil
	}
	for _, d := range pm.exclRecursive {
		if strings.HasPrefix(path, d+string(filepath.Separator)) {
			return false, nil
		}
	}

	for _, inc := range pm.includes {
		if strings.Contains(inc, "**") {
			parts := strings.SplitN(inc, "**", 2)
			root := filepath.Clean(parts[0])
			suffix := strings.TrimLeft(parts[1], `\/`)
			if suffix == "" {
				suffix = "*"
			}
			if strings.HasPrefix(path, root+string(filepath.Separator)) {
				if match, _ := filepath.Match(suffix, filepath.Base(path)); match {
					return true, nil
				}
			}
		} else if match, _ := filepath.Match(inc, path); match {
			return true, nil
		}
	}

	return false, nil
}
