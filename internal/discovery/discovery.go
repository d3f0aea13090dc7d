// Package discovery expands file patterns from the configuration into
// concrete paths.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// globMeta lists the characters that turn a pattern into a glob.
const globMeta = "*?[{"

// NoMatchError is returned when a literal pattern names no file.
type NoMatchError struct {
	Pattern string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("pattern %q matched no files", e.Pattern)
}

// IsNoMatch returns true if the error is a NoMatchError.
func IsNoMatch(err error) bool {
	var nm *NoMatchError
	return errors.As(err, &nm)
}

// IsGlob reports whether pattern contains glob syntax.
func IsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, globMeta)
}

// Expand resolves patterns to file paths using slash separated, root relative
// paths. Literal patterns must name an existing file. Glob patterns support
// "**" across directories; a glob without matches expands to nothing and is
// logged as a warning. Patterns are expanded concurrently; the result keeps
// pattern order, lists each pattern's matches in lexical order and drops
// duplicates. A nil logger discards the warnings.
func Expand(ctx context.Context, fsys afero.Fs, patterns []string, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	results := make([][]string, len(patterns))

	g, ctx := errgroup.WithContext(ctx)
	for i, pattern := range patterns {
		g.Go(func() error {
			matches, err := expandOne(ctx, fsys, pattern)
			if err != nil {
				return err
			}
			results[i] = matches
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var paths []string
	for i, matches := range results {
		if len(matches) == 0 {
			logger.Warn("pattern matched no files", slog.String("pattern", patterns[i]))
			continue
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			paths = append(paths, m)
		}
	}
	return paths, nil
}

func expandOne(ctx context.Context, fsys afero.Fs, pattern string) ([]string, error) {
	pattern = path.Clean(strings.TrimPrefix(pattern, "./"))

	if !IsGlob(pattern) {
		info, err := fsys.Stat(pattern)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, &NoMatchError{Pattern: pattern}
			}
			return nil, fmt.Errorf("checking %s: %w", pattern, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory", pattern)
		}
		return []string{pattern}, nil
	}

	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	base := staticPrefix(pattern)
	var matches []string
	err = afero.Walk(fsys, base, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if info.IsDir() {
			return nil
		}
		rel := strings.TrimPrefix(path.Clean(filepath.ToSlash(p)), "./")
		if g.Match(rel) {
			matches = append(matches, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("expanding %q: %w", pattern, err)
	}
	return matches, nil
}

// staticPrefix returns the directory part of pattern before the first glob
// segment, or "." when the pattern starts with one.
func staticPrefix(pattern string) string {
	segments := strings.Split(pattern, "/")
	var static []string
	for _, s := range segments[:len(segments)-1] {
		if IsGlob(s) {
			break
		}
		static = append(static, s)
	}
	if len(static) == 0 {
		return "."
	}
	return strings.Join(static, "/")
}
