// Package alphaflags turns off feature flags kept in a TOML table.
package alphaflags

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
)

// DefaultTable is the table holding alpha feature flags.
const DefaultTable = "alpha_flags"

var (
	tableHeader = regexp.MustCompile(`^\[\[?\s*([^\]]+?)\s*\]\]?\s*(#.*)?$`)
	enabledFlag = regexp.MustCompile(`^(\s*[A-Za-z0-9_"'.-]+\s*=\s*)true(\s*(#.*)?)$`)
)

// Result describes a Disable run.
type Result struct {
	// Disabled lists the flags switched from true to false, in file order.
	Disabled []string
	// Content is the rewritten file.
	Content string
}

// Flags decodes the flag table of the file at path.
func Flags(fs afero.Fs, path, table string) (map[string]bool, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return decodeTable(string(data), table)
}

// Disable sets every "key = true" line inside table to false. All other
// lines, including comments and formatting, are kept. The rewritten file
// must still be valid TOML; otherwise nothing is written.
func Disable(fs afero.Fs, path, table string, dryRun bool) (*Result, error) {
	if table == "" {
		table = DefaultTable
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	res := rewrite(string(data), table)
	if _, err := decodeTable(res.Content, table); err != nil {
		return nil, fmt.Errorf("%s would no longer be valid: %w", path, err)
	}
	if dryRun || len(res.Disabled) == 0 {
		return res, nil
	}

	info, err := fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := afero.WriteFile(fs, path, []byte(res.Content), info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	return res, nil
}

func rewrite(content, table string) *Result {
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")

	res := &Result{}
	inTable := false
	for i, line := range lines {
		if m := tableHeader.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			inTable = m[1] == table
			continue
		}
		if !inTable {
			continue
		}
		if m := enabledFlag.FindStringSubmatch(line); m != nil {
			lines[i] = m[1] + "false" + m[2]
			key := strings.TrimSpace(strings.SplitN(m[1], "=", 2)[0])
			res.Disabled = append(res.Disabled, strings.Trim(key, `"'`))
		}
	}

	res.Content = strings.Join(lines, "\n") + "\n"
	return res
}

func decodeTable(content, table string) (map[string]bool, error) {
	var doc map[string]any
	if _, err := toml.Decode(content, &doc); err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}

	raw, ok := doc[table]
	if !ok {
		return map[string]bool{}, nil
	}
	entries, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("[%s] is not a table", table)
	}

	flags := make(map[string]bool, len(entries))
	for k, v := range entries {
		if b, ok := v.(bool); ok {
			flags[k] = b
		}
	}
	return flags, nil
}
