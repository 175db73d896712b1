package bindgen

import (
	"regexp"
	"sort"

	"github.com/ethereum/go-ethereum/log"
)

// inheritRegexp matches "contract Child is Parent". Only the first listed
// parent is captured and comments are not recognized.
var inheritRegexp = regexp.MustCompile(`contract\s+(\w+)\s+is\s+(\w+)`)

// ResolveInheritance scans Solidity sources, keyed by file path, and maps each
// capitalized contract name to its capitalized first parent. Files are
// scanned in path order; when a contract is declared twice with different
// parents the first declaration wins.
func ResolveInheritance(sources map[string]string) map[string]string {
	files := make([]string, 0, len(sources))
	for file := range sources {
		files = append(files, file)
	}
	sort.Strings(files)

	parents := make(map[string]string)
	for _, file := range files {
		for _, m := range inheritRegexp.FindAllStringSubmatch(sources[file], -1) {
			child, parent := capitalize(m[1]), capitalize(m[2])
			if prev, ok := parents[child]; ok {
				if prev != parent {
					log.Warn("Conflicting parents, keeping the first", "contract", child, "kept", prev, "ignored", parent, "file", file)
				}
				continue
			}
			parents[child] = parent
		}
	}
	return parents
}
