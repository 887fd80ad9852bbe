package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/zeebo/blake3"

	"github.com/sirlanci/FuncSelector/internal/config"
	"github.com/sirlanci/FuncSelector/internal/discover"
)

// cacheHeader starts the first line of a cache file; the rest of the line is
// the key the cached output was produced under.
const cacheHeader = "# funcselector cache "

// cacheKey digests everything that selects or shapes the summary output: the
// analyzed root and its file set, the options and the configuration. File
// contents are covered by the mtime check in readCache.
func cacheKey(cfg *config.Config, f summaryFlags, root string, files []discover.FileEntry) (string, error) {
	h := blake3.New()
	_, _ = fmt.Fprintf(h, "%s\n%s\n%d\n%t\n", version, f.format, f.top, f.noTests)
	_, _ = fmt.Fprintf(h, "%s\n%d\n", root, len(files))
	paths := make([]string, len(files))
	for i, e := range files {
		paths[i] = filepath.ToSlash(e.Path)
	}
	sort.Strings(paths)
	for _, p := range paths {
		_, _ = fmt.Fprintf(h, "%s\x00", p)
	}
	if err := toml.NewEncoder(h).Encode(cfg); err != nil {
		return "", fmt.Errorf("hashing configuration: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// readCache returns the cached output when the cache was written under key
// and no input file has been modified since.
func readCache(cachePath, key, root string, files []discover.FileEntry) (string, bool) {
	if !cacheIsFresh(cachePath, root, files) {
		return "", false
	}
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return "", false
	}
	header, body, ok := strings.Cut(string(data), "\n")
	if !ok || header != cacheHeader+key {
		return "", false
	}
	return body, true
}

func writeCache(cachePath, key, output string) error {
	return os.WriteFile(cachePath, []byte(cacheHeader+key+"\n"+output), 0o644)
}

func cacheIsFresh(cachePath, root string, files []discover.FileEntry) bool {
	cacheInfo, err := os.Stat(cachePath)
	if err != nil {
		return false
	}
	cacheMtime := cacheInfo.ModTime()

	for _, f := range files {
		fi, err := os.Stat(filepath.Join(root, f.Path))
		if err != nil {
			return false
		}
		if !fi.ModTime().Before(cacheMtime) {
			return false
		}
	}
	return true
}
