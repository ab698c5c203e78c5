package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/sci/calc"
	"github.com/ardnew/sci/log"
	"github.com/ardnew/sci/session"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// Settings holds the global flag values every command builds its session
// from.
type Settings struct {
	Logger    log.Logger
	Mode      session.Mode
	Precision int
	Plain     bool
}

type settingsKey struct{}

// WithSettings returns a new context.Context containing s.
func WithSettings(ctx context.Context, s Settings) context.Context {
	return context.WithValue(ctx, settingsKey{}, s)
}

// settingsFrom returns the Settings stored in ctx, or defaults with the
// package-level logger.
func settingsFrom(ctx context.Context) Settings {
	if s, ok := ctx.Value(settingsKey{}).(Settings); ok {
		return s
	}

	return Settings{
		Logger:    log.Default(),
		Mode:      session.DefaultMode,
		Precision: calc.DefaultPrecision,
	}
}

// newSession constructs a session configured from the settings in ctx.
func newSession(ctx context.Context) *session.Session {
	s := settingsFrom(ctx)

	engine := calc.New(
		calc.WithLogger(s.Logger),
		calc.WithPrecision(s.Precision),
	)

	return session.New(
		session.WithEngine(engine),
		session.WithMode(s.Mode),
		session.WithLogger(s.Logger),
	)
}

type sourceFilesKey struct{}

// SourceFiles reads the files named with --source in order, one after
// another. A line break separates consecutive files so the last line of one
// never merges with the first line of the next. Stdin, if named, is read last.
type SourceFiles interface {
	io.Reader
	io.Closer
	// Names returns the resolved paths in read order, with "-" for stdin.
	Names() []string
}

type sourceFiles struct {
	names  []string
	files  []*os.File
	reader io.Reader
}

// Read implements io.Reader.
func (s *sourceFiles) Read(p []byte) (int, error) { return s.reader.Read(p) }

// Names returns the resolved paths in read order.
func (s *sourceFiles) Names() []string { return s.names }

// Close closes every regular file. Stdin is left open.
func (s *sourceFiles) Close() error {
	var first error

	for _, f := range s.files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// WithSourceFiles returns a new context.Context containing a [SourceFiles]
// that reads from the given paths.
//
// Paths are deduplicated by resolving symlinks and comparing device/inode
// pairs. All occurrences of "-" collapse into a single stdin reader placed
// last. Paths that cannot be opened are skipped.
func WithSourceFiles(ctx context.Context, sources []string) context.Context {
	return context.WithValue(ctx, sourceFilesKey{}, openSourceFiles(sources))
}

// openSourceFiles constructs the SourceFiles for sources, or nil when no
// source could be opened.
func openSourceFiles(sources []string) SourceFiles {
	if len(sources) == 0 {
		return nil
	}

	var (
		srcs    sourceFiles
		readers []io.Reader
	)

	seen := make(map[fileKey]struct{})

	stdinInfo, _ := os.Stdin.Stat()
	stdinKey, _ := makeFileKey(stdinInfo)

	for _, src := range sources {
		if src == stdinSource {
			seen[stdinKey] = struct{}{}

			continue
		}

		file, key, ok := openUniqueFile(src, seen)
		if !ok {
			continue
		}

		// Stdin named by path is read last, like "-".
		if key == stdinKey {
			file.Close()

			continue
		}

		if len(readers) > 0 {
			readers = append(readers, strings.NewReader("\n"))
		}

		srcs.names = append(srcs.names, file.Name())
		srcs.files = append(srcs.files, file)
		readers = append(readers, file)
	}

	// Stdin may have been named with "-" or by path; either way it is
	// recorded under stdinKey.
	if _, ok := seen[stdinKey]; ok {
		if len(readers) > 0 {
			readers = append(readers, strings.NewReader("\n"))
		}

		srcs.names = append(srcs.names, stdinSource)
		readers = append(readers, os.Stdin)
	}

	if len(readers) == 0 {
		return nil
	}

	srcs.reader = io.MultiReader(readers...)

	return &srcs
}

// openUniqueFile opens the file at path if it hasn't been seen before.
// It resolves symlinks and uses device/inode to detect duplicates.
func openUniqueFile(
	path string,
	seen map[fileKey]struct{},
) (file *os.File, key fileKey, ok bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, key, false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, key, false
	}

	info, err := os.Stat(resolved)
	if err != nil || info.IsDir() {
		return nil, key, false
	}

	if key, ok = makeFileKey(info); !ok {
		return nil, key, false
	}

	if _, exists := seen[key]; exists {
		return nil, key, false
	}

	seen[key] = struct{}{}

	if file, err = os.Open(resolved); err != nil {
		return nil, key, false
	}

	return file, key, true
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	if info == nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}

// sourceFilesFrom retrieves the SourceFiles stored in ctx by WithSourceFiles.
// Returns nil if none was stored.
func sourceFilesFrom(ctx context.Context) SourceFiles {
	r, _ := ctx.Value(sourceFilesKey{}).(SourceFiles)

	return r
}
