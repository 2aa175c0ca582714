package scaffold

import (
	"context"
	_ "embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/barkeep/pkg/errors"
	"github.com/arthur-debert/barkeep/pkg/logging"
	"github.com/arthur-debert/barkeep/pkg/paths"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
)

//go:embed templates/config.yaml
var configTemplate []byte

//go:embed templates/styles.css
var stylesTemplate []byte

// File is one file written by Init.
type File struct {
	Path    string
	Content []byte
}

// Files returns the starter files for dir.
func Files(dir string) []File {
	return []File{
		{Path: filepath.Join(dir, paths.ConfigFileName), Content: configTemplate},
		{Path: filepath.Join(dir, paths.StylesFileName), Content: stylesTemplate},
	}
}

// ConfigTemplate returns the starter configuration.
func ConfigTemplate() []byte {
	return append([]byte(nil), configTemplate...)
}

// Init writes a starter config.yaml and styles.css into dir, creating it when
// missing. Existing files are kept unless force is set. It returns the paths
// written.
func Init(ctx context.Context, dir string, force bool) ([]string, error) {
	logger := logging.GetLogger("scaffold")
	done := logging.LogOperationStart(logger, "init")
	defer done()

	if dir == "" {
		dir = paths.ConfigDir()
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid directory %q", dir)
	}

	files := Files(dir)
	for _, f := range files {
		if _, err := os.Lstat(f.Path); err != nil {
			continue
		}
		if !force {
			return nil, errors.Newf(errors.ErrAlreadyExists, "%s already exists", f.Path).
				WithDetail("path", f.Path)
		}
		logger.Debug().Str("target", f.Path).Msg("Removing existing file to allow overwrite")
		if err := os.Remove(f.Path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileWrite, "cannot replace %s", f.Path)
		}
	}

	pipeline := synthfs.NewMemPipeline()
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		op, err := createDir(dir)
		if err != nil {
			return nil, err
		}
		if err := pipeline.Add(op); err != nil {
			return nil, errors.Wrap(err, errors.ErrDirCreate, "failed to add operation to pipeline")
		}
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		op, err := writeFile(f)
		if err != nil {
			return nil, err
		}
		if err := pipeline.Add(op); err != nil {
			return nil, errors.Wrap(err, errors.ErrFileWrite, "failed to add operation to pipeline")
		}
		written = append(written, f.Path)
	}

	result := synthfs.NewExecutor().Run(ctx, pipeline, filesystem.NewOSFileSystem("/"))
	if result.GetError() != nil {
		return nil, errors.Wrapf(result.GetError(), errors.ErrFileWrite, "failed to write files into %s", dir)
	}

	logger.Info().Str("dir", dir).Int("files", len(written)).Msg("Wrote starter configuration")
	return written, nil
}

func createDir(dir string) (synthfs.Operation, error) {
	relPath, err := filepath.Rel("/", dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to convert path: %s", dir)
	}
	op := operations.NewCreateDirectoryOperation(core.OperationID(fmt.Sprintf("create-dir-%s", dir)), relPath)
	op.SetItem(&directoryItem{path: relPath, mode: 0755})
	return synthfs.NewOperationsPackageAdapter(op), nil
}

func writeFile(f File) (synthfs.Operation, error) {
	relPath, err := filepath.Rel("/", f.Path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to convert path: %s", f.Path)
	}
	op := operations.NewCreateFileOperation(core.OperationID(fmt.Sprintf("write-file-%s", f.Path)), relPath)
	op.SetItem(&fileItem{path: relPath, content: f.Content, mode: 0644})
	return synthfs.NewOperationsPackageAdapter(op), nil
}

type fileItem struct {
	path    string
	content []byte
	mode    fs.FileMode
}

func (f *fileItem) Path() string       { return f.path }
func (f *fileItem) Type() string       { return "file" }
func (f *fileItem) Content() []byte    { return f.content }
func (f *fileItem) Mode() fs.FileMode  { return f.mode }
func (f *fileItem) IsDir() bool        { return false }
func (f *fileItem) ModTime() time.Time { return time.Now() }
func (f *fileItem) Size() int64        { return int64(len(f.content)) }

type directoryItem struct {
	path string
	mode fs.FileMode
}

func (d *directoryItem) Path() string       { return d.path }
func (d *directoryItem) Type() string       { return "directory" }
func (d *directoryItem) Mode() fs.FileMode  { return d.mode }
func (d *directoryItem) IsDir() bool        { return true }
func (d *directoryItem) ModTime() time.Time { return time.Now() }
func (d *directoryItem) Size() int64        { return 0 }
