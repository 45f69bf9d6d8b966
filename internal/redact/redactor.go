package redact

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Options configures one redaction run.
type Options struct {
	Dir    string
	Secret string
	Filter Filter
	DryRun bool
}

// FileResult describes what happened to one matched file.
type FileResult struct {
	Name         string `json:"name"`
	Replacements int    `json:"replacements"`
	SizeBefore   int64  `json:"sizeBefore"`
	SizeAfter    int64  `json:"sizeAfter"`
	Changed      bool   `json:"changed"`
}

// Report summarizes a redaction run.
type Report struct {
	Dir          string       `json:"dir"`
	Filter       string       `json:"filter"`
	DryRun       bool         `json:"dryRun"`
	Scanned      int          `json:"scanned"`
	Matched      int          `json:"matched"`
	Modified     int          `json:"modified"`
	Replacements int          `json:"replacements"`
	BytesDelta   int64        `json:"bytesDelta"`
	Files        []FileResult `json:"files"`
}

// preservedModeBits are carried over to a rewritten file. Ownership is not.
const preservedModeBits = fs.ModePerm | fs.ModeSetuid | fs.ModeSetgid | fs.ModeSticky

// maxSymlinkHops bounds symlink resolution, matching the Linux limit.
const maxSymlinkHops = 40

// Redactor rewrites matching files in a directory.
type Redactor struct {
	fsys afero.Fs
	log  logrus.FieldLogger
}

// New creates a Redactor. A nil fs uses the OS filesystem and a nil log uses
// the logrus standard logger.
func New(fsys afero.Fs, log logrus.FieldLogger) *Redactor {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Redactor{fsys: fsys, log: log}
}

// Run redacts opts.Secret from every file in opts.Dir accepted by
// opts.Filter. Files are processed one at a time in lexical order and the run
// stops at the first failure. Zero matches is not an error.
func (r *Redactor) Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Secret == "" {
		return nil, &ConfigError{Field: "secret", Message: "secret must not be empty"}
	}
	if opts.Filter == nil {
		return nil, &ConfigError{Field: "filter", Message: "no filter configured"}
	}

	entries, err := r.listDir(opts.Dir)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Dir:    opts.Dir,
		Filter: opts.Filter.String(),
		DryRun: opts.DryRun,
		Files:  []FileResult{},
	}
	secret := []byte(opts.Secret)

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() {
			continue
		}
		report.Scanned++
		if !opts.Filter.Match(entry.Name()) {
			r.log.WithField("file", entry.Name()).Debug("skipped: filter did not match")
			continue
		}

		target, info, err := r.resolve(filepath.Join(opts.Dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			r.log.WithField("file", entry.Name()).Debug("skipped: link to a directory")
			continue
		}
		report.Matched++

		res, err := r.redactFile(target, info.Mode()&preservedModeBits, secret, opts.DryRun)
		if err != nil {
			return nil, err
		}
		res.Name = entry.Name()
		report.Files = append(report.Files, res)
		report.Replacements += res.Replacements
		report.BytesDelta += res.SizeAfter - res.SizeBefore
		if res.Changed {
			report.Modified++
		}

		r.log.WithFields(logrus.Fields{
			"file":         res.Name,
			"replacements": res.Replacements,
			"delta":        res.SizeAfter - res.SizeBefore,
			"dryRun":       opts.DryRun,
		}).Info("processed")
	}

	return report, nil
}

func (r *Redactor) listDir(dir string) ([]fs.FileInfo, error) {
	info, err := r.fsys.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: dir, Err: err}
		}
		return nil, &IOError{Op: "stat", Path: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &NotFoundError{Path: dir, Err: errors.New("not a directory")}
	}
	entries, err := afero.ReadDir(r.fsys, dir)
	if err != nil {
		return nil, &IOError{Op: "read directory", Path: dir, Err: err}
	}
	return entries, nil
}

// resolve follows symlinks from path to the file that actually holds the
// content, so the rewrite replaces the target and leaves the link in place.
// Filesystems without symlink support resolve to path itself.
func (r *Redactor) resolve(path string) (string, fs.FileInfo, error) {
	lstater, canLstat := r.fsys.(afero.Lstater)
	reader, canReadlink := r.fsys.(afero.LinkReader)

	for hops := 0; canLstat && canReadlink; hops++ {
		if hops > maxSymlinkHops {
			return "", nil, &IOError{Op: "resolve", Path: path, Err: errors.New("too many levels of symbolic links")}
		}
		info, _, err := lstater.LstatIfPossible(path)
		if err != nil {
			return "", nil, &IOError{Op: "lstat", Path: path, Err: err}
		}
		if info.Mode()&fs.ModeSymlink == 0 {
			break
		}
		link, err := reader.ReadlinkIfPossible(path)
		if err != nil {
			return "", nil, &IOError{Op: "readlink", Path: path, Err: err}
		}
		if !filepath.IsAbs(link) {
			link = filepath.Join(filepath.Dir(path), link)
		}
		path = link
	}

	info, err := r.fsys.Stat(path)
	if err != nil {
		return "", nil, &IOError{Op: "stat", Path: path, Err: err}
	}
	return path, info, nil
}

func (r *Redactor) redactFile(path string, perm fs.FileMode, secret []byte, dryRun bool) (FileResult, error) {
	data, err := afero.ReadFile(r.fsys, path)
	if err != nil {
		return FileResult{}, &IOError{Op: "read", Path: path, Err: err}
	}

	out, n := Bytes(data, secret)
	res := FileResult{
		Replacements: n,
		SizeBefore:   int64(len(data)),
		SizeAfter:    int64(len(out)),
	}
	// A secret equal to the placeholder leaves the content unchanged.
	if n == 0 || dryRun || bytes.Equal(secret, placeholder) {
		return res, nil
	}

	if err := writeFileAtomic(r.fsys, path, out, perm); err != nil {
		return FileResult{}, &IOError{Op: "write", Path: path, Err: err}
	}
	res.Changed = true
	return res, nil
}
