// Package packager builds the zip archive deployed for a function.
package packager

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fivetwenty-io/faas-client/internal/constants"
	"github.com/klauspost/compress/zip"
)

// Zip writes every regular file below dir to w as a deflated zip archive.
// Paths are relative to dir. The .git directory and existing .zip packages
// are skipped.
func Zip(dir string, w io.Writer) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("packaging %s: %w", dir, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("packaging %s: %w", dir, constants.ErrNotADirectory)
	}

	zipWriter := zip.NewWriter(w)

	err = filepath.WalkDir(dir, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if entry.IsDir() {
			if entry.Name() == ".git" {
				return filepath.SkipDir
			}

			return nil
		}

		if !entry.Type().IsRegular() || strings.HasSuffix(entry.Name(), constants.PackageExtension) {
			return nil
		}

		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			return fmt.Errorf("couldn't make relative path while zipping: %w", err)
		}

		return addFile(zipWriter, path, filepath.ToSlash(relPath))
	})
	if err != nil {
		_ = zipWriter.Close()

		return fmt.Errorf("packaging %s: %w", dir, err)
	}

	err = zipWriter.Close()
	if err != nil {
		return fmt.Errorf("finishing archive: %w", err)
	}

	return nil
}

func addFile(zipWriter *zip.Writer, path, name string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}

	header.Name = name
	header.Method = zip.Deflate

	writer, err := zipWriter.CreateHeader(header)
	if err != nil {
		return err
	}

	// path was produced by walking the function directory
	// #nosec G304
	source, err := os.Open(path)
	if err != nil {
		return err
	}
	defer source.Close()

	_, err = io.Copy(writer, source)

	return err
}

// Build zips dir into a new temporary file and returns its path. The caller
// removes the file when done.
func Build(dir string) (string, error) {
	pattern := filepath.Base(filepath.Clean(dir)) + "-*" + constants.PackageExtension

	file, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("creating package file: %w", err)
	}

	err = Zip(dir, file)

	closeErr := file.Close()
	if err == nil && closeErr != nil {
		err = fmt.Errorf("closing package file: %w", closeErr)
	}

	if err != nil {
		_ = os.Remove(file.Name())

		return "", err
	}

	return file.Name(), nil
}
