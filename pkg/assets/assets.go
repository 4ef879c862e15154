// Package assets stages the static files pages reference (stylesheet and
// images) into the output root.
package assets

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ImagesDir is the directory images are copied to under the output root.
const ImagesDir = "images"

// Staged describes what Stage copied. Missing lists configured sources that
// did not exist; they are skipped, not treated as errors.
type Staged struct {
	Stylesheet string
	Images     int
	Missing    []string
}

// Stage copies stylesheet to {root}/{basename} and the image directory
// recursively to {root}/images. Empty source paths are skipped.
func Stage(root, stylesheet, imagesDir string) (Staged, error) {
	var staged Staged

	if stylesheet != "" {
		if _, err := os.Stat(stylesheet); os.IsNotExist(err) {
			staged.Missing = append(staged.Missing, stylesheet)
		} else {
			dst := filepath.Join(root, filepath.Base(stylesheet))
			if err := copyFile(stylesheet, dst); err != nil {
				return staged, fmt.Errorf("failed to stage stylesheet: %w", err)
			}
			staged.Stylesheet = dst
		}
	}

	if imagesDir != "" {
		info, err := os.Stat(imagesDir)
		switch {
		case os.IsNotExist(err):
			staged.Missing = append(staged.Missing, imagesDir)
		case err != nil:
			return staged, fmt.Errorf("failed to stat images dir: %w", err)
		case !info.IsDir():
			return staged, fmt.Errorf("images source %s is not a directory", imagesDir)
		default:
			n, err := copyTree(imagesDir, filepath.Join(root, ImagesDir))
			staged.Images = n
			if err != nil {
				return staged, fmt.Errorf("failed to stage images: %w", err)
			}
		}
	}

	return staged, nil
}

func copyTree(src, dst string) (int, error) {
	count := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if err := copyFile(path, target); err != nil {
			return err
		}
		count++
		return nil
	})
	return count, err
}

func copyFile(src, dst string) error {
	in, err := os.Open(filepath.Clean(src)) // #nosec G304
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
