package mnist

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// baseURL is an S3 mirror of the original files from
// yann.lecun.com/exdb/mnist, which throttles direct downloads.
const baseURL = "https://ossci-datasets.s3.amazonaws.com/mnist/"

var files = map[string]string{
	"train-images": "train-images-idx3-ubyte.gz",
	"train-labels": "train-labels-idx1-ubyte.gz",
	"test-images":  "t10k-images-idx3-ubyte.gz",
	"test-labels":  "t10k-labels-idx1-ubyte.gz",
}

// Download fetches the four MNIST archives into dir, skipping files
// that are already cached there. It returns the path of each file by
// its role ("train-images", ...).
func Download(dir string) (map[string]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mnist: creating cache dir: %w", err)
	}

	paths := make(map[string]string, len(files))
	for role, name := range files {
		dst := filepath.Join(dir, name)
		paths[role] = dst

		if _, err := os.Stat(dst); err == nil {
			continue // cached
		}
		if err := fetch(baseURL+name, dst); err != nil {
			return nil, err
		}
	}
	return paths, nil
}

func fetch(url, dst string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("mnist: downloading %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mnist: downloading %s: status %s", url, resp.Status)
	}

	// Write to a temp name first so an interrupted download is never
	// mistaken for a cached file.
	tmp := dst + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("mnist: %w", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("mnist: writing %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("mnist: %w", err)
	}
	return os.Rename(tmp, dst)
}
