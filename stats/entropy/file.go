package entropy

import (
	"fmt"
	"os"
)

// File returns the Shannon entropy of the contents of the named file.
func File(path string) (float64, error) {
	buf, err := readFile(path)
	if err != nil {
		return 0, err
	}

	return Calculate(buf), nil
}

// BlockEntropiesFile is [BlockEntropies] over the contents of the named file.
func BlockEntropiesFile(path string, blockSize int) (Result, error) {
	buf, err := readFile(path)
	if err != nil {
		return Result{}, err
	}

	return BlockEntropies(buf, blockSize), nil
}

// CountEntropiesFile is [CountEntropies] over the contents of the named file.
func CountEntropiesFile(path string, count int) (Result, error) {
	buf, err := readFile(path)
	if err != nil {
		return Result{}, err
	}

	return CountEntropies(buf, count), nil
}

func readFile(path string) ([]byte, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("entropy: read %s: %w", path, err)
	}

	return buf, nil
}
