// Package storage persists uploaded files on the local disk, grouped into
// buckets and namespaced per user.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Bucket groups files by purpose.
type Bucket string

const (
	BucketAvatars  Bucket = "avatars"
	BucketReceipts Bucket = "receipts"
)

// Valid checks if the bucket is known.
func (b Bucket) Valid() bool {
	return b == BucketAvatars || b == BucketReceipts
}

var (
	ErrBucketInvalid = errors.New("this bucket does not exist")
	ErrFileNotFound  = errors.New("there is no file with this name")
)

// Store saves files under root/<bucket>/<owner>/<name>.
type Store struct {
	root string
}

// New creates the bucket directories under root.
func New(root string) (*Store, error) {
	for _, bucket := range []Bucket{BucketAvatars, BucketReceipts} {
		err := os.MkdirAll(filepath.Join(root, string(bucket)), 0o755)
		if err != nil {
			return nil, fmt.Errorf("could not create storage directory: %w", err)
		}
	}

	return &Store{root: root}, nil
}

// Root returns the directory the store saves files under.
func (s *Store) Root() string {
	return s.root
}

// Save writes the file and returns its URL path.
//
// The stored name is a fresh UUID with the upload's extension, so uploads
// never collide and the original name never reaches the filesystem.
func (s *Store) Save(bucket Bucket, owner uuid.UUID, name string, content io.Reader) (string, error) {
	if !bucket.Valid() {
		return "", ErrBucketInvalid
	}

	stored := uuid.New().String() + strings.ToLower(filepath.Ext(name))

	directory := filepath.Join(s.root, string(bucket), owner.String())
	err := os.MkdirAll(directory, 0o755)
	if err != nil {
		return "", fmt.Errorf("could not create storage directory: %w", err)
	}

	file, err := os.Create(filepath.Join(directory, stored))
	if err != nil {
		return "", fmt.Errorf("could not create file: %w", err)
	}
	defer file.Close()

	_, err = io.Copy(file, content)
	if err != nil {
		return "", fmt.Errorf("could not write file: %w", err)
	}

	return URL(bucket, owner, stored), nil
}

// Delete removes a previously saved file by its URL path.
func (s *Store) Delete(url string) error {
	bucket, owner, name, err := parseURL(url)
	if err != nil {
		return err
	}

	err = os.Remove(filepath.Join(s.root, string(bucket), owner, name))
	if errors.Is(err, os.ErrNotExist) {
		return ErrFileNotFound
	}

	return err
}

// URL returns the path a saved file is served under.
func URL(bucket Bucket, owner uuid.UUID, name string) string {
	return path.Join("/files", string(bucket), owner.String(), name)
}

// parseURL splits a URL path back into bucket, owner and file name. The
// file name is cleaned so that a crafted URL cannot escape the store root.
func parseURL(url string) (Bucket, string, string, error) {
	parts := strings.Split(strings.TrimPrefix(url, "/"), "/")
	if len(parts) != 4 || parts[0] != "files" {
		return "", "", "", ErrFileNotFound
	}

	bucket := Bucket(parts[1])
	if !bucket.Valid() {
		return "", "", "", ErrBucketInvalid
	}

	owner, err := uuid.Parse(parts[2])
	if err != nil {
		return "", "", "", ErrFileNotFound
	}

	name := path.Base(path.Clean(parts[3]))
	if name == "." || name == "/" {
		return "", "", "", ErrFileNotFound
	}

	return bucket, owner.String(), name, nil
}
