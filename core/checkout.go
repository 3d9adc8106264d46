package core

import (
	"crypto/md5"
	"errors"
	"fmt"
	"hash"
	"io"
	"path/filepath"
	"strings"

	"github.com/smartystreets/logging"

	"github.com/smartystreets/artifact-poller/contracts"
)

type CheckoutRequest struct {
	Coordinate contracts.Coordinate
	Version    contracts.VersionSnapshot
	LocalPath  string
	Download   bool
}

type checkoutFileSystem interface {
	contracts.DirectoryCleaner
	contracts.FileCreator
}

// Checkout replaces the contents of the local path with the files of one
// version, verifying each file's MD5 as it streams in.
type Checkout struct {
	logger     *logging.Logger
	downloader contracts.FileDownloader
	fileSystem checkoutFileSystem
	hasher     func() hash.Hash
	protected  []string
}

func NewCheckout(downloader contracts.FileDownloader, fileSystem checkoutFileSystem) *Checkout {
	return &Checkout{downloader: downloader, fileSystem: fileSystem, hasher: md5.New}
}

// Protect names paths that must survive a checkout; Install refuses to empty
// a local path that holds any of them.
func (this *Checkout) Protect(paths ...string) {
	this.protected = append(this.protected, paths...)
}

func (this *Checkout) Install(request CheckoutRequest) error {
	title := fmt.Sprintf("[%s @ %s]", request.Coordinate, request.Version.Version())
	if !request.Download {
		this.logger.Printf("[INFO] download disabled, skipping checkout of %s", title)
		return nil
	}
	for _, path := range this.protected {
		if Encloses(request.LocalPath, path) {
			return fmt.Errorf("%w: %q holds %q", errProtectedPath, request.LocalPath, path)
		}
	}
	targets := make([]string, 0, request.Version.Len())
	for _, entry := range request.Version.Files() {
		target, err := destination(request.LocalPath, entry.Filename)
		if err != nil {
			return fmt.Errorf("checkout of %s refused: %w", title, err)
		}
		targets = append(targets, target)
	}
	if err := this.fileSystem.CleanDirectory(request.LocalPath); err != nil {
		return fmt.Errorf("could not clean %q: %w", request.LocalPath, err)
	}
	for i, entry := range request.Version.Files() {
		if err := this.installFile(request, entry, targets[i]); err != nil {
			return fmt.Errorf("checkout of %s failed: %w", title, err)
		}
	}
	this.logger.Printf("[INFO] checked out %d files of %s into %q", request.Version.Len(), title, request.LocalPath)
	return nil
}

func (this *Checkout) installFile(request CheckoutRequest, entry contracts.FileEntry, target string) error {
	body, err := this.downloader.Download(request.Coordinate, request.Version.Version(), entry.Filename)
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	writer, err := this.fileSystem.Create(target)
	if err != nil {
		return err
	}
	reader := NewHashReader(body, this.hasher())
	_, err = io.Copy(writer, reader)
	if closeErr := writer.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	expected := entry.Fingerprint.MD5
	if expected != "" && !strings.EqualFold(expected, reader.Checksum()) {
		return fmt.Errorf("%w for %q (expected: [%s], actual: [%s])", errChecksumMismatch, entry.Filename, expected, reader.Checksum())
	}
	return nil
}

// destination joins a server supplied filename onto the local path and
// rejects names that would land outside of it.
func destination(localPath, filename string) (string, error) {
	target := filepath.Join(localPath, filename)
	relative, err := filepath.Rel(filepath.Clean(localPath), target)
	if err != nil || relative == "." || relative == ".." || strings.HasPrefix(relative, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", errUnsafeFilename, filename)
	}
	return target, nil
}

var (
	errChecksumMismatch = errors.New("checksum mismatch")
	errProtectedPath    = errors.New("local path holds protected files")
	errUnsafeFilename   = errors.New("filename escapes the local path")
)
