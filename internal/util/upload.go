package util

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/fadilmartias/founder-assessment/internal/model"
	"github.com/sirupsen/logrus"
)

// ErrAudioTooLarge is returned by SpoolAudio when the upload exceeds the limit.
var ErrAudioTooLarge = errors.New("audio file exceeds the size limit")

// SpoolAudio copies an uploaded file into a temporary file and returns the
// clip with a cleanup func. The cleanup must be called on every path.
func SpoolAudio(fh *multipart.FileHeader, maxBytes int64, log *logrus.Entry) (*model.AudioClip, func(), error) {
	if maxBytes > 0 && fh.Size > maxBytes {
		return nil, func() {}, ErrAudioTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return nil, func() {}, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	return spool(src, fh.Filename, fh.Header.Get("Content-Type"), maxBytes, log)
}

// SpoolFile copies a local file the same way SpoolAudio does. Used by the CLI.
func SpoolFile(path string, maxBytes int64, log *logrus.Entry) (*model.AudioClip, func(), error) {
	src, err := os.Open(path)
	if err != nil {
		return nil, func() {}, fmt.Errorf("open audio: %w", err)
	}
	defer src.Close()

	return spool(src, filepath.Base(path), contentTypeFor(path), maxBytes, log)
}

func spool(src io.Reader, filename, contentType string, maxBytes int64, log *logrus.Entry) (*model.AudioClip, func(), error) {
	tmp, err := os.CreateTemp("", "interview-*"+filepath.Ext(filename))
	if err != nil {
		return nil, func() {}, fmt.Errorf("create temp file: %w", err)
	}
	cleanup := func() {
		if err := os.Remove(tmp.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.WithError(err).WithField("path", tmp.Name()).Error("failed to remove spooled audio")
		}
	}

	reader := src
	if maxBytes > 0 {
		reader = io.LimitReader(src, maxBytes+1)
	}
	n, err := io.Copy(tmp, reader)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("spool audio: %w", err)
	}
	if maxBytes > 0 && n > maxBytes {
		cleanup()
		return nil, func() {}, ErrAudioTooLarge
	}

	return &model.AudioClip{
		Path:        tmp.Name(),
		Filename:    filename,
		ContentType: contentType,
		Size:        n,
	}, cleanup, nil
}

func contentTypeFor(path string) string {
	switch filepath.Ext(path) {
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mpeg"
	case ".m4a":
		return "audio/mp4"
	case ".ogg":
		return "audio/ogg"
	case ".webm":
		return "audio/webm"
	}
	return "application/octet-stream"
}
