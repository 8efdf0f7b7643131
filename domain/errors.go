package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindMissingCredential ErrorKind = "missing_credential"
	KindInputNotFound     ErrorKind = "input_not_found"
	KindRemoteJobFailed   ErrorKind = "remote_job_failed"
	KindArtifactNotFound  ErrorKind = "artifact_not_found"
	KindDownloadFailed    ErrorKind = "download_failed"
	KindExtractionFailed  ErrorKind = "extraction_failed"
	KindMuxingFailed      ErrorKind = "muxing_failed"
	KindUnknownTool       ErrorKind = "unknown_tool"
	KindInvalidRequest    ErrorKind = "invalid_request"
)

type MediaError struct {
	Kind    ErrorKind
	Message string
}

func (e *MediaError) Error() string {
	return e.Message
}

func newError(kind ErrorKind, format string, args ...interface{}) error {
	return &MediaError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func MissingCredential(format string, args ...interface{}) error {
	return newError(KindMissingCredential, format, args...)
}

func InputNotFound(format string, args ...interface{}) error {
	return newError(KindInputNotFound, format, args...)
}

func RemoteJobFailed(format string, args ...interface{}) error {
	return newError(KindRemoteJobFailed, format, args...)
}

func ArtifactNotFound(format string, args ...interface{}) error {
	return newError(KindArtifactNotFound, format, args...)
}

func DownloadFailed(format string, args ...interface{}) error {
	return newError(KindDownloadFailed, format, args...)
}

func ExtractionFailed(format string, args ...interface{}) error {
	return newError(KindExtractionFailed, format, args...)
}

func MuxingFailed(format string, args ...interface{}) error {
	return newError(KindMuxingFailed, format, args...)
}

func UnknownTool(format string, args ...interface{}) error {
	return newError(KindUnknownTool, format, args...)
}

func InvalidRequest(format string, args ...interface{}) error {
	return newError(KindInvalidRequest, format, args...)
}

// KindOf classifies an error produced by this package, or returns "" for
// errors from elsewhere.
func KindOf(err error) ErrorKind {
	var mediaErr *MediaError
	if errors.As(err, &mediaErr) {
		return mediaErr.Kind
	}
	return ""
}
