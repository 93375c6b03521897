package errors

import (
	stderrs "errors"
	"net/http"

	"github.com/minio/minio-go/v7"
)

// S3 error codes we classify; anything else is a generic source failure
const (
	s3NoSuchKey             = "NoSuchKey"
	s3NoSuchBucket          = "NoSuchBucket"
	s3AccessDenied          = "AccessDenied"
	s3InvalidAccessKeyID    = "InvalidAccessKeyId"
	s3SignatureDoesNotMatch = "SignatureDoesNotMatch"
	s3SlowDown              = "SlowDown"
	s3ServiceUnavailable    = "ServiceUnavailable"
)

func s3Response(err error) (minio.ErrorResponse, bool) {
	var resp minio.ErrorResponse
	if stderrs.As(err, &resp) {
		return resp, true
	}
	var pr *minio.ErrorResponse
	if stderrs.As(err, &pr) && pr != nil {
		return *pr, true
	}
	return minio.ErrorResponse{}, false
}

func isS3NotFound(err error) bool {
	resp, ok := s3Response(err)
	return ok && resp.Code == s3NoSuchKey
}

// FromS3 converts a minio-go error into an *Error with a stable code.
// A missing bucket is a configuration problem, a missing object is NotFound
func FromS3(err error, op string) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return WithOp(err, op)
	}

	code := ErrorCodeSource
	if resp, ok := s3Response(err); ok {
		switch {
		case resp.Code == s3NoSuchKey:
			code = ErrorCodeNotFound
		case resp.Code == s3NoSuchBucket:
			code = ErrorCodeConfig
		case resp.Code == s3AccessDenied, resp.Code == s3InvalidAccessKeyID, resp.Code == s3SignatureDoesNotMatch:
			code = ErrorCodeUnauthorized
		case resp.Code == s3SlowDown, resp.Code == s3ServiceUnavailable, resp.StatusCode == http.StatusServiceUnavailable:
			code = ErrorCodeUnavailable
		case resp.StatusCode == http.StatusNotFound && resp.Code == "":
			code = ErrorCodeNotFound
		}
	} else if isNetErr(err) {
		code = ErrorCodeUnavailable
	}
	return WithOp(Wrap(err, code, "s3"), op)
}
