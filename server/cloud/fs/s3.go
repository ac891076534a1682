// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fs

import (
	"bytes"
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"os"
	"os/user"
	"strings"
)

type S3Filesystem struct {
	svc    *s3.S3
	bucket string
}

// NewSession creates an AWS session in region. Shared credentials of profile are used if
// present, otherwise the default credential chain.
func NewSession(region, profile string) (*session.Session, error) {
	config := &aws.Config{Region: aws.String(region)}

	if usr, err := user.Current(); err == nil {
		path := fmt.Sprintf("%s/.aws/credentials", usr.HomeDir)
		if _, statErr := os.Stat(path); statErr == nil {
			config.Credentials = credentials.NewSharedCredentials(path, profile)
		}
	}

	return session.NewSession(config)
}

func NewS3Filesystem(session *session.Session, bucket string) (*S3Filesystem, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3: empty bucket name")
	}
	return &S3Filesystem{svc: s3.New(session), bucket: bucket}, nil
}

var s3ContentTypes = map[string]string{
	".json": "application/json",
	".png":  "image/png",
}

func (s3Filesystem *S3Filesystem) UploadStaticFile(filename string, secondsCache int, data []byte) error {
	readSeeker := bytes.NewReader(data)

	// Patch S3's limited vocabulary of default content types
	var contentType *string
	for ext, mime := range s3ContentTypes {
		if strings.HasSuffix(filename, ext) {
			contentType = aws.String(mime)
			break
		}
	}

	req, _ := s3Filesystem.svc.PutObjectRequest(&s3.PutObjectInput{
		Bucket:       aws.String(s3Filesystem.bucket),
		Key:          aws.String(filename),
		Body:         readSeeker,
		CacheControl: aws.String(fmt.Sprintf("no-transform, public, max-age=%d", secondsCache)),
		ContentType:  contentType,
	})
	return req.Send()
}
