package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	key := "invitations/ev 1/img.png"

	assert.Equal(t, "https://cdn.example.com/invitations/ev%201/img.png",
		PublicURL(S3Config{Bucket: "b", PublicBaseURL: "https://cdn.example.com/"}, key))

	assert.Equal(t, "http://minio:9000/b/invitations/ev%201/img.png",
		PublicURL(S3Config{Bucket: "b", Endpoint: "http://minio:9000"}, key))

	assert.Equal(t, "https://b.s3.eu-west-1.amazonaws.com/invitations/ev%201/img.png",
		PublicURL(S3Config{Bucket: "b", Region: "eu-west-1"}, key))
}
