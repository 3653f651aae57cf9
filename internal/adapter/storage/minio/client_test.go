package minio

import "testing"

func TestEndpointURL(t *testing.T) {
	cases := []struct {
		endpoint string
		ssl      bool
		want     string
	}{
		{"localhost:9000", false, "http://localhost:9000"},
		{"s3.example.org", true, "https://s3.example.org"},
		{"http://minio:9000", true, "http://minio:9000"},
	}
	for _, c := range cases {
		if got := endpointURL(c.endpoint, c.ssl); got != c.want {
			t.Fatalf("endpointURL(%q, %v) = %q, want %q", c.endpoint, c.ssl, got, c.want)
		}
	}
}

func TestObjectURL(t *testing.T) {
	c := &Client{bucketName: "pet-photos", publicURL: "http://localhost:9000"}
	if got := c.objectURL("1-rex.jpg"); got != "http://localhost:9000/pet-photos/1-rex.jpg" {
		t.Fatalf("objectURL = %q", got)
	}
}

func TestObjectKey(t *testing.T) {
	c := &Client{bucketName: "pet-photos", publicURL: "http://localhost:9000"}
	if key, ok := c.objectKey(c.objectURL("1-rex.jpg")); !ok || key != "1-rex.jpg" {
		t.Fatalf("objectKey = %q, %v", key, ok)
	}
	for _, url := range []string{"/images/no_photo.jpg", "http://localhost:9000/other/1-rex.jpg", "http://localhost:9000/pet-photos/"} {
		if _, ok := c.objectKey(url); ok {
			t.Fatalf("objectKey(%q) accepted a foreign url", url)
		}
	}
}
