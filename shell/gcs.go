package shell

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"path"

	"github.com/smartystreets/gcs"
	"github.com/smartystreets/logging"

	"github.com/smartystreets/artifact-poller/contracts"
)

// GoogleCloudStorageDocuments keeps documents as objects under a bucket prefix.
type GoogleCloudStorageDocuments struct {
	logger      *logging.Logger
	client      *http.Client
	credentials gcs.Credentials
	bucket      string
	prefix      string
}

func NewGoogleCloudStorageDocuments(client *http.Client, credentials gcs.Credentials, bucket, prefix string) *GoogleCloudStorageDocuments {
	return &GoogleCloudStorageDocuments{client: client, credentials: credentials, bucket: bucket, prefix: prefix}
}

func (this *GoogleCloudStorageDocuments) ReadDocument(name string) ([]byte, error) {
	gcsRequest, err := gcs.NewRequest("GET",
		gcs.WithCredentials(this.credentials),
		gcs.WithBucket(this.bucket),
		gcs.WithResource(this.resource(name)),
	)
	if err != nil {
		return nil, err
	}
	response, err := this.client.Do(gcsRequest)
	if err != nil {
		return nil, err
	}
	defer func() { _ = response.Body.Close() }()
	if response.StatusCode == http.StatusNotFound {
		return nil, contracts.ErrDocumentNotFound
	}
	if response.StatusCode != http.StatusOK {
		this.dump(gcsRequest, response)
		return nil, fmt.Errorf("unexpected status code: %s", response.Status)
	}
	return io.ReadAll(response.Body)
}

func (this *GoogleCloudStorageDocuments) WriteDocument(name string, content []byte) error {
	checksum := md5.Sum(content)
	gcsRequest, err := gcs.NewRequest("PUT",
		gcs.WithCredentials(this.credentials),
		gcs.WithBucket(this.bucket),
		gcs.WithResource(this.resource(name)),
		gcs.PutWithContent(bytes.NewReader(content)),
		gcs.PutWithContentLength(int64(len(content))),
		gcs.PutWithContentMD5(checksum[:]),
		gcs.PutWithContentType("application/json"),
	)
	if err != nil {
		return err
	}
	response, err := this.client.Do(gcsRequest)
	if err != nil {
		return err
	}
	defer func() { _ = response.Body.Close() }()
	if response.StatusCode != http.StatusOK {
		this.dump(gcsRequest, response)
		return fmt.Errorf("unexpected status code: %s", response.Status)
	}
	return nil
}

func (this *GoogleCloudStorageDocuments) resource(name string) string {
	return path.Join("/", this.prefix, name)
}

func (this *GoogleCloudStorageDocuments) dump(request *http.Request, response *http.Response) {
	requestDump, _ := httputil.DumpRequestOut(request, false)
	responseDump, _ := httputil.DumpResponse(response, true)
	this.logger.Printf("[WARN] unexpected status code: \nrequest: \n%s\nresponse:\n%s", requestDump, responseDump)
}
