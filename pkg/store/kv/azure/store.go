// Package azure implements kv.Store on an Azure Blob Storage container,
// one block blob per key.
package azure

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/de-tools/maturity-atlas/pkg/store/kv"
)

// API is the subset of *azblob.Client used by the store.
type API interface {
	UploadBuffer(ctx context.Context, containerName, blobName string, buffer []byte, o *azblob.UploadBufferOptions) (azblob.UploadBufferResponse, error)
	DownloadStream(ctx context.Context, containerName, blobName string, o *azblob.DownloadStreamOptions) (azblob.DownloadStreamResponse, error)
	DeleteBlob(ctx context.Context, containerName, blobName string, o *azblob.DeleteBlobOptions) (azblob.DeleteBlobResponse, error)
	NewListBlobsFlatPager(containerName string, o *azblob.ListBlobsFlatOptions) *runtime.Pager[azblob.ListBlobsFlatResponse]
}

type store struct {
	client    API
	container string
	prefix    string
}

func NewStore(client API, container, prefix string) (kv.Store, error) {
	if client == nil {
		return nil, fmt.Errorf("blob client is nil")
	}
	if container == "" {
		return nil, fmt.Errorf("container is required")
	}
	return &store{client: client, container: container, prefix: prefix}, nil
}

// Factory prefers a connection string (Azurite, shared keys). Otherwise it
// authenticates against the account URL in opts.Endpoint with the default
// Azure credential chain.
func Factory(_ context.Context, opts kv.Options) (kv.Store, error) {
	var (
		client *azblob.Client
		err    error
	)
	switch {
	case opts.ConnectionString != "":
		client, err = azblob.NewClientFromConnectionString(opts.ConnectionString, nil)
	case opts.Endpoint != "":
		cred, credErr := azidentity.NewDefaultAzureCredential(nil)
		if credErr != nil {
			return nil, fmt.Errorf("azure credential: %w", credErr)
		}
		client, err = azblob.NewClient(opts.Endpoint, cred, nil)
	default:
		return nil, fmt.Errorf("azure store needs a connection string or an account endpoint")
	}
	if err != nil {
		return nil, fmt.Errorf("create blob client: %w", err)
	}
	return NewStore(client, opts.Bucket, opts.Prefix)
}

func (s *store) blobName(key string) string {
	return s.prefix + key
}

func (s *store) Get(ctx context.Context, key string) ([]byte, error) {
	resp, err := s.client.DownloadStream(ctx, s.container, s.blobName(key), nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, kv.ErrNotFound
		}
		return nil, fmt.Errorf("download blob %s: %w", key, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", key, err)
	}
	return data, nil
}

func (s *store) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.client.UploadBuffer(ctx, s.container, s.blobName(key), value, &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: to.Ptr("application/json")},
	})
	if err != nil {
		return fmt.Errorf("upload blob %s: %w", key, err)
	}
	return nil
}

func (s *store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteBlob(ctx, s.container, s.blobName(key), nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return kv.ErrNotFound
		}
		return fmt.Errorf("delete blob %s: %w", key, err)
	}
	return nil
}

func (s *store) List(ctx context.Context, prefix string) ([]string, error) {
	keys := make([]string, 0)
	pager := s.client.NewListBlobsFlatPager(s.container, &azblob.ListBlobsFlatOptions{
		Prefix: to.Ptr(s.blobName(prefix)),
	})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list blobs %s: %w", prefix, err)
		}
		if page.Segment == nil {
			continue
		}
		for _, item := range page.Segment.BlobItems {
			if item == nil || item.Name == nil {
				continue
			}
			keys = append(keys, strings.TrimPrefix(*item.Name, s.prefix))
		}
	}
	return keys, nil
}

func (s *store) Close() error {
	return nil
}
