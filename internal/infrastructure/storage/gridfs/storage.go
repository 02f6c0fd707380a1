// Package gridfs keeps original uploads in MongoDB GridFS. Each key maps to
// a GridFS filename holding only its latest revision.
package gridfs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultBucket = "documents"

type Storage struct {
	client *mongo.Client
	bucket *gridfs.Bucket
}

func New(ctx context.Context, uri, database, bucketName string) (*Storage, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	if bucketName == "" {
		bucketName = defaultBucket
	}
	bucket, err := gridfs.NewBucket(client.Database(database), options.GridFSBucket().SetName(bucketName))
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("open gridfs bucket: %w", err)
	}
	return &Storage{client: client, bucket: bucket}, nil
}

func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Put replaces any earlier revision stored under key.
func (s *Storage) Put(ctx context.Context, key string, data []byte, contentType string, meta map[string]string) error {
	if err := s.deleteRevisions(ctx, key); err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := s.bucket.SetWriteDeadline(deadline); err != nil {
			return fmt.Errorf("set gridfs write deadline: %w", err)
		}
	}
	opts := options.GridFSUpload().SetMetadata(uploadMetadata(contentType, meta))
	if _, err := s.bucket.UploadFromStream(key, bytes.NewReader(data), opts); err != nil {
		return fmt.Errorf("gridfs upload %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	return s.deleteRevisions(ctx, key)
}

func (s *Storage) deleteRevisions(ctx context.Context, key string) error {
	cursor, err := s.bucket.FindContext(ctx, bson.M{"filename": key})
	if err != nil {
		return fmt.Errorf("gridfs find %s: %w", key, err)
	}
	defer cursor.Close(ctx)

	var files []struct {
		ID any `bson:"_id"`
	}
	if err := cursor.All(ctx, &files); err != nil {
		return fmt.Errorf("gridfs list %s: %w", key, err)
	}
	for _, f := range files {
		if err := s.bucket.DeleteContext(ctx, f.ID); err != nil && !errors.Is(err, gridfs.ErrFileNotFound) {
			return fmt.Errorf("gridfs delete %s: %w", key, err)
		}
	}
	return nil
}

func uploadMetadata(contentType string, meta map[string]string) bson.M {
	out := bson.M{"content_type": contentType}
	for k, v := range meta {
		out[k] = v
	}
	return out
}
