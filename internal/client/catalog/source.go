package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// maxPayload bounds what is read from any source.
const maxPayload = 16 << 20

var errNoObjectStore = errors.New("s3 source without object store")

// ObjectGetter is the subset of *s3.Client the loader needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Options configures NewS3Client. Empty credentials fall back to the
// default AWS chain; an empty endpoint uses AWS itself.
type S3Options struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

var loadDefaultAWSConfig = config.LoadDefaultConfig

func NewS3Client(ctx context.Context, o S3Options) (*s3.Client, error) {
	loaders := []func(*config.LoadOptions) error{config.WithRegion(o.Region)}
	if o.AccessKey != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, ""),
		))
	}

	cfg, err := loadDefaultAWSConfig(ctx, loaders...)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(so *s3.Options) {
		if o.Endpoint != "" {
			so.BaseEndpoint = aws.String(o.Endpoint)
			so.UsePathStyle = true
		}
	}), nil
}

type payload struct {
	data []byte
	html bool
}

func (l *Loader) fetch(ctx context.Context, source string) (payload, error) {
	u, err := url.Parse(source)
	if err == nil {
		switch u.Scheme {
		case "s3":
			return l.fetchS3(ctx, u)
		case "http", "https":
			return l.fetchHTTP(ctx, source)
		}
	}
	return fetchFile(source)
}

func (l *Loader) fetchS3(ctx context.Context, u *url.URL) (payload, error) {
	if l.objects == nil {
		return payload{}, errNoObjectStore
	}

	bucket, key := u.Host, strings.TrimPrefix(u.Path, "/")
	out, err := l.objects.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return payload{}, fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, maxPayload))
	if err != nil {
		return payload{}, err
	}
	return payload{
		data: data,
		html: isHTMLType(aws.ToString(out.ContentType)) || isHTMLName(key),
	}, nil
}

func (l *Loader) fetchHTTP(ctx context.Context, source string) (payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return payload{}, err
	}
	req.Header.Set("Accept", "application/json, text/html;q=0.9")

	resp, err := l.http.Do(req)
	if err != nil {
		return payload{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return payload{}, fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	if err != nil {
		return payload{}, err
	}
	return payload{
		data: data,
		html: isHTMLType(resp.Header.Get("Content-Type")) || isHTMLName(path.Base(req.URL.Path)),
	}, nil
}

func fetchFile(name string) (payload, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return payload{}, err
	}
	return payload{data: data, html: isHTMLName(name)}, nil
}

func isHTMLType(ct string) bool {
	ct, _, _ = strings.Cut(ct, ";")
	return strings.EqualFold(strings.TrimSpace(ct), "text/html")
}

func isHTMLName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return true
	}
	return false
}
