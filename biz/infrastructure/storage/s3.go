package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"classroom-chat/biz/infrastructure/config"
	"classroom-chat/biz/infrastructure/consts"
	"classroom-chat/biz/infrastructure/util/log"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

var (
	instance *Client
	once     sync.Once
)

// Client 对象存储客户端，教室文件统一存放在 classrooms/{joinCode}/ 前缀下
type Client struct {
	svc      *s3.S3
	uploader *s3manager.Uploader
	bucket   string
	endpoint string
}

func NewClient(cfg *config.Config) *Client {
	once.Do(func() {
		awsCfg := &aws.Config{
			Region:      aws.String(cfg.S3.Region),
			Credentials: credentials.NewStaticCredentials(cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey, ""),
		}
		if cfg.S3.Endpoint != "" {
			awsCfg.Endpoint = aws.String(cfg.S3.Endpoint)
			awsCfg.S3ForcePathStyle = aws.Bool(true)
		}
		sess := session.Must(session.NewSession(awsCfg))
		instance = &Client{
			svc:      s3.New(sess),
			uploader: s3manager.NewUploader(sess),
			bucket:   cfg.S3.Bucket,
			endpoint: cfg.S3.Endpoint,
		}
	})
	return instance
}

// BuildObjectKey 生成对象键: classrooms/{joinCode}/{epochMillis}-{filename}
func BuildObjectKey(joinCode, filename string) string {
	return fmt.Sprintf("%s/%s/%d-%s", consts.StoragePathPrefix, joinCode, time.Now().UnixMilli(), filename)
}

// progressReader 包装上传流，按读取字节数回调进度百分比
type progressReader struct {
	reader     io.Reader
	total      int64
	read       int64
	lastNotify int
	onProgress func(percent int)
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.reader.Read(buf)
	if n > 0 && p.total > 0 && p.onProgress != nil {
		p.read += int64(n)
		percent := int(p.read * 100 / p.total)
		if percent > 100 {
			percent = 100
		}
		if percent != p.lastNotify {
			p.lastNotify = percent
			p.onProgress(percent)
		}
	}
	return n, err
}

// Upload 上传对象并返回可长期访问的下载地址，进度按0-100回调
func (c *Client) Upload(ctx context.Context, key string, body io.Reader, size int64, onProgress func(percent int)) (string, error) {
	pr := &progressReader{
		reader:     body,
		total:      size,
		lastNotify: -1,
		onProgress: onProgress,
	}
	_, err := c.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		Body:   pr,
	})
	if err != nil {
		return "", err
	}
	return c.ObjectURL(key), nil
}

// Delete 删除对象
func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Error("删除对象失败, key: %s, err: %v", key, err)
		return err
	}
	return nil
}

// PresignGet 生成限时下载链接
func (c *Client) PresignGet(key string, expire time.Duration) (string, error) {
	req, _ := c.svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	return req.Presign(expire)
}

// ObjectURL 拼接对象的稳定访问地址
func (c *Client) ObjectURL(key string) string {
	if c.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(c.endpoint, "/"), c.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", c.bucket, key)
}
