package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/social-feed/internal/media"
	"github.com/d60-Lab/social-feed/pkg/logger"
)

// MediaPurger 本地异步清理器：被替换/删除的远端图片异步销毁，
// 失败只记日志，不影响请求本身
type MediaPurger struct {
	storage media.Storage
	ch      chan string
}

func NewMediaPurger(storage media.Storage, queueSize int) *MediaPurger {
	if queueSize <= 0 {
		queueSize = 1024
	}
	return &MediaPurger{storage: storage, ch: make(chan string, queueSize)}
}

func (p *MediaPurger) Start(workers int) func(context.Context) error {
	if workers <= 0 {
		workers = 2
	}
	stopCh := make(chan struct{})
	for i := 0; i < workers; i++ {
		go func() {
			for {
				select {
				case assetURL := <-p.ch:
					ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
					if err := p.storage.Destroy(ctx, assetURL); err != nil {
						logger.Warn("media purge failed", zap.String("asset", assetURL), zap.Error(err))
					}
					cancel()
				case <-stopCh:
					return
				}
			}
		}()
	}
	return func(ctx context.Context) error {
		close(stopCh)
		// 等待队列自然排空一小段时间
		timeout := time.After(2 * time.Second)
		for {
			select {
			case <-timeout:
				return nil
			default:
				if len(p.ch) == 0 {
					return nil
				}
				time.Sleep(50 * time.Millisecond)
			}
		}
	}
}

// Enqueue 投递一个待销毁的远端资源；空 URL 忽略，队列满则丢弃并告警
func (p *MediaPurger) Enqueue(assetURL string) {
	if assetURL == "" {
		return
	}
	select {
	case p.ch <- assetURL:
	default:
		logger.Warn("purge queue full, drop asset", zap.String("asset", assetURL))
	}
}

// QueueLen 返回当前队列长度（采样值）
func (p *MediaPurger) QueueLen() int { return len(p.ch) }
