// Package natsbus はドメインイベントを NATS へ配信します。
package natsbus

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/ogurasousui/hrms-lite/internal/core/event"
)

const defaultSubjectPrefix = "hrms"

// Conn は Publisher が利用する NATS 接続の操作です。*nats.Conn が実装します。
type Conn interface {
	Publish(subject string, data []byte) error
}

// Publisher は event.Event を JSON にして "<prefix>.<type>" へ配信します。
type Publisher struct {
	conn   Conn
	prefix string
}

// NewPublisher は Publisher を生成します。prefix が空なら "hrms" を使います。
func NewPublisher(conn Conn, prefix string) *Publisher {
	prefix = strings.Trim(strings.TrimSpace(prefix), ".")
	if prefix == "" {
		prefix = defaultSubjectPrefix
	}
	return &Publisher{conn: conn, prefix: prefix}
}

// Subject はイベント種別に対応する配信先です。
func (p *Publisher) Subject(t event.Type) string {
	return p.prefix + "." + string(t)
}

// Publish は e を配信します。コンテキストが終了していれば配信しません。
func (p *Publisher) Publish(ctx context.Context, e event.Event) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("natsbus: context done before publish: %w", err)
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("natsbus: marshal %s: %w", e.Type, err)
	}

	subject := p.Subject(e.Type)
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("natsbus: publish %s: %w", subject, err)
	}
	return nil
}

// Connect は NATS サーバーへ接続します。name は接続名としてサーバー側に表示されます。
func Connect(url, name string) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("natsbus: connect %s: %w", url, err)
	}
	return conn, nil
}
